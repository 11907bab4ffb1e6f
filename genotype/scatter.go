package genotype

import (
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/snprisk/chrpos"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Scatter renders a PNG of SNP position (y) against chromosome (x). The
// y axis spans the longest autosome of ref.
func Scatter(w io.Writer, records []Record, ref *chrpos.Reference) error {
	xs := make([]float64, 0, len(records))
	ys := make([]float64, 0, len(records))
	for _, rec := range records {
		chrom, ok := chrpos.ParseAutosome(rec.Chromosome)
		if !ok {
			continue
		}
		xs = append(xs, float64(chrom))
		ys = append(ys, float64(rec.Position))
	}

	if len(xs) == 0 {
		return fmt.Errorf("scatter: no autosomal positions to plot")
	}

	ticks := make([]chart.Tick, 0, chrpos.NAutosomes)
	for i := 1; i <= chrpos.NAutosomes; i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}

	graph := chart.Chart{
		Title:  "Scatter Plot of SNP Positions per Chromosome",
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  "Chromosome",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: chrpos.NAutosomes + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "SNP Position",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(ref.LongestAutosome())},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fM", f/1e6)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    1,
					DotColor:    drawing.ColorBlue.WithAlpha(128),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

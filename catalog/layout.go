package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carbocation/snprisk"
)

// Layout names the columns of an association catalog.
type Layout struct {
	// Combined "rs<digits>-<allele>" column
	ColSNPRiskAllele string
	ColTrait         string

	// Candidate effect-size columns, most preferred first. The first one
	// present in the header is used for every row.
	ColEffect []string
}

var Layouts = map[string]Layout{
	// NHGRI-EBI GWAS Catalog "All associations" download
	"GWASCATALOG": {
		ColSNPRiskAllele: "STRONGEST SNP-RISK ALLELE",
		ColTrait:         "DISEASE/TRAIT",
		ColEffect:        []string{"OR or BETA", "P-VALUE (TEXT)"},
	},
	// The trait column was renamed in later catalog releases
	"GWASCATALOG_MAPPED": {
		ColSNPRiskAllele: "STRONGEST SNP-RISK ALLELE",
		ColTrait:         "MAPPED_TRAIT",
		ColEffect:        []string{"OR or BETA", "P-VALUE (TEXT)"},
	},
}

// DefaultLayout is the layout used when none is requested.
const DefaultLayout = "GWASCATALOG"

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// LookupLayout returns the named layout.
func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

// ResolveEffectColumn picks the effect-size column once for the whole table.
func (l Layout) ResolveEffectColumn(t *snprisk.Table) (string, error) {
	for _, name := range l.ColEffect {
		if t.Has(name) {
			return name, nil
		}
	}

	if len(l.ColEffect) == 0 {
		return "", fmt.Errorf("layout has no effect-size column")
	}

	// Report the most preferred column as the missing one
	_, err := t.Column(l.ColEffect[0])
	return "", err
}

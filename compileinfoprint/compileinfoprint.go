// compileinfoprint is imported by every snprisk command for the side effect
// of printing the compileinfo to os.Stderr
package compileinfoprint

import "github.com/carbocation/snprisk/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}

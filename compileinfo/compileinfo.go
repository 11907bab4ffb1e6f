// Package compileinfo reports the VCS state a snprisk binary was built from,
// so that a risk report can be traced back to the code that produced it.
package compileinfo

import (
	"fmt"
	"os"
	"path"
	"runtime/debug"
	"strings"
)

// shortCommit is how many characters of the revision are printed.
const shortCommit = 12

type CompileInfo struct {
	Tool      string // binary name, e.g. gwasprs
	Module    string
	GoVersion string

	// Filled from the vcs.* build settings when the binary was built
	// inside a checkout.
	Commit     string
	CommitTime string
	Modified   bool
}

// Revision is the abbreviated commit, with a "+dirty" suffix when the tree
// had uncommitted changes.
func (c CompileInfo) Revision() string {
	rev := c.Commit
	if len(rev) > shortCommit {
		rev = rev[:shortCommit]
	}
	if c.Modified {
		rev += "+dirty"
	}
	return rev
}

func (c CompileInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s), %s", c.Tool, c.Module, c.GoVersion)

	if c.Commit == "" {
		sb.WriteString(", no VCS information")
		return sb.String()
	}

	fmt.Fprintf(&sb, ", revision %s", c.Revision())
	if c.CommitTime != "" {
		fmt.Fprintf(&sb, " committed %s", c.CommitTime)
	}

	return sb.String()
}

func Get() CompileInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(bi)
}

func fromBuildInfo(bi *debug.BuildInfo) CompileInfo {
	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	return CompileInfo{
		Tool:       path.Base(bi.Path),
		Module:     bi.Main.Path,
		GoVersion:  bi.GoVersion,
		Commit:     settings["vcs.revision"],
		CommitTime: settings["vcs.time"],
		Modified:   settings["vcs.modified"] == "true",
	}
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}

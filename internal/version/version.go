package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information for the typings CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorAttrs = []color.Attribute{color.FgYellow, color.Bold}
	minorAttrs = []color.Attribute{color.FgGreen, color.Bold}
	patchAttrs = []color.Attribute{color.FgBlue, color.Bold}
)

// Colored renders v with major, minor and patch in separate colors. Anything
// after the patch number (pre-release, build metadata) is left plain, as is
// a v that is not dotted.
func Colored(v string, enabled bool) string {
	parts := strings.SplitN(v, ".", 3)
	if !enabled || len(parts) != 3 {
		return v
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}
	return paint(majorAttrs, parts[0]) + "." + paint(minorAttrs, parts[1]) + "." + paint(patchAttrs, patch) + rest
}

func paint(attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

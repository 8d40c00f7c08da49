package reportfmt

// Options configures report rendering.
type Options struct {
	// NoLines drops line numbers from failure headers, for diff-friendly output.
	NoLines bool
	// Verbose prints the source text of the asserted node before each message.
	Verbose bool
	Color   bool
}

package diag

// Severity ranks a diagnostic. Every severity counts for $ExpectError
// matching; it only orders output and tallies in traces.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks go/types soft errors: unused variables, imports and
	// labels. The file still type-checks otherwise.
	SevWarning
	// SevError covers parse, type, import and loader errors.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// Tally counts ds per severity, indexed by Severity.
func Tally(ds []Diagnostic) [SevError + 1]int {
	var n [SevError + 1]int
	for i := range ds {
		if s := ds[i].Severity; s <= SevError {
			n[s]++
		}
	}
	return n
}

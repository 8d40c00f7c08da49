package directive

import "fmt"

// Record is the flat, serializable form of a Failure, used by the JSON
// output and the report cache.
type Record struct {
	Kind     string `json:"kind" msgpack:"kind"`
	Line     int    `json:"line" msgpack:"line"`
	Code     string `json:"code,omitempty" msgpack:"code,omitempty"`
	Expected string `json:"expected,omitempty" msgpack:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" msgpack:"actual,omitempty"`
}

func ToRecord(f Failure) Record {
	r := Record{Kind: f.Kind().String(), Line: f.TargetLine(), Code: f.NodeText()}
	switch f := f.(type) {
	case WrongTypeFailure:
		r.Expected, r.Actual = f.Expected, f.Actual
	case UnexpectedErrorFailure:
		r.Actual = f.Got
	case WrongErrorFailure:
		r.Expected, r.Actual = f.Pattern, f.Got
	case MissingErrorFailure:
		r.Expected = f.Pattern
	}
	return r
}

func FromRecord(r Record) (Failure, error) {
	switch r.Kind {
	case KindWrongType.String():
		return WrongTypeFailure{Line: r.Line, Code: r.Code, Expected: r.Expected, Actual: r.Actual}, nil
	case KindUnexpectedError.String():
		return UnexpectedErrorFailure{Line: r.Line, Got: r.Actual}, nil
	case KindWrongError.String():
		return WrongErrorFailure{Line: r.Line, Code: r.Code, Pattern: r.Expected, Got: r.Actual}, nil
	case KindMissingError.String():
		return MissingErrorFailure{Line: r.Line, Code: r.Code, Pattern: r.Expected}, nil
	}
	return nil, fmt.Errorf("unknown failure kind %q", r.Kind)
}

// Records converts all failures of the report.
func (r Report) Records() []Record {
	out := make([]Record, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, ToRecord(f))
	}
	return out
}

// ReportFromRecords rebuilds a Report; it fails on the first unknown kind.
func ReportFromRecords(successes int, recs []Record) (Report, error) {
	rep := Report{Successes: successes}
	for _, rec := range recs {
		f, err := FromRecord(rec)
		if err != nil {
			return Report{}, err
		}
		rep.Failures = append(rep.Failures, f)
	}
	return rep, nil
}

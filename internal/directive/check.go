package directive

// Stage names one step of the per-file pipeline.
type Stage uint8

const (
	StageExtract Stage = iota
	StageBind
	StageReconcile
)

func (s Stage) String() string {
	switch s {
	case StageExtract:
		return "extract"
	case StageBind:
		return "bind"
	case StageReconcile:
		return "reconcile"
	}
	return "unknown"
}

// StageHook is called when a stage begins; the returned func (if non-nil)
// is called with the stage error when it ends.
type StageHook func(stage Stage) (end func(err error))

type Options struct {
	// AllowExpectError permits $ExpectError directives.
	AllowExpectError bool
	// StrictTypeLines reports diagnostics on $ExpectType lines as unexpected errors.
	StrictTypeLines bool
	Hook            StageHook
}

func (o Options) begin(s Stage) func(error) {
	if o.Hook == nil {
		return func(error) {}
	}
	end := o.Hook(s)
	if end == nil {
		return func(error) {}
	}
	return end
}

// Check runs extract, bind and reconcile over one file. Errors are fatal for
// the file and come with a zero Report; reportable mismatches are in Report.
func Check[N, T any](fe Frontend[N, T], opts Options) (Report, error) {
	end := opts.begin(StageExtract)
	assertions, err := Extract(fe.Tokens(), fe, opts)
	end(err)
	if err != nil {
		return Report{}, err
	}

	end = opts.begin(StageBind)
	res := Bind[N, T](fe, fe, fe, NewPending(assertions))
	err = res.Complete()
	end(err)
	if err != nil {
		return Report{}, err
	}

	end = opts.begin(StageReconcile)
	rep := Reconcile[N, T](res.Bound, fe.Diagnostics(), fe.File(), fe, fe, opts)
	end(nil)
	return rep, nil
}

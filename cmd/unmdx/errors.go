package main

// pipelineError marks a failure inside the conversion pipeline itself
// (bad input file, a query that failed to convert) rather than a
// malformed invocation, so main can map it to exit code 1 instead of 2.
type pipelineError struct{ err error }

func (e *pipelineError) Error() string { return e.err.Error() }
func (e *pipelineError) Unwrap() error { return e.err }

func wrapPipeline(err error) error {
	if err == nil {
		return nil
	}
	return &pipelineError{err}
}

// usageError marks a malformed invocation (bad flags, wrong argument
// count) distinctly from a pipeline failure. Errors that bubble up from
// pkg/charm itself (unknown flag, unknown subcommand) are left
// unwrapped and fall through main's default case, which is also exit
// code 2 — both are "the user asked for something that doesn't exist."
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func wrapUsage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err}
}

package diag

import (
	"fmt"

	"go.uber.org/multierr"
)

// Bag accumulates diagnostics in emission order across the whole pipeline.
// It is created fresh per invocation and never shared across queries,
// matching the single-threaded, per-invocation state discipline every
// stage follows.
type Bag struct {
	diags    []Diagnostic
	failFast bool
	maxErrs  int
	errCount int
}

// NewBag returns an empty Bag. failFast, if true, makes Add on an error
// diagnostic return a non-nil error the caller should treat as fatal.
// maxErrors, if > 0, has Add return a resource_error once that many error
// diagnostics have accumulated (see parser.max_parse_errors).
func NewBag(failFast bool, maxErrors int) *Bag {
	return &Bag{failFast: failFast, maxErrs: maxErrors}
}

// Add appends d to the bag in emission order. It returns a non-nil error
// only when the caller should stop processing (fail_fast tripped, or the
// max-errors budget exhausted); the diagnostic itself is always recorded
// regardless of the returned error.
func (b *Bag) Add(d Diagnostic) error {
	b.diags = append(b.diags, d)
	if d.Severity == Error {
		b.errCount++
		if b.failFast {
			return d
		}
		if b.maxErrs > 0 && b.errCount >= b.maxErrs {
			return Diagnostic{
				Severity: Error,
				Kind:     ResourceError,
				Message:  "too many parse errors, aborting",
				Span:     d.Span,
			}
		}
	}
	return nil
}

func (b *Bag) Errorf(kind Kind, span Span, format string, args ...interface{}) error {
	return b.Add(Diagnostic{Severity: Error, Kind: kind, Message: sprintf(format, args...), Span: span})
}

func (b *Bag) Warnf(kind Kind, span Span, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Warning, Kind: kind, Message: sprintf(format, args...), Span: span})
}

func (b *Bag) Infof(kind Kind, span Span, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Info, Kind: kind, Message: sprintf(format, args...), Span: span})
}

// Diagnostics returns every diagnostic added so far, in emission order.
// The slice is a copy; callers may not mutate the bag through it.
func (b *Bag) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

// HasErrors reports whether any diagnostic of severity Error was added.
func (b *Bag) HasErrors() bool { return b.errCount > 0 }

// ErrorCount reports the number of error-severity diagnostics recorded.
func (b *Bag) ErrorCount() int { return b.errCount }

// Extend appends every diagnostic from other onto b, preserving order.
// Used when a pass runs its own scratch Bag and folds it back into the
// pipeline-wide one.
func (b *Bag) Extend(other *Bag) {
	if other == nil {
		return
	}
	b.diags = append(b.diags, other.diags...)
	b.errCount += other.errCount
}

// Err aggregates every error-severity diagnostic into a single error via
// multierr, for API boundaries that want a plain Go error rather than a
// diagnostic list (e.g. tests, or a caller that ignores warnings).
func (b *Bag) Err() error {
	var errs []error
	for _, d := range b.diags {
		if d.Severity == Error {
			errs = append(errs, diagError{d})
		}
	}
	return multierr.Combine(errs...)
}

type diagError struct{ d Diagnostic }

func (e diagError) Error() string { return e.d.Message }

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

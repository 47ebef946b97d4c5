// Package fields decomposes single spreadsheet cells into typed values.
//
// Parsers here never fail on ambiguous input. Each returns a Result tagged
// Parsed or Defaulted so callers can tell a confident parse from a fallback.
package fields

type Outcome int

const (
	Parsed Outcome = iota
	Defaulted
)

func (o Outcome) String() string {
	if o == Defaulted {
		return "defaulted"
	}
	return "parsed"
}

type Result[T any] struct {
	Value   T
	Outcome Outcome
}

func (r Result[T]) WasDefaulted() bool {
	return r.Outcome == Defaulted
}

func parsed[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: Parsed}
}

func defaulted[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: Defaulted}
}

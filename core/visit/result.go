package visit

import (
	"errors"
	"fmt"
)

// Outcome is how a single recording attempt ended.
type Outcome int

const (
	// OutcomeSkipped means the request was not eligible (anonymous or bypassed).
	OutcomeSkipped Outcome = iota
	// OutcomeCached means the dedup cache already held the digest.
	OutcomeCached
	// OutcomeCreated means a new record was persisted.
	OutcomeCreated
	// OutcomeDuplicate means the store already held a record with the digest.
	OutcomeDuplicate
	// OutcomeFailed means the store failed for another reason.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCached:
		return "cached"
	case OutcomeCreated:
		return "created"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of persisting or recording a visit.
// Record is the stored record for created and duplicate outcomes when known.
// Err wraps ErrDuplicate or ErrTransient for the matching outcomes.
type Result struct {
	Outcome Outcome
	Record  *Record
	Err     error
}

// Recorded reports whether a record with the digest is known to exist.
func (r Result) Recorded() bool {
	return r.Outcome == OutcomeCreated || r.Outcome == OutcomeDuplicate || r.Outcome == OutcomeCached
}

// Created is the result of a successful insert.
func Created(rec *Record) Result {
	return Result{Outcome: OutcomeCreated, Record: rec}
}

// Duplicate is the result of a uniqueness conflict. existing may be nil when the
// store does not return the conflicting record.
func Duplicate(existing *Record, cause error) Result {
	err := ErrDuplicate
	if cause != nil && !errors.Is(cause, ErrDuplicate) {
		err = errors.Join(ErrDuplicate, cause)
	}
	return Result{Outcome: OutcomeDuplicate, Record: existing, Err: err}
}

// Failed is the result of any other persistence error.
func Failed(cause error) Result {
	err := ErrTransient
	if cause != nil && !errors.Is(cause, ErrTransient) {
		err = errors.Join(ErrTransient, cause)
	}
	return Result{Outcome: OutcomeFailed, Err: err}
}

func skipped(err error) Result {
	return Result{Outcome: OutcomeSkipped, Err: err}
}

func cached() Result {
	return Result{Outcome: OutcomeCached}
}

package sched

import "errors"

var (
	// ErrMalformedConfig covers unknown algorithms and missing, extra or invalid options.
	ErrMalformedConfig = errors.New("malformed scheduler config")
	// ErrUnsupportedAlgorithm is returned for algorithms that validate but have no engine.
	ErrUnsupportedAlgorithm = errors.New("algorithm is not implemented by the engine")
	// ErrEmptyQueue is returned by Pop and Peek on an empty EventQueue.
	ErrEmptyQueue = errors.New("empty event queue")
	// ErrDivisionUndefined is returned when a statistic has a zero denominator.
	ErrDivisionUndefined = errors.New("division undefined")
	// ErrInvariant marks a state the engine should never reach.
	ErrInvariant = errors.New("engine invariant violated")
)

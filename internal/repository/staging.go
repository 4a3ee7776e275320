package repository

import (
	"fmt"
	"reflect"
)

// Params is the positional parameter list of the operation in flight. A
// public repository operation resets it, stages every value with a single
// Stage call, and the bridged query reads the values back by position.
type Params struct {
	values []interface{}
	staged bool
}

// Reset empties the list for the next operation.
func (p *Params) Reset() {
	p.values = p.values[:0]
	p.staged = false
}

// Stage records the values of one operation, in query order. Staging twice
// without a Reset is a programming error.
func (p *Params) Stage(values ...interface{}) {
	if p.staged {
		panic(&StagingError{Position: len(p.values), Reason: "parameters already staged for this operation"})
	}
	p.values = append(p.values, values...)
	p.staged = true
}

// Len returns the number of staged values.
func (p *Params) Len() int {
	return len(p.values)
}

// StagingError describes a positional read that does not match what was
// staged. It is raised as a panic because it can only come from a query
// reading its parameters differently from how its caller staged them.
type StagingError struct {
	Position int
	Want     string
	Got      string
	Reason   string
}

func (e *StagingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("parameter %d: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("parameter %d: want %s, staged %s", e.Position, e.Want, e.Got)
}

// Arg returns the staged value at position i as a T.
func Arg[T any](p *Params, i int) T {
	want := reflect.TypeOf((*T)(nil)).Elem().String()

	if i < 0 || i >= len(p.values) {
		panic(&StagingError{Position: i, Want: want, Got: "nothing"})
	}

	v, ok := p.values[i].(T)
	if !ok {
		panic(&StagingError{Position: i, Want: want, Got: fmt.Sprintf("%T", p.values[i])})
	}
	return v
}

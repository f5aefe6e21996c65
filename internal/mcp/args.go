package mcp

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrIndexOutOfRange indicates a positional edit outside the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// ArgList is an ordered argument list edited by position.
type ArgList []string

func (a ArgList) check(i, limit int) error {
	if i < 0 || i > limit {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d (len %d)", i, len(a))
	}
	return nil
}

// Insert places v at position i, shifting later arguments right.
// An index equal to the length appends.
func (a *ArgList) Insert(i int, v string) error {
	if err := a.check(i, len(*a)); err != nil {
		return err
	}
	*a = slices.Insert(*a, i, v)
	return nil
}

// Append adds v at the end.
func (a *ArgList) Append(v string) {
	*a = append(*a, v)
}

// Set replaces the argument at position i.
func (a *ArgList) Set(i int, v string) error {
	if err := a.check(i, len(*a)-1); err != nil {
		return err
	}
	(*a)[i] = v
	return nil
}

// Remove deletes the argument at position i.
func (a *ArgList) Remove(i int) error {
	if err := a.check(i, len(*a)-1); err != nil {
		return err
	}
	*a = slices.Delete(*a, i, i+1)
	return nil
}

// Move relocates the argument at from so that it ends up at position to.
func (a *ArgList) Move(from, to int) error {
	last := len(*a) - 1
	if err := a.check(from, last); err != nil {
		return err
	}
	if err := a.check(to, last); err != nil {
		return err
	}
	v := (*a)[from]
	*a = slices.Delete(*a, from, from+1)
	*a = slices.Insert(*a, to, v)
	return nil
}

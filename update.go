package segtree

import (
	"fmt"
	"math"
)

type opKind uint8

const (
	opNone opKind = iota
	opAdd
	opAssign
)

// Update is a range update operation, either adding a delta to every reading
// of a range or overwriting every reading of a range with a value.
//
// The zero value is the empty update. It is used internally as "no pending
// marker" and is rejected by Tree.ApplyRange.
type Update struct {
	kind  opKind
	value float64
}

// Add creates an update adding delta to every reading of a range.
func Add(delta float64) Update {
	return Update{kind: opAdd, value: delta}
}

// Assign creates an update setting every reading of a range to value.
func Assign(value float64) Update {
	return Update{kind: opAssign, value: value}
}

// IsAdd is true for updates created by Add.
func (u Update) IsAdd() bool {
	return u.kind == opAdd
}

// IsAssign is true for updates created by Assign.
func (u Update) IsAssign() bool {
	return u.kind == opAssign
}

// IsEmpty is true for the zero Update.
func (u Update) IsEmpty() bool {
	return u.kind == opNone
}

// Value returns the delta of an Add or the value of an Assign.
func (u Update) Value() float64 {
	return u.value
}

func (u Update) String() string {
	switch u.kind {
	case opAdd:
		return fmt.Sprintf("add(%+g)", u.value)
	case opAssign:
		return fmt.Sprintf("assign(%g)", u.value)
	}
	return "none"
}

func (u Update) valid() bool {
	return u.kind != opNone && !math.IsNaN(u.value) && !math.IsInf(u.value, 0)
}

// then composes u with a subsequent update next, resulting in a single update
// with the same effect as applying u first and next second.
//
// An Assign always wins over whatever is pending. An Add accumulates onto a
// pending Add and shifts the value of a pending Assign.
func (u Update) then(next Update) Update {
	switch next.kind {
	case opNone:
		return u
	case opAssign:
		return next
	}
	switch u.kind {
	case opAdd:
		return Add(u.value + next.value)
	case opAssign:
		return Assign(u.value + next.value)
	}
	return next
}

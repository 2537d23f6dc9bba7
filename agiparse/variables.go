package agiparse

import "strconv"

// Variables is an insertion-ordered name -> value mapping, the
// representation for the agi_* keys of a VariableDump. A plain
// map[string]string would lose the order Asterisk sent the lines in;
// nothing in the pack ships a ready-made ordered map for this, so this
// is the minimal hand-rolled one.
type Variables struct {
	keys   []string
	values map[string]string
}

// NewVariables returns an empty, ready-to-use Variables.
func NewVariables() Variables {
	return Variables{values: make(map[string]string)}
}

// Set records name -> value, appending name to the key order the first
// time it is seen. A later Set of an already-present name updates the
// value in place without moving its position.
func (v *Variables) Set(name, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, ok := v.values[name]; !ok {
		v.keys = append(v.keys, name)
	}
	v.values[name] = value
}

// Get returns the value for name and whether it was present.
func (v Variables) Get(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Keys returns the names in the order they were first seen.
func (v Variables) Keys() []string {
	return v.keys
}

// Len returns the number of distinct names recorded.
func (v Variables) Len() int {
	return len(v.keys)
}

// Priority decodes the well-known agi_priority key as an integer,
// mirroring the typed accessor the original AGIVariableDump exposed
// directly as a struct field.
func (v Variables) Priority() (int, error) {
	raw, ok := v.Get("agi_priority")
	if !ok {
		return 0, &ParseError{Kind: VariableDumpWithoutRequest, Text: "agi_priority"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Kind: IntParse, Text: raw, Err: err}
	}
	return n, nil
}

// Enhanced decodes the well-known agi_enhanced key ("0.0"/"1.0") as a
// bool.
func (v Variables) Enhanced() (bool, error) {
	raw, ok := v.Get("agi_enhanced")
	if !ok {
		return false, &ParseError{Kind: VariableDumpWithoutRequest, Text: "agi_enhanced"}
	}
	switch raw {
	case "0.0":
		return false, nil
	case "1.0":
		return true, nil
	default:
		return false, &ParseError{Kind: NotAnAGIMessage, Text: raw}
	}
}

// ThreadID decodes the well-known agi_threadid key as an integer.
func (v Variables) ThreadID() (int64, error) {
	raw, ok := v.Get("agi_threadid")
	if !ok {
		return 0, &ParseError{Kind: VariableDumpWithoutRequest, Text: "agi_threadid"}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParseError{Kind: IntParse, Text: raw, Err: err}
	}
	return n, nil
}

// CustomArg returns the n-th agi_arg_n custom argument, if present.
func (v Variables) CustomArg(n uint8) (string, bool) {
	return v.Get("agi_arg_" + strconv.Itoa(int(n)))
}

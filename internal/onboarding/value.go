package onboarding

import (
	"strings"

	"github.com/google/uuid"
)

// Value is the result of resolving a relation path from a vendor root.
// Absent means "not yet filled in"; a present false or zero is a completed
// answer and must not be conflated with absent.
type Value struct {
	raw     any
	present bool
}

// Absent is the missing-value result.
func Absent() Value {
	return Value{}
}

// Present reports whether the path resolved to a usable value.
func (v Value) Present() bool {
	return v.present
}

// Raw returns the resolved value, or nil when absent.
func (v Value) Raw() any {
	if !v.present {
		return nil
	}
	return v.raw
}

// String normalizes empty and all-whitespace strings to absent.
func String(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Absent()
	}
	return Value{raw: s, present: true}
}

// StringPtr treats a nil pointer like a blank string.
func StringPtr(p *string) Value {
	if p == nil {
		return Absent()
	}
	return String(*p)
}

// Bool is always present; false is a deliberate answer.
func Bool(b bool) Value {
	return Value{raw: b, present: true}
}

// BoolPtr distinguishes an unanswered question (nil) from an explicit false.
func BoolPtr(p *bool) Value {
	if p == nil {
		return Absent()
	}
	return Bool(*p)
}

// Float is always present; zero is a valid value.
func Float(f float64) Value {
	return Value{raw: f, present: true}
}

// FloatPtr resolves nil to absent and preserves zero.
func FloatPtr(p *float64) Value {
	if p == nil {
		return Absent()
	}
	return Float(*p)
}

// UUIDPtr resolves nil and the zero UUID to absent.
func UUIDPtr(p *uuid.UUID) Value {
	if p == nil || *p == uuid.Nil {
		return Absent()
	}
	return Value{raw: *p, present: true}
}

// Ref marks a reached related entity as present.
func Ref(v any) Value {
	return Value{raw: v, present: true}
}

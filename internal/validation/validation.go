// Package validation turns raw form values into typed records.
//
// A Schema is a list of fields. Each field coerces its raw string into a
// typed value, runs its rules in order and assigns the value into the
// record. Validation never fails with an error: it returns a Result that is
// either valid or carries the messages of every failing field.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// FieldErrors maps a field name to its failure messages, in rule order.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Rule is a predicate over a coerced value plus the message reported when it fails.
type Rule[T any] struct {
	Check   func(T) bool
	Message string
}

// Must pairs a predicate with its failure message.
func Must[T any](check func(T) bool, message string) Rule[T] {
	return Rule[T]{Check: check, Message: message}
}

// FieldSpec is one field of a Schema over record type R.
type FieldSpec[R any] interface {
	Name() string
	apply(raw map[string]string, out *R, errs FieldErrors)
}

type field[R, T any] struct {
	name   string
	coerce func(string) T
	assign func(*R, T)
	rules  []Rule[T]
}

// Field declares a field read from raw[name], coerced with coerce and stored with assign.
func Field[R, T any](name string, coerce func(string) T, assign func(*R, T), rules ...Rule[T]) FieldSpec[R] {
	return &field[R, T]{name: name, coerce: coerce, assign: assign, rules: rules}
}

func (f *field[R, T]) Name() string { return f.name }

func (f *field[R, T]) apply(raw map[string]string, out *R, errs FieldErrors) {
	value := f.coerce(raw[f.name])
	failed := false
	for _, rule := range f.rules {
		if !rule.Check(value) {
			errs.add(f.name, rule.Message)
			failed = true
		}
	}
	if !failed {
		f.assign(out, value)
	}
}

// Result is the outcome of Schema.Validate. Value is only meaningful when Valid is true.
type Result[R any] struct {
	Value  R
	Errors FieldErrors
}

func (r Result[R]) Valid() bool { return len(r.Errors) == 0 }

// Schema validates raw string maps into R.
type Schema[R any] struct {
	fields []FieldSpec[R]
}

func NewSchema[R any](fields ...FieldSpec[R]) *Schema[R] {
	return &Schema[R]{fields: fields}
}

// Validate runs every field and collects all failures.
func (s *Schema[R]) Validate(raw map[string]string) Result[R] {
	var out R
	errs := FieldErrors{}
	for _, f := range s.fields {
		f.apply(raw, &out, errs)
	}
	if len(errs) > 0 {
		return Result[R]{Errors: errs}
	}
	return Result[R]{Value: out}
}

// Fields returns the field names in declaration order.
func (s *Schema[R]) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		names = append(names, f.Name())
	}
	return names
}

// String is the identity coercion.
func String(raw string) string { return raw }

// Number is a coerced numeric input. Valid is false when the input was not a number.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

// Bounds on numeric input. Values outside them are invalid rather than parsed.
const (
	MaxNumberLength   = 64
	MaxNumberExponent = 32
)

// AsNumber coerces like a form number input: blank is zero, anything unparsable
// or outside the length and exponent bounds is invalid.
func AsNumber(raw string) Number {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Number{Value: decimal.Zero, Valid: true}
	}
	if len(raw) > MaxNumberLength {
		return Number{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Number{}
	}
	if exp := d.Exponent(); exp < -MaxNumberExponent || exp > MaxNumberExponent {
		return Number{}
	}
	return Number{Value: d, Valid: true}
}

// GreaterThan reports whether a number is valid and strictly above min.
func GreaterThan(min decimal.Decimal) func(Number) bool {
	return func(n Number) bool {
		return n.Valid && n.Value.GreaterThan(min)
	}
}

// Tag checks a string against a go-playground/validator tag such as "required" or "oneof=a b".
func Tag(tag string) func(string) bool {
	return func(v string) bool {
		return validate.Var(v, tag) == nil
	}
}

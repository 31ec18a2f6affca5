// Package schema validates decoded JSON payloads against declarative shape
// descriptors before they are turned into typed values.
//
// A shape describes what a payload must look like:
//
//	var Benchmark = schema.Object("benchmark",
//	    schema.Field("id", schema.String()),
//	    schema.Field("merkle_root", schema.Nullable(schema.String())),
//	    schema.Field("num_solutions", schema.Integer()),
//	)
//
//	b, err := schema.Parse[domain.Benchmark](schema.Benchmark, raw)
//
// Field marks a key that must be present (a Nullable field may hold null but
// may not be absent). Optional marks a key that may be absent. Unknown keys
// are passed through unless the object is Strict. Every mismatch is collected into a single *ValidationError,
// so one failed parse reports all broken fields at once.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind is the JSON kind of a decoded value.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindNull    Kind = "null"
	KindUnknown Kind = "unknown"
	KindMissing Kind = "missing"
)

// Shape describes the expected structure of a JSON value.
type Shape interface {
	// String describes the expected value, e.g. "array<string>".
	String() string

	check(path string, v any, issues *[]Issue)
}

// KindOf returns the JSON kind of a value decoded with UseNumber.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case json.Number, float64:
		return KindNumber
	case bool:
		return KindBoolean
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindUnknown
	}
}

type scalar struct {
	kind Kind
}

func (s scalar) String() string { return string(s.kind) }

func (s scalar) check(path string, v any, issues *[]Issue) {
	got := KindOf(v)
	if s.kind == KindInteger {
		if got == KindNumber && isInteger(v) {
			return
		}
		if got == KindNumber {
			*issues = append(*issues, mismatch(path, s, "non-integer number"))
			return
		}
	} else if got == s.kind {
		return
	}
	*issues = append(*issues, mismatch(path, s, string(got)))
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case json.Number:
		_, err := n.Int64()
		return err == nil
	case float64:
		return n == float64(int64(n))
	}
	return false
}

// String matches a JSON string.
func String() Shape { return scalar{KindString} }

// Number matches any JSON number.
func Number() Shape { return scalar{KindNumber} }

// Integer matches a JSON number without a fractional part.
func Integer() Shape { return scalar{KindInteger} }

// Bool matches true or false.
func Bool() Shape { return scalar{KindBoolean} }

// Null matches only null.
func Null() Shape { return scalar{KindNull} }

type unknown struct{}

func (unknown) String() string { return string(KindUnknown) }

func (unknown) check(string, any, *[]Issue) {}

// Unknown matches any value.
func Unknown() Shape { return unknown{} }

type nullable struct {
	inner Shape
}

func (n nullable) String() string { return n.inner.String() + "|null" }

func (n nullable) check(path string, v any, issues *[]Issue) {
	if v == nil {
		return
	}
	var inner []Issue
	n.inner.check(path, v, &inner)
	for i := range inner {
		if inner[i].Path == displayPath(path) {
			inner[i].Expected = n.String()
		}
	}
	*issues = append(*issues, inner...)
}

// Nullable matches inner or null. The key must still be present.
func Nullable(inner Shape) Shape { return nullable{inner} }

type array struct {
	elem Shape
}

func (a array) String() string { return "array<" + a.elem.String() + ">" }

func (a array) check(path string, v any, issues *[]Issue) {
	items, ok := v.([]any)
	if !ok {
		*issues = append(*issues, mismatch(path, a, string(KindOf(v))))
		return
	}
	for i, item := range items {
		a.elem.check(fmt.Sprintf("%s[%d]", path, i), item, issues)
	}
}

// Array matches a JSON array whose items all match elem.
func Array(elem Shape) Shape { return array{elem} }

type tuple struct {
	elems []Shape
}

func (t tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t tuple) check(path string, v any, issues *[]Issue) {
	items, ok := v.([]any)
	if !ok {
		*issues = append(*issues, mismatch(path, t, string(KindOf(v))))
		return
	}
	if len(items) != len(t.elems) {
		*issues = append(*issues, mismatch(path, t, fmt.Sprintf("array of length %d", len(items))))
		return
	}
	for i, item := range items {
		t.elems[i].check(fmt.Sprintf("%s[%d]", path, i), item, issues)
	}
}

// Tuple matches a fixed-length JSON array with per-position shapes.
func Tuple(elems ...Shape) Shape { return tuple{elems} }

type record struct {
	value Shape
}

func (r record) String() string { return "record<" + r.value.String() + ">" }

func (r record) check(path string, v any, issues *[]Issue) {
	m, ok := v.(map[string]any)
	if !ok {
		*issues = append(*issues, mismatch(path, r, string(KindOf(v))))
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.value.check(join(path, k), m[k], issues)
	}
}

// Record matches a JSON object with arbitrary keys whose values match value.
func Record(value Shape) Shape { return record{value} }

// FieldSpec is one key of an object shape.
type FieldSpec struct {
	name     string
	shape    Shape
	optional bool
}

// Field declares a required key.
func Field(name string, shape Shape) FieldSpec {
	return FieldSpec{name: name, shape: shape}
}

// Optional declares a key that may be absent.
func Optional(name string, shape Shape) FieldSpec {
	return FieldSpec{name: name, shape: shape, optional: true}
}

// ObjectShape matches a JSON object with declared keys.
type ObjectShape struct {
	name   string
	fields []FieldSpec
	strict bool
}

// Object builds an object shape. The name is used in error messages.
func Object(name string, fields ...FieldSpec) *ObjectShape {
	return &ObjectShape{name: name, fields: fields}
}

// Strict makes the object reject keys it does not declare.
func (o *ObjectShape) Strict() *ObjectShape {
	cp := *o
	cp.strict = true
	return &cp
}

// Name returns the resource name of the object.
func (o *ObjectShape) Name() string { return o.name }

func (o *ObjectShape) String() string {
	if o.name != "" {
		return o.name
	}
	return string(KindObject)
}

func (o *ObjectShape) check(path string, v any, issues *[]Issue) {
	m, ok := v.(map[string]any)
	if !ok {
		*issues = append(*issues, mismatch(path, o, string(KindOf(v))))
		return
	}
	for _, f := range o.fields {
		fv, present := m[f.name]
		if !present {
			if !f.optional {
				*issues = append(*issues, mismatch(join(path, f.name), f.shape, string(KindMissing)))
			}
			continue
		}
		f.shape.check(join(path, f.name), fv, issues)
	}
	if !o.strict {
		return
	}
	declared := make(map[string]struct{}, len(o.fields))
	for _, f := range o.fields {
		declared[f.name] = struct{}{}
	}
	keys := make([]string, 0)
	for k := range m {
		if _, ok := declared[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		*issues = append(*issues, Issue{Path: join(path, k), Expected: "no field", Actual: string(KindOf(m[k]))})
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func mismatch(path string, expected Shape, actual string) Issue {
	return Issue{
		Path:     displayPath(path),
		Expected: expected.String(),
		Actual:   actual,
	}
}

// nameOf finds the resource name carried by a shape, looking through
// arrays and nullables.
func nameOf(s Shape) string {
	switch v := s.(type) {
	case *ObjectShape:
		return v.name
	case array:
		return nameOf(v.elem)
	case nullable:
		return nameOf(v.inner)
	}
	return ""
}

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// Decode unmarshals raw JSON into generic values, keeping numbers as
// json.Number so integers can be told apart from floats.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Invalid("", "", "valid JSON", err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, Invalid("", "", "single JSON value", "trailing data")
	}
	return v, nil
}

// Check validates a decoded value against shape.
func Check(shape Shape, v any) error {
	var issues []Issue
	shape.check("", v, &issues)
	if len(issues) > 0 {
		return &ValidationError{Resource: nameOf(shape), Issues: issues}
	}
	return nil
}

// Validate checks raw JSON against shape without producing a typed value.
func Validate(shape Shape, raw []byte) error {
	v, err := Decode(raw)
	if err != nil {
		return err
	}
	return Check(shape, v)
}

// Parse checks raw against shape, unmarshals it into T and applies the
// validate struct tags of T. On any failure the value is discarded and a
// *ValidationError is returned.
func Parse[T any](shape Shape, raw []byte) (T, error) {
	var out T
	if err := Validate(shape, raw); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Resource == "" {
			ve.Resource = nameOf(shape)
		}
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, Invalid(nameOf(shape), "", shape.String(), err.Error())
	}
	if issues := structIssues(reflect.ValueOf(out), ""); len(issues) > 0 {
		var zero T
		return zero, &ValidationError{Resource: nameOf(shape), Issues: issues}
	}
	return out, nil
}

// ParseList parses a JSON array whose items match elem.
func ParseList[T any](elem Shape, raw []byte) ([]T, error) {
	items, err := Parse[[]T](Array(elem), raw)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// structIssues runs the validator over structs, walking into slices.
func structIssues(v reflect.Value, prefix string) []Issue {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return structIssues(v.Elem(), prefix)
	case reflect.Slice, reflect.Array:
		var issues []Issue
		for i := 0; i < v.Len(); i++ {
			issues = append(issues, structIssues(v.Index(i), fmt.Sprintf("%s[%d]", prefix, i))...)
		}
		return issues
	case reflect.Struct:
		err := validate.Struct(v.Interface())
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil
		}
		issues := make([]Issue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, fieldIssue(prefix, fe))
		}
		return issues
	}
	return nil
}

func fieldIssue(prefix string, fe validator.FieldError) Issue {
	// Namespace is "Type.field.sub"; drop the type name.
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	path := ns
	if prefix != "" {
		path = prefix + "." + ns
	}
	expected := fe.Tag()
	if fe.Param() != "" {
		expected += "=" + fe.Param()
	}
	return Issue{
		Path:     path,
		Expected: expected,
		Actual:   fmt.Sprintf("%v", fe.Value()),
	}
}

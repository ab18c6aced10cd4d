package shush

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is one positional argument in its pre-flattening form.
// The set of implementations is closed: none, bool, string, bytes,
// scalar, and list. Values are constructed from ordinary Go values by
// Args and If; the variant arms are not constructed directly.
type Value interface {
	// appendTo appends the flattened tokens for this value to argv.
	appendTo(argv []string) []string
}

type noneValue struct{}

func (noneValue) appendTo(argv []string) []string { return argv }

type boolValue bool

func (v boolValue) appendTo(argv []string) []string {
	if !v {
		return argv
	}
	return append(argv, "true")
}

type stringValue string

func (v stringValue) appendTo(argv []string) []string { return append(argv, string(v)) }

type bytesValue []byte

func (v bytesValue) appendTo(argv []string) []string { return append(argv, string(v)) }

// scalarValue holds the canonical text form of a non-collection value.
type scalarValue string

func (v scalarValue) appendTo(argv []string) []string { return append(argv, string(v)) }

// listValue expands one level only: each element becomes its own token.
// Nested collections are stringified, not expanded.
type listValue []string

func (v listValue) appendTo(argv []string) []string { return append(argv, v...) }

// If returns v as a positional value when ok is true and the dropped
// sentinel otherwise. It enables conditional arguments without
// branching at the call site:
//
//	cmd.Args("build", shush.If(verbose, "-v"))
func If(ok bool, v any) Value {
	if !ok {
		return noneValue{}
	}
	return arg(v)
}

// arg converts a caller-supplied value into its Value variant.
// false and nil are dropped during flattening; strings and byte slices
// pass through verbatim; slices expand one level; everything else is
// stringified.
func arg(v any) Value {
	switch x := v.(type) {
	case nil:
		return noneValue{}
	case Value:
		return x
	case bool:
		return boolValue(x)
	case string:
		return stringValue(x)
	case []byte:
		return bytesValue(x)
	case []string:
		elems := make([]string, len(x))
		copy(elems, x)
		return listValue(elems)
	case []int:
		elems := make([]string, len(x))
		for i, e := range x {
			elems[i] = strconv.Itoa(e)
		}
		return listValue(elems)
	case []any:
		elems := make([]string, len(x))
		for i, e := range x {
			elems[i] = stringify(e)
		}
		return listValue(elems)
	default:
		return scalarValue(stringify(v))
	}
}

// stringify renders a scalar value in its canonical text form.
// It is total: unhandled types fall back to fmt.Sprint.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// optionToken renders an option name as a command-line token:
// "-k" for single-character names, "--kebab-case" otherwise.
// Underscores become hyphens so Go-friendly names map onto
// conventional long options.
func optionToken(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + strings.ReplaceAll(name, "_", "-")
}

package decimalsum

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind classifies a rejected tool invocation.
type Kind int

const (
	// KindShape means values is missing or not an array.
	KindShape Kind = iota + 1
	// KindElementType means an element of values is not a finite number.
	KindElementType
	// KindPrecision means decimalPlaces is missing, not numeric, fractional,
	// negative or above the configured ceiling.
	KindPrecision
	// KindUnknownOperation means the caller named a tool that is not served.
	KindUnknownOperation
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindElementType:
		return "element_type"
	case KindPrecision:
		return "precision"
	case KindUnknownOperation:
		return "unknown_operation"
	default:
		return "unknown"
	}
}

// ValidationError is the rejection half of a validation outcome. Message is
// the user-facing text without the "Error: " prefix.
type ValidationError struct {
	Kind    Kind
	Index   int // offending element for KindElementType, -1 otherwise
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsKind reports whether err is a *ValidationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == kind
}

// UnknownOperation builds the rejection for a tool name nobody registered.
func UnknownOperation(name string) *ValidationError {
	return &ValidationError{
		Kind:    KindUnknownOperation,
		Index:   -1,
		Message: fmt.Sprintf("Unknown tool '%s'.", name),
	}
}

func shapeError() *ValidationError {
	return &ValidationError{
		Kind:    KindShape,
		Index:   -1,
		Message: "'values' must be an array of numbers.",
	}
}

func elementError(i int, received any) *ValidationError {
	return &ValidationError{
		Kind:    KindElementType,
		Index:   i,
		Message: fmt.Sprintf("'values[%d]' must be a finite number. Received: %s", i, describe(received)),
	}
}

func precisionError() *ValidationError {
	return &ValidationError{
		Kind:    KindPrecision,
		Index:   -1,
		Message: "'decimalPlaces' must be a non-negative integer.",
	}
}

func precisionCeilingError(ceiling int) *ValidationError {
	return &ValidationError{
		Kind:    KindPrecision,
		Index:   -1,
		Message: fmt.Sprintf("'decimalPlaces' must be a non-negative integer no greater than %d.", ceiling),
	}
}

// describe renders a rejected element the way a JSON-speaking client would
// print it: arrays flatten to comma-joined elements, objects collapse to
// "[object Object]" and non-finite floats use Infinity and NaN.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	return display(v)
}

func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = display(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return display(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// 1e-07 -> 1e-7, 1e+21 keeps its sign.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

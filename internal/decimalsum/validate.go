package decimalsum

import (
	"encoding/json"
	"math"
	"reflect"
	"slices"
	"strconv"
)

const (
	// DefaultMaxDecimalPlaces bounds decimalPlaces when a Validator has no
	// explicit ceiling. It matches decimal.js MAX_DIGITS.
	DefaultMaxDecimalPlaces = 1_000_000_000

	// MaxDecimalPlacesLimit is the largest ceiling a Validator honors; the
	// engine renders precision as an int32.
	MaxDecimalPlacesLimit = math.MaxInt32
)

// SumInput is a validated sum request. Only Validate produces one: every
// value is finite and DecimalPlaces is a non-negative whole number.
type SumInput struct {
	values        []float64
	decimalPlaces int
}

// Values returns a copy of the addends in request order.
func (in SumInput) Values() []float64 { return slices.Clone(in.values) }

// DecimalPlaces returns the requested precision.
func (in SumInput) DecimalPlaces() int { return in.decimalPlaces }

// Total runs the engine over the validated input.
func (in SumInput) Total() string { return Sum(in.values, in.decimalPlaces) }

// Args renders the input back into the untyped argument shape a tool call
// carries. Validating the result yields an equal SumInput.
func (in SumInput) Args() map[string]any {
	values := make([]any, len(in.values))
	for i, v := range in.values {
		values[i] = v
	}
	return map[string]any{
		"values":        values,
		"decimalPlaces": float64(in.decimalPlaces),
	}
}

// Validator checks raw tool arguments. The zero value is ready to use and
// applies DefaultMaxDecimalPlaces.
type Validator struct {
	MaxDecimalPlaces int
}

// Validate checks args with the zero Validator.
func Validate(args map[string]any) (SumInput, error) {
	return Validator{}.Validate(args)
}

// Validate checks args and returns either a SumInput or a *ValidationError
// describing the first problem. The values array and every element are
// checked before decimalPlaces is looked at.
func (v Validator) Validate(args map[string]any) (SumInput, error) {
	elems, ok := sequence(args["values"])
	if !ok {
		return SumInput{}, shapeError()
	}

	values := make([]float64, len(elems))
	for i, e := range elems {
		f, ok := number(e)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return SumInput{}, elementError(i, e)
		}
		values[i] = f
	}

	raw, present := args["decimalPlaces"]
	places, ok := number(raw)
	if !present || !ok || math.IsInf(places, 0) || math.Trunc(places) != places || places < 0 {
		return SumInput{}, precisionError()
	}
	if ceiling := v.maxDecimalPlaces(); places > float64(ceiling) {
		return SumInput{}, precisionCeilingError(ceiling)
	}

	return SumInput{values: values, decimalPlaces: int(places)}, nil
}

func (v Validator) maxDecimalPlaces() int {
	switch {
	case v.MaxDecimalPlaces > MaxDecimalPlacesLimit:
		return MaxDecimalPlacesLimit
	case v.MaxDecimalPlaces > 0:
		return v.MaxDecimalPlaces
	default:
		return DefaultMaxDecimalPlaces
	}
}

// sequence accepts the []any produced by JSON decoding as well as typed Go
// slices and arrays from in-process callers.
func sequence(raw any) ([]any, bool) {
	switch s := raw.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i, f := range s {
			out[i] = f
		}
		return out, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// number converts the numeric types a decoded payload may hold. Finiteness is
// left to the caller. NaN never matches math.Trunc(x) == x, so the
// decimalPlaces check rejects it without a separate test.
func number(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		// Widen through the shortest decimal so 0.1f stays 0.1.
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'g', -1, 32), 64)
		return f, err == nil
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

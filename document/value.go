package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number returns numeric value of v if v is any kind of number. Strings are
// not numbers here.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
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
	}
	return 0, false
}

// FormatNumber prints number the shortest way without exponent for the
// ranges documents use: 10 -> "10", 1.5 -> "1.5".
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Int returns integer value of a number or a numeric string, fractions are
// dropped. Values outside of int range saturate.
func Int(v any) (int, bool) {
	if f, ok := Number(v); ok {
		return floorInt(f), true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return floorInt(f), true
	}
	return 0, false
}

// floorInt clamps to int range, float64(math.MaxInt) is 2^63 and does not fit.
func floorInt(f float64) int {
	f = math.Floor(f)
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// Truthy follows loose producer semantics: null, false, 0 and "" are false,
// everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := Number(v); ok {
		return f != 0
	}
	return true
}

// Text converts scalar value into text the way it would be printed,
// composite values and null produce empty string.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := Number(v); ok {
		return FormatNumber(f)
	}
	return ""
}

// String returns value under key if it is a string.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringOr returns non-empty string value under key or def.
func (o *Object) StringOr(key, def string) string {
	if s, ok := o.String(key); ok && s != "" {
		return s
	}
	return def
}

// Object returns value under key if it is an object.
func (o *Object) Object(key string) *Object {
	v, _ := o.Get(key)
	obj, _ := v.(*Object)
	return obj
}

// Array returns value under key if it is an array.
func (o *Object) Array(key string) ([]any, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Truthy reports loose truth of the value under key.
func (o *Object) Truthy(key string) bool {
	v, _ := o.Get(key)
	return Truthy(v)
}

// Present reports whether key holds non-null value.
func (o *Object) Present(key string) bool {
	v, ok := o.Get(key)
	return ok && v != nil
}

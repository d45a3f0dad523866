// SPDX-License-Identifier: MIT
package arraytree

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// normalizeID maps an identifier to its lookup key.
//
// Numbers compare by value whatever their Go type: integral values become int64, others
// float64. Strings are kept as is & never equal a number.
func normalizeID(value any) (key any, err error) {
	switch v := value.(type) {
	case nil, string, bool:
		return v, nil
	case int:
		return signed(v), nil
	case int8:
		return signed(v), nil
	case int16:
		return signed(v), nil
	case int32:
		return signed(v), nil
	case int64:
		return v, nil
	case uint:
		return unsigned(v), nil
	case uint8:
		return unsigned(v), nil
	case uint16:
		return unsigned(v), nil
	case uint32:
		return unsigned(v), nil
	case uint64:
		return unsigned(v), nil
	case float32:
		return float(float64(v)), nil
	case float64:
		return float(v), nil
	case json.Number:
		if i, e := v.Int64(); e == nil {
			return i, nil
		}
		if f, e := v.Float64(); e == nil {
			return float(f), nil
		}

		return v.String(), nil
	}

	if !reflect.TypeOf(value).Comparable() {
		return nil, fmt.Errorf("(%T) %w", value, ErrInvalidID)
	}

	return value, nil
}

func signed[T constraints.Signed](v T) any { return int64(v) }

func unsigned[T constraints.Unsigned](v T) any {
	if uint64(v) > math.MaxInt64 {
		return uint64(v)
	}

	return int64(v)
}

func float(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}

	return f
}

// formatID renders an identifier for error messages, quoting strings.
func formatID(id any) string {
	if s, ok := id.(string); ok {
		return fmt.Sprintf("%q", s)
	}

	return fmt.Sprint(id)
}

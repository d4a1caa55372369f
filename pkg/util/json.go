// pkg/util/json.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// UnmarshalJSON unmarshals the bytes into the given type but reports the
// line and character of syntax and type errors.
func UnmarshalJSON[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := decodeOffset(serr.Offset)
		return fmt.Errorf("line %d, character %d: %w", line, char, serr)

	case errors.As(err, &terr):
		line, char := decodeOffset(terr.Offset)
		return fmt.Errorf("line %d, character %d: %s value for %s invalid for type %s",
			line, char, terr.Value, terr.Field, terr.Type)

	default:
		return err
	}
}

// CheckJSON checks whether the provided JSON is syntactically valid and
// then typechecks it with respect to the provided type T, reporting
// problems to e. Object keys that don't match a field's json tag are
// reported as errors so that misspelled settings aren't silently ignored.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	var items any
	if err := UnmarshalJSON(contents, &items); err != nil {
		e.Error(err)
		return
	}

	typeCheckJSON(items, reflect.TypeFor[T](), e)
}

func typeCheckJSON(v any, ty reflect.Type, e *ErrorLogger) {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	mismatch := func() {
		e.ErrorString("unexpected %s value provided for %s", jsonKind(v), ty)
	}

	switch ty.Kind() {
	case reflect.Array, reflect.Slice:
		if array, ok := v.([]any); ok {
			for i, item := range array {
				e.Push(fmt.Sprintf("[%d]", i))
				typeCheckJSON(item, ty.Elem(), e)
				e.Pop()
			}
		} else if v != nil {
			mismatch()
		}

	case reflect.Map:
		if m, ok := v.(map[string]any); ok {
			for _, k := range SortedMapKeys(m) {
				e.Push(k)
				typeCheckJSON(m[k], ty.Elem(), e)
				e.Pop()
			}
		} else if v != nil {
			mismatch()
		}

	case reflect.Struct:
		items, ok := v.(map[string]any)
		if !ok {
			mismatch()
			return
		}
		for _, item := range SortedMapKeys(items) {
			idx := slices.IndexFunc(reflect.VisibleFields(ty), func(f reflect.StructField) bool {
				tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
				return tag == item
			})
			if idx == -1 {
				e.ErrorString("%q is not an expected setting. Is it misspelled?", item)
				continue
			}
			e.Push(item)
			typeCheckJSON(items[item], reflect.VisibleFields(ty)[idx].Type, e)
			e.Pop()
		}

	case reflect.String:
		if _, ok := v.(string); !ok {
			mismatch()
		}

	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			mismatch()
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if _, ok := v.(float64); !ok {
			mismatch()
		}
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}

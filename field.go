// SPDX-License-Identifier: MIT
package arraytree

import (
	"reflect"
	"strings"
)

type (
	// FieldResolver reads a field from a record.
	//
	// A missing field (or intermediate) is reported through ok, never as an error.
	FieldResolver interface {
		Resolve(record any, path string) (value any, ok bool)
	}

	// FlatKey resolves the path as a literal top-level key, dots included.
	FlatKey struct{}

	// DottedPath splits the path on "." & descends into nested values.
	DottedPath struct{}
)

const pathSeparator = "."

// Resolve implements FieldResolver.
func (FlatKey) Resolve(record any, path string) (value any, ok bool) { return field(record, path) }

// Resolve implements FieldResolver.
func (DottedPath) Resolve(record any, path string) (value any, ok bool) {
	value = record
	for _, key := range strings.Split(path, pathSeparator) {
		if value, ok = field(value, key); !ok {
			return nil, false
		}
	}

	return
}

// field reads a single key from maps with string keys or exported struct fields.
func field(record any, key string) (value any, ok bool) {
	switch r := record.(type) {
	case nil:
		return
	case Item:
		value, ok = r[key]
		return
	case TreeItem:
		value, ok = r[key]
		return
	case map[string]any:
		value, ok = r[key]
		return
	}

	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return
		}

		v := rv.MapIndex(reflect.ValueOf(key).Convert(keyType))
		if !v.IsValid() {
			return
		}

		return v.Interface(), true
	case reflect.Struct:
		return structField(rv, key)
	}

	return
}

// structField matches an exported field by name, then by its json tag.
func structField(rv reflect.Value, key string) (value any, ok bool) {
	rt := rv.Type()
	for index := 0; index < rt.NumField(); index++ {
		sf := rt.Field(index)
		if !sf.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if sf.Name == key || (name != "" && name == key) {
			return rv.Field(index).Interface(), true
		}
	}

	return
}

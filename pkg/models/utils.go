/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var errNotAStruct = errors.New("input must be a struct or pointer to struct")

// FilterSensitiveFields converts a struct into a map keyed by json field
// names, leaving out every field tagged `sensitive:"true"`. Passwords and
// secrets therefore never reach logs or exported records.
func FilterSensitiveFields(input interface{}) (map[string]interface{}, error) {
	if input == nil {
		return make(map[string]interface{}), nil
	}

	result := filterRecursively(reflect.ValueOf(input))
	if result == nil {
		return make(map[string]interface{}), nil
	}

	if resultMap, ok := result.(map[string]interface{}); ok {
		return resultMap, nil
	}

	return nil, errNotAStruct
}

func filterRecursively(rv reflect.Value) interface{} {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return filterStruct(rv)
	case reflect.Slice, reflect.Array:
		result := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result[i] = filterRecursively(rv.Index(i))
		}

		return result
	case reflect.Map:
		result := make(map[string]interface{})

		for _, key := range rv.MapKeys() {
			if keyStr, ok := key.Interface().(string); ok {
				result[keyStr] = filterRecursively(rv.MapIndex(key))
			}
		}

		return result
	case reflect.Invalid:
		return nil
	default:
		if !rv.CanInterface() {
			return nil
		}

		return rv.Interface()
	}
}

func filterStruct(rv reflect.Value) map[string]interface{} {
	rt := rv.Type()
	result := make(map[string]interface{})

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)

		if !field.IsExported() || field.Tag.Get("sensitive") == "true" {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name

		if name, _, _ := strings.Cut(jsonTag, ","); name != "" {
			fieldName = name
		}

		result[fieldName] = filterRecursively(rv.Field(i))
	}

	return result
}

// PublicFields flattens the non-sensitive scalar fields of a struct into
// strings. Empty strings, nested structs and collections are skipped.
func PublicFields(input interface{}) map[string]string {
	fields := make(map[string]string)

	safeData, err := FilterSensitiveFields(input)
	if err != nil {
		return fields
	}

	for key, value := range safeData {
		switch v := value.(type) {
		case nil:
		case string:
			if v != "" {
				fields[key] = v
			}
		case map[string]interface{}, []interface{}:
		default:
			fields[key] = fmt.Sprintf("%v", v)
		}
	}

	return fields
}

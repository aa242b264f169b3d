package simpleexcel

import (
	"fmt"
	"reflect"
	"strings"
)

// ConvertToRows flattens a slice of structs or maps into one map per row. Struct fields are
// reachable by Go name and by json tag name; map fields are flattened to "Field_key".
func ConvertToRows(data interface{}) ([]map[string]interface{}, error) {
	val := reflect.ValueOf(data)
	if !val.IsValid() {
		return nil, nil
	}
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected slice, got %v", val.Kind())
	}

	rows := make([]map[string]interface{}, val.Len())
	for i := 0; i < val.Len(); i++ {
		row, err := flattenRow(val.Index(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows[i] = row
	}
	return rows, nil
}

func flattenRow(elem reflect.Value) (map[string]interface{}, error) {
	for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Map:
		row := make(map[string]interface{}, elem.Len())
		for _, key := range elem.MapKeys() {
			row[fmt.Sprint(key.Interface())] = elem.MapIndex(key).Interface()
		}
		return row, nil
	case reflect.Struct:
		return flattenStruct(elem), nil
	default:
		return nil, fmt.Errorf("expected struct or map, got %v", elem.Kind())
	}
}

func flattenStruct(val reflect.Value) map[string]interface{} {
	result := make(map[string]interface{})

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)
		if fieldType.PkgPath != "" {
			continue
		}
		field := val.Field(i)

		if field.Kind() == reflect.Map {
			if field.IsNil() {
				continue
			}
			for _, key := range field.MapKeys() {
				result[fmt.Sprintf("%s_%v", fieldType.Name, key.Interface())] = field.MapIndex(key).Interface()
			}
			continue
		}

		result[fieldType.Name] = field.Interface()
		if tag := strings.SplitN(fieldType.Tag.Get("json"), ",", 2)[0]; tag != "" && tag != "-" {
			result[tag] = field.Interface()
		}
	}
	return result
}

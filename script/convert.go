package script

import (
	"fmt"

	"github.com/risor-io/risor/object"
)

// ConvertRisorValueToGo converts a Risor object to a Go value
func ConvertRisorValueToGo(obj object.Object) any {
	switch o := obj.(type) {
	case *object.String:
		return o.Value()

	case *object.Int:
		return o.Value()

	case *object.Float:
		return o.Value()

	case *object.Bool:
		return o.Value()

	case *object.Time:
		return o.Value()

	case *object.NilType:
		return nil

	case *object.List:
		var result []interface{}
		for _, item := range o.Value() {
			result = append(result, ConvertRisorValueToGo(item))
		}
		return result

	case *object.Map:
		result := make(map[string]interface{})
		for key, value := range o.Value() {
			result[key] = ConvertRisorValueToGo(value)
		}
		return result

	default:
		// Modules, functions and other opaque objects stay as Risor objects
		return obj
	}
}

// AsText converts a Go value produced by ConvertRisorValueToGo to a string.
// Only string values convert; nil and every other type is an error.
func AsText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("expected a string, got nil")
	case object.Object:
		return "", fmt.Errorf("expected a string, got %s", v.Type())
	default:
		return "", fmt.Errorf("expected a string, got %T", value)
	}
}

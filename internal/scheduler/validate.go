package scheduler

import (
	"fmt"
	"reflect"
)

// ValidateIdentifiers checks that input is a slice or array whose every
// element is a string and returns the identifiers in order.
// A typed nil slice is a valid empty batch; an untyped nil is not.
func ValidateIdentifiers(input any) ([]string, error) {
	if identifiers, ok := input.([]string); ok {
		return identifiers, nil
	}

	v := reflect.ValueOf(input)
	if !v.IsValid() {
		return nil, &InvalidArgumentError{Message: "got nil"}
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, &InvalidArgumentError{Message: fmt.Sprintf("got %T", input)}
	}

	identifiers := make([]string, v.Len())
	for i := range identifiers {
		elem := v.Index(i)
		if elem.Kind() == reflect.Interface {
			if elem.IsNil() {
				return nil, &InvalidArgumentError{Message: fmt.Sprintf("element %d is nil", i)}
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.String {
			return nil, &InvalidArgumentError{Message: fmt.Sprintf("element %d is %s", i, elem.Type())}
		}
		identifiers[i] = elem.String()
	}
	return identifiers, nil
}

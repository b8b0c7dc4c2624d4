package filter

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"
)

// ModelSource supplies the model values referenced by collection tokens
type ModelSource interface {
	// ModelValue returns the value of the model field called name, false when there is none
	ModelValue(name string) (interface{}, bool)
	TypeName() string
}

type structSource struct {
	value reflect.Value
}

// StructSource returns a ModelSource reading the fields of model, a struct or a pointer to one.
// Unexported fields are readable too, so inner clause values need not be part of a model's public API.
func StructSource(model interface{}) ModelSource {
	return structSource{value: reflect.ValueOf(model)}
}

func (s structSource) TypeName() string {
	if !s.value.IsValid() {
		return "<nil>"
	}
	return s.value.Type().String()
}

func (s structSource) ModelValue(name string) (interface{}, bool) {
	v := s.value
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil, false
	}

	f, ok := v.Type().FieldByName(name)
	if !ok {
		return nil, false
	}

	if !v.CanAddr() {
		addressable := reflect.New(v.Type()).Elem()
		addressable.Set(v)
		v = addressable
	}
	fv, err := v.FieldByIndexErr(f.Index)
	if err != nil {
		// behind a nil embedded pointer
		return nil, true
	}
	if !fv.CanInterface() {
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}
	return fv.Interface(), true
}

// isAbsent returns true for the values a filter model leaves unset: nil, or text
// that is empty or whitespace once dereferenced. Zero numbers and dates are present.
func isAbsent(value interface{}) bool {
	v := reflect.ValueOf(value)
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return true
			}
			v = v.Elem()
			continue
		case reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			if v.IsNil() {
				return true
			}
		}
		return strings.TrimSpace(fmt.Sprint(v.Interface())) == ""
	}
	return true
}

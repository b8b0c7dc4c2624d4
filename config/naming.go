package config

import "github.com/iancoleman/strcase"

// NamingConvention maps the names used in filter paths and by storage
// to the fields of Go entity types
type NamingConvention interface {
	// ToField returns the Go field name a path segment refers to when it is not an exact match
	ToField(segment string) string

	// ToColumn returns the storage column name of a Go field
	ToColumn(field string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToField(segment string) string {
	return strcase.ToCamel(segment)
}

func (n *defaultNaming) ToColumn(field string) string {
	return strcase.ToSnake(field)
}

type exactNaming struct {
}

// NewExactNaming returns a convention where paths and columns use the Go field names verbatim
func NewExactNaming() NamingConvention {
	return &exactNaming{}
}

func (n *exactNaming) ToField(segment string) string {
	return segment
}

func (n *exactNaming) ToColumn(field string) string {
	return field
}

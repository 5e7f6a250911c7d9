package ir

import "strings"

// PrimitiveType is the type of a parameter.
type PrimitiveType string

const (
	TypeInt    PrimitiveType = "INT"
	TypeDouble PrimitiveType = "DOUBLE"
	TypeString PrimitiveType = "STRING"
)

var parameterTypes = map[string]PrimitiveType{
	"integer": TypeInt,
	"int":     TypeInt,
	"double":  TypeDouble,
	"float":   TypeDouble,
	"string":  TypeString,
	"str":     TypeString,
	"text":    TypeString,
}

var artifactTypes = map[string]string{
	"model":                       "system.Model",
	"dataset":                     "system.Dataset",
	"metrics":                     "system.Metrics",
	"classificationmetrics":       "system.ClassificationMetrics",
	"slicedclassificationmetrics": "system.SlicedClassificationMetrics",
}

const (
	defaultArtifactSchema = "system.Artifact"

	schemaMetrics               = "system.Metrics"
	schemaClassificationMetrics = "system.ClassificationMetrics"
)

// IsParameterType reports whether a declared type name denotes a parameter
// rather than an artifact. An undeclared (empty) type is a string parameter.
func IsParameterType(typeName string) bool {
	if typeName == "" {
		return true
	}
	_, ok := parameterTypes[strings.ToLower(typeName)]
	return ok
}

// ParameterType maps a declared type name to a primitive type. Callers check
// IsParameterType first; unknown names map to STRING.
func ParameterType(typeName string) PrimitiveType {
	if t, ok := parameterTypes[strings.ToLower(typeName)]; ok {
		return t
	}
	return TypeString
}

// ValueField returns the runtime accessor used to read a parameter of the
// given type inside a trigger expression.
func ValueField(typeName string) string {
	switch ParameterType(typeName) {
	case TypeInt:
		return "int_value"
	case TypeDouble:
		return "double_value"
	default:
		return "string_value"
	}
}

// ArtifactSchema maps a declared type name to an artifact schema title. A
// name already in schema form ("system.X") is returned unchanged.
func ArtifactSchema(typeName string) string {
	if strings.HasPrefix(typeName, "system.") {
		return typeName
	}
	if title, ok := artifactTypes[strings.ToLower(typeName)]; ok {
		return title
	}
	return defaultArtifactSchema
}

// IsMetricsSchema reports whether outputs of this schema are surfaced on
// every ancestor component.
func IsMetricsSchema(schemaTitle string) bool {
	return schemaTitle == schemaMetrics || schemaTitle == schemaClassificationMetrics
}

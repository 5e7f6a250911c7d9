package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterTypes(t *testing.T) {
	testCases := []struct {
		typeName    string
		isParameter bool
		primitive   PrimitiveType
		field       string
	}{
		{typeName: "Integer", isParameter: true, primitive: TypeInt, field: "int_value"},
		{typeName: "int", isParameter: true, primitive: TypeInt, field: "int_value"},
		{typeName: "Float", isParameter: true, primitive: TypeDouble, field: "double_value"},
		{typeName: "double", isParameter: true, primitive: TypeDouble, field: "double_value"},
		{typeName: "String", isParameter: true, primitive: TypeString, field: "string_value"},
		{typeName: "text", isParameter: true, primitive: TypeString, field: "string_value"},
		{typeName: "", isParameter: true, primitive: TypeString, field: "string_value"},
		{typeName: "Dataset", isParameter: false, primitive: TypeString, field: "string_value"},
	}

	for _, tc := range testCases {
		t.Run(tc.typeName, func(t *testing.T) {
			assert.Equal(t, tc.isParameter, IsParameterType(tc.typeName))
			assert.Equal(t, tc.primitive, ParameterType(tc.typeName))
			assert.Equal(t, tc.field, ValueField(tc.typeName))
		})
	}
}

func TestArtifactSchema(t *testing.T) {
	assert.Equal(t, "system.Model", ArtifactSchema("Model"))
	assert.Equal(t, "system.Dataset", ArtifactSchema("dataset"))
	assert.Equal(t, "system.ClassificationMetrics", ArtifactSchema("ClassificationMetrics"))
	assert.Equal(t, "system.Artifact", ArtifactSchema("SomethingElse"))
	assert.Equal(t, "system.HTML", ArtifactSchema("system.HTML"))

	assert.True(t, IsMetricsSchema(ArtifactSchema("Metrics")))
	assert.True(t, IsMetricsSchema(ArtifactSchema("ClassificationMetrics")))
	assert.False(t, IsMetricsSchema(ArtifactSchema("SlicedClassificationMetrics")))
	assert.False(t, IsMetricsSchema(ArtifactSchema("Model")))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "task-train", TaskName("train"))
	assert.Equal(t, "comp-train", ComponentName("train"))
	assert.Equal(t, "exec-train", ExecutorLabel("train"))
	assert.Equal(t, "pipelineparam--producer-out", InputName("producer-out"))
	assert.Equal(t, "task-train-metrics", MetricsOutputName(TaskName("train"), "metrics"))
}

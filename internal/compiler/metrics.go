package compiler

import (
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// surfaceMetrics republishes every metrics output of t on each enclosing
// component up to the root, under a key unique across the pipeline. The
// immediate parent selects the task's own output; every higher ancestor
// selects the republished output of its child on the path.
func (e *emitter) surfaceMetrics(t *model.Task) {
	path, ok := e.res.Index.TaskPath(t.Name)
	if !ok || len(path) < 2 {
		return
	}
	taskName := ir.TaskName(t.Name)

	for _, out := range t.Outputs {
		if ir.IsParameterType(out.Type) {
			continue
		}
		schema := ir.ArtifactSchema(out.Type)
		if !ir.IsMetricsSchema(schema) {
			continue
		}
		key := ir.MetricsOutputName(taskName, out.Name)

		for i := len(path) - 2; i >= 0; i-- {
			b, ok := e.groups[path[i]]
			if !ok {
				continue
			}
			subtask, outputKey := ir.TaskName(path[i+1]), key
			if i == len(path)-2 {
				outputKey = out.Name
			}
			b.declareOutput(key, schema)
			b.exposeArtifact(key, subtask, outputKey)
		}
		e.logger.Debug("Emit: Metrics surfaced.", "task", t.Name, "output", key, "levels", len(path)-1)
	}
}

package resolve

import (
	"context"
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// Result bundles the output of every resolution stage.
type Result struct {
	Index        *Index
	Conditions   ConditionParams
	Loops        Loops
	Types        Types
	IO           *IO
	Dependencies Dependencies
}

// Resolve runs all resolution stages over a pipeline.
func Resolve(ctx context.Context, p *model.Pipeline) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if p.Root == nil {
		return nil, fmt.Errorf("pipeline %q has no root group", p.Name)
	}

	logger.Debug("Resolve: Indexing scopes.")
	ix := BuildIndex(p.Root)
	logger.Debug("Resolve: Index built.", "tasks", len(ix.Tasks()), "groups", len(ix.Groups()), "aliases", len(ix.Aliases()))

	conds, loops := Discover(p.Root)
	logger.Debug("Resolve: Conditions and loops collected.", "conditioned_scopes", len(conds), "loops", len(loops))

	types := UnifyTypes(p.Params, ix, conds)

	io, err := ResolveIO(ix, conds, loops)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve inputs and outputs: %w", err)
	}
	logger.Debug("Resolve: Inputs and outputs resolved.", "scopes_with_inputs", len(io.Inputs), "scopes_with_outputs", len(io.Outputs))

	deps, err := ResolveDependencies(ix, conds)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	logger.Debug("Resolve: Dependencies resolved.", "scopes_with_dependencies", len(deps))

	return &Result{
		Index:        ix,
		Conditions:   conds,
		Loops:        loops,
		Types:        types,
		IO:           io,
		Dependencies: deps,
	}, nil
}

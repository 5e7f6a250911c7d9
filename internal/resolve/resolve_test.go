package resolve

import (
	"context"
	"testing"

	"github.com/specialistvlad/pipelineir/internal/model"
	tu "github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	ctx, logs := tu.LoggedContext()
	p := &model.Pipeline{Name: "nested", Root: nestedTree()}

	res, err := Resolve(ctx, p)

	require.NoError(t, err)
	assert.Len(t, res.Loops, 1)
	assert.NotEmpty(t, res.IO.Inputs)
	assert.Equal(t, []string{"outer"}, res.Dependencies.For("last"))
	assert.Equal(t, "Integer", res.Types.Of(tu.Param("threshold", "")))
	assert.Contains(t, logs.String(), "Resolve: Dependencies resolved.")
}

func TestResolve_WithoutLogger(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), &model.Pipeline{Name: "empty", Root: tu.Root()})

	assert.NoError(t, err)
}

func TestResolve_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), &model.Pipeline{Name: "broken"})

	assert.Error(t, err)
}

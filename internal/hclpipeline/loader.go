package hclpipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/fsutil"
	"github.com/specialistvlad/pipelineir/internal/model"
)

const fileExtension = ".hcl"

// Loader reads pipeline definitions.
type Loader struct{}

// NewLoader creates a new HCL pipeline loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the definition at path. A directory is searched recursively
// for .hcl files, which together must declare exactly one pipeline.
func (l *Loader) Load(ctx context.Context, path string) (*model.Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := findDefinitionFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var blocks hcl.Blocks
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		found, err := pipelineBlocks(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		blocks = append(blocks, found...)
	}
	return l.build(ctx, blocks, path)
}

// Parse reads a definition from memory. filename is used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*model.Pipeline, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	blocks, err := pipelineBlocks(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return l.build(ctx, blocks, filename)
}

func pipelineBlocks(f *hcl.File) (hcl.Blocks, error) {
	content, diags := f.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	return content.Blocks, nil
}

func (l *Loader) build(ctx context.Context, blocks hcl.Blocks, source string) (*model.Pipeline, error) {
	logger := ctxlog.FromContext(ctx)

	block, diags := findUniqueBlock(blocks, blockPipeline)
	if diags.HasErrors() {
		return nil, diags
	}
	if block == nil {
		return nil, fmt.Errorf("no %q block found in %s", blockPipeline, source)
	}

	p, diags := newTreeBuilder(ctx).pipeline(block)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid pipeline %q: %w", block.Labels[0], diags)
	}

	logger.Debug("HCL loading complete.", "pipeline", p.Name, "parameters", len(p.Params), "top_level_scopes", len(p.Root.Children))
	return p, nil
}

// findDefinitionFiles returns path itself or, for a directory, every
// definition file below it.
func findDefinitionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, fileExtension)
	if err != nil {
		return nil, fmt.Errorf("error searching %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", fileExtension, path)
	}
	return files, nil
}

// findUniqueBlock returns the only block of the given type, or a diagnostic
// for each duplicate. It returns nil if there is none.
func findUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed; the first is at " + found.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}

// decodeStrings decodes a list-of-strings attribute.
func decodeStrings(attr *hcl.Attribute) ([]string, hcl.Diagnostics) {
	if attr == nil {
		return nil, nil
	}
	var out []string
	diags := gohcl.DecodeExpression(attr.Expr, nil, &out)
	return out, diags
}

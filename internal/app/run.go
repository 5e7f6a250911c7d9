package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/compiler"
	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/publish"
)

// Run loads the definition, compiles it and writes the result. Nothing is
// written unless every stage succeeds.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	p, err := a.loader.Load(ctx, a.config.DefinitionPath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline definition: %w", err)
	}
	if a.config.PipelineName != "" {
		a.logger.Debug("Pipeline name overridden.", "declared", p.Name, "name", a.config.PipelineName)
		p.Name = a.config.PipelineName
	}
	if a.config.PipelineRoot != "" {
		p.PipelineRoot = a.config.PipelineRoot
	}

	res, err := compiler.Compile(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to compile pipeline %q: %w", p.Name, err)
	}

	var doc any = res.Spec
	if a.config.Job {
		job, err := compiler.NewJob(ctx, res.Spec, p, a.config.Params)
		if err != nil {
			return fmt.Errorf("failed to build pipeline job: %w", err)
		}
		doc = job
	}

	if err := a.write(ctx, doc); err != nil {
		return err
	}

	a.logger.Info("🏁 Compilation finished.", "pipeline", p.Name, "warnings", len(res.Warnings))
	a.logger.Debug("App.Run method finished.")
	return nil
}

var contentTypes = map[ir.Format]string{
	ir.FormatJSON: "application/json",
	ir.FormatYAML: "application/yaml",
}

func (a *App) write(ctx context.Context, doc any) error {
	if publish.IsRemote(a.config.OutputPath) {
		return a.upload(ctx, doc)
	}
	if a.config.OutputPath != "" {
		if err := ir.WriteFile(a.config.OutputPath, doc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		a.logger.Info("Pipeline package written.", "path", a.config.OutputPath)
		return nil
	}

	data, err := ir.Marshal(doc, ir.Format(a.config.OutputFormat))
	if err != nil {
		return err
	}
	if _, err := a.outW.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// upload encodes doc by the object key's extension and stores it.
func (a *App) upload(ctx context.Context, doc any) error {
	loc, err := publish.ParseURI(a.config.OutputPath)
	if err != nil {
		return err
	}
	format, err := ir.FormatForPath(loc.Key)
	if err != nil {
		return err
	}
	data, err := ir.Marshal(doc, format)
	if err != nil {
		return err
	}

	store, err := publish.NewStore(a.config.S3)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := store.Put(ctx, loc, data, contentTypes[format]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("Pipeline package uploaded.", "location", loc.String(), "bytes", len(data))
	return nil
}

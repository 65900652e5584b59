package bench

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/regsight/regsight/internal/artifact"
	"github.com/regsight/regsight/internal/pipeline"
)

// PipelineProcessor adapts the extraction pipeline to the benchmark's
// Processor contract
type PipelineProcessor struct {
	pipe *pipeline.Pipeline

	// OutputDir, when set, receives each document's artifacts in a
	// per-document subdirectory
	OutputDir string
}

// NewPipelineProcessor wraps a pipeline for benchmark use
func NewPipelineProcessor(pipe *pipeline.Pipeline) *PipelineProcessor {
	return &PipelineProcessor{pipe: pipe}
}

// Process runs all pipeline phases for one document and extracts the
// stage outputs the benchmark scores
func (p *PipelineProcessor) Process(ctx context.Context, path string) (StageOutput, error) {
	state, err := p.pipe.Run(ctx, path)
	if err != nil {
		return StageOutput{}, err
	}

	if p.OutputDir != "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := p.pipe.WriteArtifacts(state, filepath.Join(p.OutputDir, name)); err != nil {
			return StageOutput{}, err
		}
	}

	var out StageOutput
	if reg, err := artifact.ParseRegistry(state.Registry); err == nil {
		out.Claims = reg.Claims
	}
	out.Candidates = artifact.ParseCandidates(state.Candidates).Candidates
	out.Flagged = artifact.ParseFindings(state.Findings).Flagged()
	return out, nil
}

// Package pipeline sequences the extraction phases for one document:
// preliminary extraction, evidence registry, deterministic checker,
// detection, validation. Each phase hands an immutable artifact to the
// next; a phase failure degrades to the artifact's empty default and
// the run continues.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/regsight/regsight/internal/artifact"
	"github.com/regsight/regsight/internal/checker"
	"github.com/regsight/regsight/internal/llm"
	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/pdfx"
)

// Pipeline orchestrates the extraction phases for one document
type Pipeline struct {
	provider  llm.Provider // nil when no provider is configured
	checker   *checker.Checker
	extractor *pdfx.Extractor
	config    *model.Config
	progress  io.Writer
}

// New creates a pipeline from configuration. provider may be nil, in
// which case the LLM phases yield empty-default artifacts and only the
// deterministic checker produces content.
func New(cfg *model.Config, provider llm.Provider, extractor *pdfx.Extractor) (*Pipeline, error) {
	chk, err := checker.New(cfg.Checker)
	if err != nil {
		return nil, fmt.Errorf("build checker: %w", err)
	}

	return &Pipeline{
		provider:  provider,
		checker:   chk,
		extractor: extractor,
		config:    cfg,
		progress:  os.Stderr,
	}, nil
}

// Run executes all five phases in order and returns the final state.
// Phases never abort the run; a failed phase leaves its empty-default
// artifact behind and later phases work with that.
func (p *Pipeline) Run(ctx context.Context, documentPath string) (State, error) {
	state := NewState(documentPath)

	state = p.RunPreliminary(ctx, state)
	state = p.RunRegistry(ctx, state)
	state = p.RunChecker(state)
	state = p.RunDetect(ctx, state)
	state = p.RunValidate(ctx, state)

	return state, nil
}

// RunPreliminary executes phase 0: the broad multi-category scan of the
// source document.
func (p *Pipeline) RunPreliminary(ctx context.Context, state State) State {
	doc, text := p.documentInputs(state.DocumentPath)

	resp, err := p.extract(ctx, llm.ExtractRequest{
		Prompt:       preliminaryPrompt,
		Document:     doc,
		DocumentText: text,
		MaxTokens:    p.config.LLM.MaxTokens,
		Temperature:  0,
	})
	if err != nil {
		fmt.Fprintf(p.progress, "[phase 0] preliminary extraction failed: %v\n", err)
		state.Preliminary = artifact.EmptyDefault(artifact.KindPreliminary)
		return state
	}

	fmt.Fprintf(p.progress, "[phase 0] preliminary extraction complete\n")
	state.Preliminary = artifact.Recover(resp.Text, artifact.KindPreliminary)
	return state.withUsage(map[string]int{
		"phase0_input":  resp.InputTokens,
		"phase0_output": resp.OutputTokens,
	})
}

// RunRegistry executes phase 1: the evidence registry build, which
// cross-references the document with the preliminary extraction.
func (p *Pipeline) RunRegistry(ctx context.Context, state State) State {
	doc, text := p.documentInputs(state.DocumentPath)

	prompt := registryPrompt
	if strings.TrimSpace(state.Preliminary) != "" {
		prompt = "PRELIMINARY EXTRACTION (from prior pass):\n\n" + state.Preliminary + "\n\n" + registryPrompt
	}

	resp, err := p.extract(ctx, llm.ExtractRequest{
		Prompt:       prompt,
		Document:     doc,
		DocumentText: text,
		MaxTokens:    p.config.LLM.MaxTokens,
		Temperature:  0,
	})
	if err != nil {
		fmt.Fprintf(p.progress, "[phase 1] registry build failed: %v\n", err)
		state.Registry = artifact.EmptyDefault(artifact.KindRegistry)
		return state
	}

	fmt.Fprintf(p.progress, "[phase 1] evidence registry built\n")
	state.Registry = artifact.Recover(resp.Text, artifact.KindRegistry)
	return state.withUsage(map[string]int{
		"phase1_input":  resp.InputTokens,
		"phase1_output": resp.OutputTokens,
	})
}

// RunChecker executes the deterministic registry audit. No model calls;
// an unreadable document degrades to a PDF_EXTRACT_ERROR report.
func (p *Pipeline) RunChecker(state State) State {
	var pages map[int]string
	var err error
	if p.extractor != nil {
		pages, err = p.extractor.Pages(state.DocumentPath)
	} else {
		pages, err = pdfx.ExtractPages(state.DocumentPath)
	}

	var report model.CheckerReport
	if err != nil {
		fmt.Fprintf(p.progress, "[checker] page extraction failed: %v\n", err)
		report = p.checker.FailureReport(model.IssuePDFExtractError, err.Error())
	} else {
		report = p.checker.CheckRegistryJSON(pages, state.Registry)
	}

	status := "PASSED"
	if !report.Passed {
		status = "WARNINGS"
	}
	fmt.Fprintf(p.progress, "[checker] %s - coverage %.3f, %d issues\n",
		status, report.CoverageScore, len(report.Issues))

	encoded, err := json.Marshal(report)
	if err != nil {
		// Report marshaling cannot realistically fail; keep the contract anyway
		state.CheckerReport = `{"coverage_score": 0.0, "issues": [], "passed": false}`
		return state
	}
	state.CheckerReport = string(encoded)
	return state
}

// RunDetect executes phase 2: violation detection over the filtered
// registry claims. Text only, no document.
func (p *Pipeline) RunDetect(ctx context.Context, state State) State {
	reg, err := artifact.ParseRegistry(state.Registry)
	if err != nil {
		fmt.Fprintf(p.progress, "[phase 2] unusable registry, skipping detection\n")
		state.Candidates = artifact.EmptyDefault(artifact.KindCandidates)
		return state
	}

	claims, contradictions := FilterThemeClaims(reg)
	if len(claims) == 0 {
		fmt.Fprintf(p.progress, "[phase 2] no claims relevant to detection\n")
		state.Candidates = artifact.EmptyDefault(artifact.KindCandidates)
		return state
	}

	input := struct {
		Meta           model.RegistryMeta    `json:"meta"`
		Claims         []model.Claim         `json:"claims"`
		Contradictions []model.Contradiction `json:"contradictions"`
	}{reg.Meta, claims, contradictions}

	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		state.Candidates = artifact.EmptyDefault(artifact.KindCandidates)
		return state
	}

	prompt := detectPrompt + "\n\nEVIDENCE REGISTRY CLAIMS:\n\n" + string(payload)

	resp, err := p.extract(ctx, llm.ExtractRequest{
		Prompt:      prompt,
		MaxTokens:   p.config.LLM.MaxTokens / 2,
		Temperature: 0.3,
	})
	if err != nil {
		fmt.Fprintf(p.progress, "[phase 2] detection failed: %v\n", err)
		state.Candidates = artifact.EmptyDefault(artifact.KindCandidates)
		return state
	}

	fmt.Fprintf(p.progress, "[phase 2] candidates identified\n")
	state.Candidates = artifact.Recover(resp.Text, artifact.KindCandidates)
	return state.withUsage(map[string]int{
		"phase2_input":  resp.InputTokens,
		"phase2_output": resp.OutputTokens,
	})
}

// RunValidate executes phase 3: candidate validation and the final
// findings report. Text only, no document.
func (p *Pipeline) RunValidate(ctx context.Context, state State) State {
	parsed := artifact.ParseCandidates(state.Candidates)
	if len(parsed.Candidates) == 0 {
		fmt.Fprintf(p.progress, "[phase 3] no candidates to validate\n")
		state.Findings = artifact.EmptyDefault(artifact.KindFindings)
		return state
	}

	reg, err := artifact.ParseRegistry(state.Registry)
	if err != nil {
		reg = model.Registry{}
	}

	enriched := enrichCandidates(parsed.Candidates, reg)
	payload, err := json.MarshalIndent(enriched, "", "  ")
	if err != nil {
		state.Findings = artifact.EmptyDefault(artifact.KindFindings)
		return state
	}
	contraPayload, err := json.MarshalIndent(reg.Contradictions, "", "  ")
	if err != nil {
		contraPayload = []byte("[]")
	}

	prompt := validatePrompt +
		"\n\nCANDIDATES TO VALIDATE (with registry entries):\n\n" + string(payload) +
		"\n\nCONTRADICTIONS FROM REGISTRY:\n\n" + string(contraPayload)

	resp, err := p.extract(ctx, llm.ExtractRequest{
		Prompt:      prompt,
		MaxTokens:   p.config.LLM.MaxTokens / 2,
		Temperature: 0,
	})
	if err != nil {
		fmt.Fprintf(p.progress, "[phase 3] validation failed: %v\n", err)
		state.Findings = artifact.EmptyDefault(artifact.KindFindings)
		return state
	}

	fmt.Fprintf(p.progress, "[phase 3] validation complete\n")
	state.Findings = artifact.Recover(resp.Text, artifact.KindFindings)
	return state.withUsage(map[string]int{
		"phase3_input":  resp.InputTokens,
		"phase3_output": resp.OutputTokens,
	})
}

// extract calls the configured provider, if any
func (p *Pipeline) extract(ctx context.Context, req llm.ExtractRequest) (*llm.ExtractResponse, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	return p.provider.Extract(ctx, req)
}

// documentInputs loads the raw PDF bytes and, when a page cache is
// available, the extracted text for providers without document support.
// Either may be empty; the phase proceeds with whatever it got.
func (p *Pipeline) documentInputs(path string) ([]byte, string) {
	doc, err := os.ReadFile(path)
	if err != nil {
		doc = nil
	}

	var text string
	if p.extractor != nil {
		if pages, err := p.extractor.Pages(path); err == nil {
			var sb strings.Builder
			for i := 1; i <= len(pages); i++ {
				fmt.Fprintf(&sb, "--- page %d ---\n%s\n", i, pages[i])
			}
			text = sb.String()
		}
	}
	return doc, text
}

// FilterThemeClaims selects the registry claims relevant to detection:
// claims typed misleading_exaggerated, plus claims of any type carrying
// a theme-relevant flag. Contradictions referencing a selected claim
// come along for context.
func FilterThemeClaims(reg model.Registry) ([]model.Claim, []model.Contradiction) {
	var filtered []model.Claim
	selected := make(map[string]bool)

	for _, claim := range reg.Claims {
		relevant := claim.ClaimType == model.ClaimMisleadingExaggerated
		if !relevant {
			for _, f := range claim.Flags {
				if model.ThemeRelevantFlags[f] {
					relevant = true
					break
				}
			}
		}
		if relevant {
			filtered = append(filtered, claim)
			selected[claim.ClaimID] = true
		}
	}

	var contradictions []model.Contradiction
	for _, con := range reg.Contradictions {
		for _, id := range con.ClaimIDs {
			if selected[id] {
				contradictions = append(contradictions, con)
				break
			}
		}
	}

	return filtered, contradictions
}

// enrichedCandidate pairs a detection candidate with its full registry
// entry so the validator sees support details and flags
type enrichedCandidate struct {
	model.Candidate
	RegistryEntry *model.Claim `json:"registry_entry,omitempty"`
}

func enrichCandidates(candidates []model.Candidate, reg model.Registry) []enrichedCandidate {
	lookup := make(map[string]model.Claim, len(reg.Claims))
	for _, claim := range reg.Claims {
		lookup[claim.ClaimID] = claim
	}

	enriched := make([]enrichedCandidate, 0, len(candidates))
	for _, cand := range candidates {
		e := enrichedCandidate{Candidate: cand}
		if claim, ok := lookup[cand.ClaimID]; ok {
			c := claim
			e.RegistryEntry = &c
		}
		enriched = append(enriched, e)
	}
	return enriched
}

// artifactFiles maps state fields to their output filenames, in phase order
func artifactFiles(state State) []struct{ Name, Content string } {
	return []struct{ Name, Content string }{
		{"0_preliminary_extraction.json", state.Preliminary},
		{"0.5_evidence_registry.json", state.Registry},
		{"0.75_checker_report.json", state.CheckerReport},
		{"1_candidates.json", state.Candidates},
		{"2_findings.json", state.Findings},
	}
}

// WriteArtifacts saves the five phase artifacts to dir, pretty-printing
// the ones that parse as JSON
func (p *Pipeline) WriteArtifacts(state State, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, f := range artifactFiles(state) {
		content := []byte(f.Content)
		var pretty bytes.Buffer
		if json.Indent(&pretty, content, "", "  ") == nil {
			content = pretty.Bytes()
		}
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

// PrintSummary writes the end-of-run banner to the progress writer
func (p *Pipeline) PrintSummary(state State) {
	prelim := artifact.ParsePreliminary(state.Preliminary)

	var nClaims, nContradictions, nGaps int
	if reg, err := artifact.ParseRegistry(state.Registry); err == nil {
		nClaims = len(reg.Claims)
		nContradictions = len(reg.Contradictions)
		nGaps = len(reg.CoverageGaps)
	}

	var report model.CheckerReport
	_ = json.Unmarshal([]byte(state.CheckerReport), &report)

	candidates := artifact.ParseCandidates(state.Candidates)
	findings := artifact.ParseFindings(state.Findings)
	flagged := len(findings.Flagged())
	cleared := len(findings.Diagnostics) - flagged

	line := strings.Repeat("=", 60)
	fmt.Fprintf(p.progress, "\n%s\n", line)
	fmt.Fprintf(p.progress, "PIPELINE COMPLETE: %s\n", filepath.Base(state.DocumentPath))
	fmt.Fprintf(p.progress, "  Preliminary   : %d items (%d disclaimers)\n",
		prelim.TotalItems(), len(prelim.Disclaimers))
	fmt.Fprintf(p.progress, "  Registry      : %d claims, %d contradictions, %d coverage gaps\n",
		nClaims, nContradictions, nGaps)
	fmt.Fprintf(p.progress, "  Checker       : coverage=%.3f, passed=%v, issues=%d\n",
		report.CoverageScore, report.Passed, len(report.Issues))
	fmt.Fprintf(p.progress, "  Candidates    : %d\n", len(candidates.Candidates))
	fmt.Fprintf(p.progress, "  Diagnostics   : %d FLAG / %d CLEAR\n", flagged, cleared)
	fmt.Fprintf(p.progress, "  Tokens        : %d\n", state.TotalTokens())
	fmt.Fprintf(p.progress, "%s\n", line)
}

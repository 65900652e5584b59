// Package artifact implements the JSON artifact contract between
// extraction phases: recovery of malformed payloads and the documented
// empty default for every artifact kind. Every downstream component must
// tolerate empty-default artifacts without raising.
package artifact

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/regsight/regsight/internal/model"
)

// Kind identifies one artifact type in the pipeline contract
type Kind string

const (
	KindPreliminary Kind = "preliminary_extraction"
	KindRegistry    Kind = "evidence_registry"
	KindCandidates  Kind = "candidates"
	KindFindings    Kind = "findings"
)

// EmptyDefault returns the documented empty value for an artifact kind
func EmptyDefault(kind Kind) string {
	switch kind {
	case KindPreliminary:
		return `{"document_metadata": {}, "disclaimers": [], "performance_data": [], "rankings_awards": [], "definitions": [], "footnotes": [], "data_sources": [], "qualifications": [], "audience_indicators": {}, "temporal_context": {}, "visual_elements": []}`
	case KindRegistry:
		return `{"registry": {"meta": {}, "claims": [], "contradictions": [], "coverage_gaps": []}}`
	case KindCandidates:
		return `{"candidates": []}`
	case KindFindings:
		return `{"diagnostics": [], "sections": []}`
	default:
		return `{}`
	}
}

// Recover turns a raw model response into usable artifact JSON. If the
// payload is not valid JSON it attempts brace-delimited extraction
// (first '{' to last '}'); on total failure it substitutes the kind's
// empty default. Never returns invalid JSON.
func Recover(raw string, kind Kind) string {
	if json.Valid([]byte(raw)) && strings.TrimSpace(raw) != "" {
		return raw
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		window := raw[start : end+1]
		if json.Valid([]byte(window)) {
			return window
		}
	}
	return EmptyDefault(kind)
}

// registryWrapper is the wrapped form some producers emit
type registryWrapper struct {
	Registry *model.Registry `json:"registry"`
}

// ParseRegistry decodes a registry artifact, accepting both the wrapped
// {"registry": {...}} form and the bare object.
func ParseRegistry(raw string) (model.Registry, error) {
	var wrapped registryWrapper
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Registry != nil {
		return *wrapped.Registry, nil
	}

	var reg model.Registry
	if err := json.Unmarshal([]byte(raw), &reg); err != nil {
		return model.Registry{}, fmt.Errorf("parse registry: %w", err)
	}
	return reg, nil
}

// CandidatesArtifact is the detection-phase output
type CandidatesArtifact struct {
	Candidates []model.Candidate `json:"candidates"`
}

// ParseCandidates decodes a candidates artifact; malformed input yields
// the empty set, never an error
func ParseCandidates(raw string) CandidatesArtifact {
	var out CandidatesArtifact
	if err := json.Unmarshal([]byte(Recover(raw, KindCandidates)), &out); err != nil {
		return CandidatesArtifact{}
	}
	return out
}

// FindingsArtifact is the validation-phase output: per-candidate
// diagnostics plus final report sections (passed through opaquely)
type FindingsArtifact struct {
	Diagnostics []model.Finding   `json:"diagnostics"`
	Sections    []json.RawMessage `json:"sections"`
}

// ParseFindings decodes a findings artifact; malformed input yields the
// empty set, never an error
func ParseFindings(raw string) FindingsArtifact {
	var out FindingsArtifact
	if err := json.Unmarshal([]byte(Recover(raw, KindFindings)), &out); err != nil {
		return FindingsArtifact{}
	}
	return out
}

// Flagged returns the diagnostics that survived verification
func (f FindingsArtifact) Flagged() []model.Finding {
	var flagged []model.Finding
	for _, d := range f.Diagnostics {
		if d.Disposition == model.DispositionFlag {
			flagged = append(flagged, d)
		}
	}
	return flagged
}

// Preliminary is the broad multi-category first-pass extraction. Item
// contents stay opaque; only the category counts matter downstream.
type Preliminary struct {
	DocumentMetadata json.RawMessage   `json:"document_metadata,omitempty"`
	Disclaimers      []json.RawMessage `json:"disclaimers"`
	PerformanceData  []json.RawMessage `json:"performance_data"`
	RankingsAwards   []json.RawMessage `json:"rankings_awards"`
	Definitions      []json.RawMessage `json:"definitions"`
	Footnotes        []json.RawMessage `json:"footnotes"`
	DataSources      []json.RawMessage `json:"data_sources"`
	Qualifications   []json.RawMessage `json:"qualifications"`
	VisualElements   []json.RawMessage `json:"visual_elements"`
}

// ParsePreliminary decodes a preliminary artifact for summary counting
func ParsePreliminary(raw string) Preliminary {
	var out Preliminary
	if err := json.Unmarshal([]byte(Recover(raw, KindPreliminary)), &out); err != nil {
		return Preliminary{}
	}
	return out
}

// TotalItems counts the extracted items across all list categories
func (p Preliminary) TotalItems() int {
	return len(p.Disclaimers) + len(p.PerformanceData) + len(p.RankingsAwards) +
		len(p.Definitions) + len(p.Footnotes) + len(p.DataSources) +
		len(p.Qualifications) + len(p.VisualElements)
}

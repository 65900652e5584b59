package model

// Registry is the claims-based evidence registry produced by the
// extraction phases and audited by the checker
type Registry struct {
	Meta           RegistryMeta    `json:"meta"`
	Claims         []Claim         `json:"claims"`
	Contradictions []Contradiction `json:"contradictions"`
	CoverageGaps   []CoverageGap   `json:"coverage_gaps,omitempty"`
}

// RegistryMeta identifies the registry and its source documents
type RegistryMeta struct {
	RegistryID  string        `json:"registry_id,omitempty"`
	CreatedDate string        `json:"created_date,omitempty"`
	Documents   []DocumentRef `json:"documents,omitempty"`
}

// DocumentRef describes one source document covered by a registry
type DocumentRef struct {
	DocID    string `json:"doc_id"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
	AsOfDate string `json:"as_of_date,omitempty"`
	Pages    int    `json:"pages,omitempty"`
}

// Contradiction links two or more claims whose text conflicts.
// Referenced claim_ids are checked against the registry, not assumed valid.
type Contradiction struct {
	ContradictionID string            `json:"contradiction_id"`
	Scope           string            `json:"scope,omitempty"` // within_document | cross_document
	DocIDs          []string          `json:"doc_ids,omitempty"`
	ClaimIDs        []string          `json:"claim_ids"`
	TextA           string            `json:"text_a,omitempty"`
	TextB           string            `json:"text_b,omitempty"`
	Type            ContradictionType `json:"type,omitempty"`
}

// ContradictionType classifies the nature of the conflict
type ContradictionType string

const (
	ContradictionFactual    ContradictionType = "factual"
	ContradictionRegulatory ContradictionType = "regulatory"
	ContradictionNumerical  ContradictionType = "numerical"
	ContradictionTonal      ContradictionType = "tonal"
)

// CoverageGap records a preliminary-extraction item that was neither
// promoted to a claim nor consumed as supporting context
type CoverageGap struct {
	PreliminaryID string `json:"preliminary_id,omitempty"`
	Category      string `json:"category,omitempty"`
	Reason        string `json:"reason"`
}

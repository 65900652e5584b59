package model

// IssueType classifies a checker finding
type IssueType string

const (
	IssueMissingPage       IssueType = "MISSING_PAGE"       // Page with zero claims
	IssueOrphanNumber      IssueType = "ORPHAN_NUMBER"      // Source number absent from registry
	IssueMissedDisclaimer  IssueType = "MISSED_DISCLAIMER"  // Boilerplate phrase not captured
	IssueGarbledDisclaimer IssueType = "GARBLED_DISCLAIMER" // Registry dropped a negation word
	IssueInvalidReference  IssueType = "INVALID_REFERENCE"  // Contradiction points at unknown claim
	IssueOrphanFlag        IssueType = "ORPHAN_FLAG"        // Contradiction flag with no entry
	IssueParseError        IssueType = "PARSE_ERROR"        // Registry JSON unusable
	IssuePDFExtractError   IssueType = "PDF_EXTRACT_ERROR"  // Source document unreadable
)

// CriticalIssueTypes are the issue kinds that fail a report outright.
// MISSING_PAGE and the other coverage issues are advisory only.
var CriticalIssueTypes = map[IssueType]bool{
	IssueGarbledDisclaimer: true,
	IssueParseError:        true,
	IssuePDFExtractError:   true,
}

// Issue is one checker finding with kind-specific payload
type Issue struct {
	Type IssueType `json:"type"`

	Page             int    `json:"page,omitempty"`              // MISSING_PAGE
	Number           string `json:"number,omitempty"`            // ORPHAN_NUMBER
	Phrase           string `json:"phrase,omitempty"`            // MISSED_DISCLAIMER
	Description      string `json:"description,omitempty"`       // GARBLED_DISCLAIMER
	ExpectedNegation string `json:"expected_negation,omitempty"` // GARBLED_DISCLAIMER
	Note             string `json:"note,omitempty"`              // GARBLED_DISCLAIMER
	ContradictionID  string `json:"contradiction_id,omitempty"`  // INVALID_REFERENCE
	MissingClaimID   string `json:"missing_claim_id,omitempty"`  // INVALID_REFERENCE
	ClaimID          string `json:"claim_id,omitempty"`          // ORPHAN_FLAG
	Flag             Flag   `json:"flag,omitempty"`              // ORPHAN_FLAG
	Detail           string `json:"detail,omitempty"`            // PARSE_ERROR, PDF_EXTRACT_ERROR
}

// CheckerReport is the scored, categorized issue report produced by the
// registry checker. It is advisory: a failed report never blocks the
// pipeline, it is surfaced to the human reviewer.
type CheckerReport struct {
	CoverageScore       float64           `json:"coverage_score"`
	TotalPages          int               `json:"total_pages"`
	TotalClaims         int               `json:"total_claims"`
	TotalContradictions int               `json:"total_contradictions"`
	Issues              []Issue           `json:"issues"`
	IssueSummary        map[IssueType]int `json:"issue_summary"`
	Passed              bool              `json:"passed"`
}

// CountIssues returns how many issues of the given type the report carries
func (r CheckerReport) CountIssues(t IssueType) int {
	return r.IssueSummary[t]
}

// HasCritical reports whether any issue belongs to the critical set
func (r CheckerReport) HasCritical() bool {
	for _, issue := range r.Issues {
		if CriticalIssueTypes[issue.Type] {
			return true
		}
	}
	return false
}

package model

import "time"

// GroundTruthEntry is an expert-labeled reference finding for one test
// case. Entries are created out-of-band by reviewers and read-only here.
type GroundTruthEntry struct {
	EntryID    string            `json:"entry_id"`
	TestCaseID string            `json:"test_case_id"`
	Sentence   string            `json:"sentence"`
	SubBucket  string            `json:"sub_bucket,omitempty"`
	Severity   string            `json:"severity,omitempty"`
	IsActive   bool              `json:"is_active"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Candidate is one potential violation from the detection phase
type Candidate struct {
	ClaimID            string `json:"claim_id,omitempty"`
	Sentence           string `json:"sentence"`
	PageNumber         int    `json:"page_number,omitempty"`
	CandidateSubBucket string `json:"candidate_sub_bucket,omitempty"`
	SubBucket          int    `json:"sub_bucket,omitempty"`
	Severity           string `json:"severity,omitempty"`
	Confidence         string `json:"confidence,omitempty"`
	BriefReason        string `json:"brief_reason,omitempty"`
}

// Disposition is the outcome assigned to a reviewed candidate
type Disposition string

const (
	DispositionFlag  Disposition = "FLAG"
	DispositionClear Disposition = "CLEAR"
)

// Finding is one validated finding from the final pipeline phase
type Finding struct {
	Sentence    string      `json:"sentence"`
	PageNumber  int         `json:"page_number,omitempty"`
	Disposition Disposition `json:"disposition,omitempty"`
	SubBucket   string      `json:"sub_bucket,omitempty"`
	Reasoning   string      `json:"reasoning,omitempty"`
}

// SubBucketNames are the ten fixed violation categories a flagged
// finding is assigned to
var SubBucketNames = [10]string{
	"Unsubstantiated or Inadequately Supported Statements of Fact",
	"Promissory or Certain-Outcome Language",
	"Implied Guarantees or Certainty through Framing",
	"Overstated, Absolute, or Best-in-Class Claims",
	"Unbalanced Presentation of Benefits without Risks",
	"Exaggerated or Amplified Claims",
	"Vague, Ambiguous, or Undefined Claims",
	"Audience-Inappropriate Language or Complexity",
	"Unfair, Deceptive, or Unclear Communications",
	"ESG, Impact, Sustainability, or Qualitative Claims",
}

// MatchPair records one accepted assignment between a left-side item and
// a ground-truth entry
type MatchPair struct {
	LeftID     string  `json:"left_id"`
	RightID    string  `json:"right_id"`
	Similarity float64 `json:"similarity"`
}

// MatchResult is the output of one matching pass. It is computed fresh
// per call and never mutates its inputs.
type MatchResult struct {
	Pairs          []MatchPair        `json:"matches"`
	MatchedLeft    map[string]bool    `json:"-"`
	MatchedRight   map[string]bool    `json:"-"`
	UnmatchedLeft  []string           `json:"unmatched_left"`
	UnmatchedRight []string           `json:"unmatched_right"`
	MissedTruth    []GroundTruthEntry `json:"missed_ground_truth,omitempty"`
	Coverage       float64            `json:"coverage"`
}

// Metrics holds precision/recall/F1 derived from one matching pass
type Metrics struct {
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1_score"`
}

// DocumentMetrics holds both pipeline-stage metrics for one document
type DocumentMetrics struct {
	TestCaseID  string  `json:"test_case_id"`
	Filename    string  `json:"filename"`
	GroundTruth int     `json:"ground_truth_count"`
	Candidates  Metrics `json:"candidate_stage"`
	Flagged     Metrics `json:"flagged_stage"`
	Coverage    float64 `json:"registry_coverage"`
	Error       string  `json:"error,omitempty"`
}

// BenchResult is the persisted per-document record of one benchmark run
type BenchResult struct {
	RunID      string          `json:"run_id"`
	TestCaseID string          `json:"test_case_id"`
	Filename   string          `json:"filename"`
	Metrics    DocumentMetrics `json:"metrics"`
	FinishedAt time.Time       `json:"finished_at"`
}

// RunSummary is the persisted aggregate record of one benchmark run
type RunSummary struct {
	RunID     string    `json:"run_id"`
	Model     string    `json:"model"`
	Threshold float64   `json:"threshold"`
	Documents int       `json:"documents"`
	Failures  int       `json:"failures"`
	Overall   Metrics   `json:"overall"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

package match

import (
	"fmt"
	"math"

	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/textutil"
)

// Matcher aligns extracted claims or findings against expert-labeled
// ground truth. It never mutates its inputs; every call returns a fresh
// result. Matching is always per-document: callers pass only the ground
// truth for the document in hand.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given similarity threshold
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{threshold: threshold}
}

// MatchClaims aligns registry claims (exact_text) against ground-truth
// sentences. Coverage = matched ground truth / total ground truth,
// defined as 1.0 when there was nothing to cover.
func (m *Matcher) MatchClaims(claims []model.Claim, truth []model.GroundTruthEntry) model.MatchResult {
	left := make([]string, len(claims))
	leftIDs := make([]string, len(claims))
	for i, c := range claims {
		left[i] = c.ExactText
		leftIDs[i] = c.ClaimID
	}
	return m.matchSentences(left, leftIDs, truth)
}

// MatchCandidates aligns detection-stage candidates against ground-truth
// sentences
func (m *Matcher) MatchCandidates(candidates []model.Candidate, truth []model.GroundTruthEntry) model.MatchResult {
	left := make([]string, len(candidates))
	leftIDs := make([]string, len(candidates))
	for i, c := range candidates {
		left[i] = c.Sentence
		leftIDs[i] = fmt.Sprintf("candidate_%d", i)
	}
	return m.matchSentences(left, leftIDs, truth)
}

// MatchFindings aligns final findings against ground-truth sentences
func (m *Matcher) MatchFindings(findings []model.Finding, truth []model.GroundTruthEntry) model.MatchResult {
	left := make([]string, len(findings))
	leftIDs := make([]string, len(findings))
	for i, f := range findings {
		left[i] = f.Sentence
		leftIDs[i] = fmt.Sprintf("finding_%d", i)
	}
	return m.matchSentences(left, leftIDs, truth)
}

func (m *Matcher) matchSentences(left, leftIDs []string, truth []model.GroundTruthEntry) model.MatchResult {
	res := model.MatchResult{
		MatchedLeft:  make(map[string]bool),
		MatchedRight: make(map[string]bool),
	}

	assignments := Greedy(len(left), len(truth), func(i, j int) float64 {
		return textutil.Ratio(left[i], truth[j].Sentence)
	}, m.threshold)

	matchedLeft := make([]bool, len(left))
	matchedRight := make([]bool, len(truth))
	for _, a := range assignments {
		matchedLeft[a.Left] = true
		matchedRight[a.Right] = true
		res.MatchedLeft[leftIDs[a.Left]] = true
		res.MatchedRight[rightID(truth[a.Right], a.Right)] = true
		res.Pairs = append(res.Pairs, model.MatchPair{
			LeftID:     leftIDs[a.Left],
			RightID:    rightID(truth[a.Right], a.Right),
			Similarity: round3(a.Score),
		})
	}

	for i, ok := range matchedLeft {
		if !ok {
			res.UnmatchedLeft = append(res.UnmatchedLeft, leftIDs[i])
		}
	}
	for j, ok := range matchedRight {
		if !ok {
			res.UnmatchedRight = append(res.UnmatchedRight, rightID(truth[j], j))
			res.MissedTruth = append(res.MissedTruth, truth[j])
		}
	}

	if len(truth) == 0 {
		// Nothing to cover
		res.Coverage = 1.0
	} else {
		res.Coverage = float64(len(res.Pairs)) / float64(len(truth))
	}
	return res
}

func rightID(gt model.GroundTruthEntry, idx int) string {
	if gt.EntryID != "" {
		return gt.EntryID
	}
	return fmt.Sprintf("gt_%d", idx)
}

// Metrics derives precision/recall/F1 from a matching pass. Undefined
// ratios (zero denominator) are reported as 0.
func Metrics(res model.MatchResult, totalLeft, totalTruth int) model.Metrics {
	tp := len(res.Pairs)
	fp := totalLeft - tp
	fn := totalTruth - tp

	var precision, recall, f1 float64
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return model.Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		Precision:      round3(precision),
		Recall:         round3(recall),
		F1:             round3(f1),
	}
}

// Aggregate micro-averages per-document metrics into run totals for one
// pipeline stage
func Aggregate(docs []model.DocumentMetrics, stage func(model.DocumentMetrics) model.Metrics) model.Metrics {
	var tp, fp, fn int
	for _, d := range docs {
		m := stage(d)
		tp += m.TruePositives
		fp += m.FalsePositives
		fn += m.FalseNegatives
	}

	var precision, recall, f1 float64
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return model.Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		Precision:      round3(precision),
		Recall:         round3(recall),
		F1:             round3(f1),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

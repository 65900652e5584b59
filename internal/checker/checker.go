// Package checker is the deterministic post-extraction validator for the
// evidence registry. The extractor is aggressive; the checker is
// skeptical. It produces an auditable coverage report without ever
// blocking the pipeline.
package checker

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/regsight/regsight/internal/model"
	"github.com/regsight/regsight/internal/textutil"
)

// Checker audits a claim registry against raw per-page document text.
// It only reads its inputs and returns a new, independent report.
type Checker struct {
	cfg       model.CheckerConfig
	tokens    *textutil.TokenExtractor
	fragments []*regexp.Regexp // One per negation rule, over normalized text
}

// New builds a checker from explicit configuration. Thresholds and
// phrase tables come from the config so tests can vary them per case.
func New(cfg model.CheckerConfig) (*Checker, error) {
	tokens, err := textutil.NewTokenExtractor(cfg.NumberPatterns)
	if err != nil {
		return nil, fmt.Errorf("compile number patterns: %w", err)
	}

	fragments := make([]*regexp.Regexp, len(cfg.NegationRules))
	for i, rule := range cfg.NegationRules {
		re, err := regexp.Compile(fragmentPattern(rule))
		if err != nil {
			return nil, fmt.Errorf("compile negation fragment %q: %w", rule.Canonical, err)
		}
		fragments[i] = re
	}

	return &Checker{cfg: cfg, tokens: tokens, fragments: fragments}, nil
}

// fragmentPattern builds a fuzzy probe for a canonical statutory phrase:
// its first three words longer than three characters, excluding the
// negation words themselves, joined by a lazy wildcard.
func fragmentPattern(rule model.NegationRule) string {
	negs := make(map[string]bool, len(rule.RequiredNegations))
	for _, n := range rule.RequiredNegations {
		negs[n] = true
	}

	var words []string
	for _, w := range strings.Fields(rule.Canonical) {
		if len(w) > 3 && !negs[w] {
			words = append(words, regexp.QuoteMeta(w))
			if len(words) == 3 {
				break
			}
		}
	}
	return strings.Join(words, ".*?")
}

// Check runs the five independent audits over the page text and the
// parsed registry. All issues are accumulated; nothing short-circuits.
func (c *Checker) Check(pages map[int]string, reg model.Registry) model.CheckerReport {
	var issues []model.Issue

	issues = append(issues, c.checkStructural(reg, len(pages))...)

	numIssues, coverage := c.checkNumerical(pages, reg)
	issues = append(issues, numIssues...)

	issues = append(issues, c.checkDisclaimers(pages, reg)...)
	issues = append(issues, c.checkNegationIntegrity(pages, reg)...)
	issues = append(issues, c.checkContradictions(reg)...)

	return c.buildReport(coverage, len(pages), reg, issues)
}

// FailureReport produces a well-formed failing report for inputs the
// checker could not audit (unparseable registry, unreadable document)
func (c *Checker) FailureReport(kind model.IssueType, detail string) model.CheckerReport {
	return model.CheckerReport{
		CoverageScore: 0.0,
		Issues:        []model.Issue{{Type: kind, Detail: detail}},
		IssueSummary:  map[model.IssueType]int{kind: 1},
		Passed:        false,
	}
}

// checkStructural requires at least one claim on every page 1..N
func (c *Checker) checkStructural(reg model.Registry, totalPages int) []model.Issue {
	claimed := make(map[int]bool)
	for _, claim := range reg.Claims {
		for _, page := range parsePages(claim.Page) {
			claimed[page] = true
		}
	}

	var issues []model.Issue
	for p := 1; p <= totalPages; p++ {
		if !claimed[p] {
			issues = append(issues, model.Issue{Type: model.IssueMissingPage, Page: p})
		}
	}
	return issues
}

// parsePages expands a page field like "3", "3-4", or "3,5" into its
// integer components. Non-numeric parts are ignored.
func parsePages(field string) []int {
	var pages []int
	for _, part := range strings.FieldsFunc(field, func(r rune) bool {
		return r == '-' || r == ','
	}) {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			pages = append(pages, n)
		}
	}
	return pages
}

// checkNumerical verifies every number token in the source appears
// somewhere in the registry's claim or support text
func (c *Checker) checkNumerical(pages map[int]string, reg model.Registry) ([]model.Issue, float64) {
	sourceTokens := c.tokens.Extract(joinPages(pages))
	if len(sourceTokens) == 0 {
		return nil, 1.0
	}

	registryTokens := c.tokens.ExtractSet(registryText(reg))

	var issues []model.Issue
	orphans := 0
	for _, tok := range sourceTokens {
		if !registryTokens[tok] {
			orphans++
			issues = append(issues, model.Issue{Type: model.IssueOrphanNumber, Number: tok})
		}
	}

	coverage := 1.0 - float64(orphans)/float64(len(sourceTokens))
	return issues, coverage
}

// registryText concatenates every claim's exact text and support text
func registryText(reg model.Registry) string {
	var b strings.Builder
	for _, claim := range reg.Claims {
		b.WriteString(claim.ExactText)
		b.WriteString(" ")
		if claim.Support != nil && claim.Support.Text != "" {
			b.WriteString(claim.Support.Text)
			b.WriteString(" ")
		}
	}
	return b.String()
}

// checkDisclaimers flags standard boilerplate present in the source but
// absent from the registry
func (c *Checker) checkDisclaimers(pages map[int]string, reg model.Registry) []model.Issue {
	source := joinPages(pages)
	captured := registryText(reg)

	var issues []model.Issue
	for _, phrase := range c.cfg.Disclaimers {
		if textutil.ContainsNormalized(source, phrase) && !textutil.ContainsNormalized(captured, phrase) {
			issues = append(issues, model.Issue{Type: model.IssueMissedDisclaimer, Phrase: phrase})
		}
	}
	return issues
}

// checkNegationIntegrity looks for disclaimers whose negation words were
// silently dropped between source and registry. This is the highest
// value audit: a registry that "fixed" a corrupted legal disclaimer is
// the failure mode this system exists to catch. A registry that
// faithfully preserved a garbled original raises nothing here; that
// finding belongs to the downstream detection phase.
func (c *Checker) checkNegationIntegrity(pages map[int]string, reg model.Registry) []model.Issue {
	sourceNorm := textutil.Normalize(joinPages(pages))
	registryNorm := textutil.Normalize(disclaimerText(reg))

	var issues []model.Issue
	for i, rule := range c.cfg.NegationRules {
		if !c.fragments[i].MatchString(sourceNorm) {
			continue
		}
		for _, neg := range rule.RequiredNegations {
			if strings.Contains(registryNorm, neg) {
				continue
			}
			if strings.Contains(sourceNorm, neg) {
				issues = append(issues, model.Issue{
					Type:             model.IssueGarbledDisclaimer,
					Description:      rule.Description,
					ExpectedNegation: neg,
					Note:             "Negation present in source but missing from registry capture",
				})
			}
			// Missing from both source and registry: the registry
			// correctly captured the garbled original.
		}
	}
	return issues
}

// disclaimerText collects the registry's captured disclaimer language:
// disclosure-typed claims plus every support text
func disclaimerText(reg model.Registry) string {
	var b strings.Builder
	for _, claim := range reg.Claims {
		if claim.ClaimType == model.ClaimDisclosures {
			b.WriteString(claim.ExactText)
			b.WriteString(" ")
		}
		if claim.Support != nil && claim.Support.Text != "" {
			b.WriteString(claim.Support.Text)
			b.WriteString(" ")
		}
	}
	return b.String()
}

// checkContradictions verifies flag/contradiction cross-references
func (c *Checker) checkContradictions(reg model.Registry) []model.Issue {
	claimIDs := make(map[string]bool, len(reg.Claims))
	for _, claim := range reg.Claims {
		claimIDs[claim.ClaimID] = true
	}

	var issues []model.Issue
	referenced := make(map[string]bool)
	for _, con := range reg.Contradictions {
		for _, cid := range con.ClaimIDs {
			referenced[cid] = true
			if !claimIDs[cid] {
				issues = append(issues, model.Issue{
					Type:            model.IssueInvalidReference,
					ContradictionID: con.ContradictionID,
					MissingClaimID:  cid,
				})
			}
		}
	}

	for _, claim := range reg.Claims {
		if claim.HasFlag(model.FlagInternalContradiction) && !referenced[claim.ClaimID] {
			issues = append(issues, model.Issue{
				Type:    model.IssueOrphanFlag,
				ClaimID: claim.ClaimID,
				Flag:    model.FlagInternalContradiction,
			})
		}
	}
	return issues
}

func (c *Checker) buildReport(coverage float64, totalPages int, reg model.Registry, issues []model.Issue) model.CheckerReport {
	report := model.CheckerReport{
		CoverageScore:       round3(coverage),
		TotalPages:          totalPages,
		TotalClaims:         len(reg.Claims),
		TotalContradictions: len(reg.Contradictions),
		Issues:              issues,
		IssueSummary:        make(map[model.IssueType]int),
	}
	for _, issue := range issues {
		report.IssueSummary[issue.Type]++
	}

	// Only the coverage threshold and the critical issue kinds gate the
	// verdict. MISSING_PAGE and friends are advisory.
	report.Passed = report.CoverageScore >= c.cfg.PassThreshold && !report.HasCritical()
	return report
}

// joinPages concatenates page text in ascending page order. Audits that
// scan across page boundaries depend on this order being stable.
func joinPages(pages map[int]string) string {
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var b strings.Builder
	for _, n := range nums {
		b.WriteString(pages[n])
		b.WriteString(" ")
	}
	return b.String()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package checker

import (
	"github.com/regsight/regsight/internal/artifact"
	"github.com/regsight/regsight/internal/model"
)

// CheckRegistryJSON audits a raw registry artifact (wrapped or bare)
// against page text. Unparseable JSON degrades to a PARSE_ERROR report;
// a report is always returned.
func (c *Checker) CheckRegistryJSON(pages map[int]string, raw string) model.CheckerReport {
	reg, err := artifact.ParseRegistry(raw)
	if err != nil {
		return c.FailureReport(model.IssueParseError, "registry JSON is invalid")
	}
	return c.Check(pages, reg)
}

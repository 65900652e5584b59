package artifact

import (
	"encoding/json"
	"testing"
)

func TestRecover_ValidPassthrough(t *testing.T) {
	raw := `{"candidates": [{"sentence": "x"}]}`
	if got := Recover(raw, KindCandidates); got != raw {
		t.Errorf("Expected valid JSON to pass through, got %q", got)
	}
}

func TestRecover_BraceExtraction(t *testing.T) {
	raw := "Here is the JSON you asked for:\n```json\n{\"candidates\": []}\n```\nHope that helps."
	got := Recover(raw, KindCandidates)
	if got != `{"candidates": []}` {
		t.Errorf("Expected brace-delimited extraction, got %q", got)
	}
}

func TestRecover_TotalFailure(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindCandidates: `{"candidates": []}`,
		KindFindings:   `{"diagnostics": [], "sections": []}`,
	} {
		got := Recover("not json at all", kind)
		if got != want {
			t.Errorf("Recover(garbage, %s) = %q, want %q", kind, got, want)
		}
	}
}

func TestEmptyDefaults_AreValidJSON(t *testing.T) {
	for _, kind := range []Kind{KindPreliminary, KindRegistry, KindCandidates, KindFindings} {
		if !json.Valid([]byte(EmptyDefault(kind))) {
			t.Errorf("Empty default for %s is not valid JSON", kind)
		}
	}
}

func TestParseRegistry_Wrapped(t *testing.T) {
	raw := `{"registry": {"meta": {"registry_id": "REG_001"}, "claims": [{"claim_id": "C1", "page": "1", "exact_text": "t"}], "contradictions": []}}`
	reg, err := ParseRegistry(raw)
	if err != nil {
		t.Fatalf("Expected wrapped registry to parse, got %v", err)
	}
	if len(reg.Claims) != 1 || reg.Claims[0].ClaimID != "C1" {
		t.Errorf("Unexpected claims: %+v", reg.Claims)
	}
	if reg.Meta.RegistryID != "REG_001" {
		t.Errorf("Expected meta to survive unwrapping, got %+v", reg.Meta)
	}
}

func TestParseRegistry_Bare(t *testing.T) {
	raw := `{"meta": {}, "claims": [{"claim_id": "C1", "page": "2", "exact_text": "t"}], "contradictions": []}`
	reg, err := ParseRegistry(raw)
	if err != nil {
		t.Fatalf("Expected bare registry to parse, got %v", err)
	}
	if len(reg.Claims) != 1 {
		t.Errorf("Expected one claim, got %d", len(reg.Claims))
	}
}

func TestParseRegistry_Invalid(t *testing.T) {
	if _, err := ParseRegistry("{{{"); err == nil {
		t.Error("Expected an error for unparseable registry JSON")
	}
}

func TestParseRegistry_EmptyDefault(t *testing.T) {
	reg, err := ParseRegistry(EmptyDefault(KindRegistry))
	if err != nil {
		t.Fatalf("Empty default must parse, got %v", err)
	}
	if len(reg.Claims) != 0 || len(reg.Contradictions) != 0 {
		t.Errorf("Expected empty registry, got %+v", reg)
	}
}

func TestFindingsArtifact_Flagged(t *testing.T) {
	raw := `{"diagnostics": [
		{"sentence": "a", "disposition": "FLAG", "sub_bucket": "Promissory or Certain-Outcome Language"},
		{"sentence": "b", "disposition": "CLEAR", "sub_bucket": "NONE"}
	], "sections": []}`

	findings := ParseFindings(raw)
	flagged := findings.Flagged()
	if len(flagged) != 1 || flagged[0].Sentence != "a" {
		t.Errorf("Expected one flagged finding 'a', got %+v", flagged)
	}
}

func TestParsePreliminary_Counts(t *testing.T) {
	raw := `{"disclaimers": [{}, {}], "performance_data": [{}], "footnotes": [{}, {}, {}],
		"rankings_awards": [], "definitions": [], "data_sources": [], "qualifications": [], "visual_elements": []}`
	p := ParsePreliminary(raw)
	if got := p.TotalItems(); got != 6 {
		t.Errorf("TotalItems() = %d, want 6", got)
	}
}

package pipeline

// State carries the artifacts between extraction phases. Each phase
// receives a State value and returns a new one with its own field set;
// nothing is mutated in place, so ownership of every artifact transfers
// wholly from producer to consumer.
type State struct {
	// DocumentPath is the source PDF location
	DocumentPath string

	// Preliminary is the phase 0 JSON (broad multi-category extraction)
	Preliminary string

	// Registry is the phase 1 JSON (claims + contradictions)
	Registry string

	// CheckerReport is the deterministic audit report JSON
	CheckerReport string

	// Candidates is the detection-phase JSON
	Candidates string

	// Findings is the validation-phase JSON (diagnostics + sections)
	Findings string

	// TokenUsage accumulates per-phase token counts
	// (phase0_input, phase0_output, ...)
	TokenUsage map[string]int
}

// NewState returns the initial state for a document
func NewState(documentPath string) State {
	return State{
		DocumentPath: documentPath,
		TokenUsage:   map[string]int{},
	}
}

// withUsage returns a copy of the state with additional token counts
// merged in. The usage map is cloned so earlier states stay untouched.
func (s State) withUsage(counts map[string]int) State {
	merged := make(map[string]int, len(s.TokenUsage)+len(counts))
	for k, v := range s.TokenUsage {
		merged[k] = v
	}
	for k, v := range counts {
		merged[k] = v
	}
	s.TokenUsage = merged
	return s
}

// TotalTokens sums the accumulated usage across all phases
func (s State) TotalTokens() int {
	total := 0
	for _, v := range s.TokenUsage {
		total += v
	}
	return total
}

package match

import (
	"reflect"
	"testing"
)

func TestGreedy_OneToOne(t *testing.T) {
	// 3x3 matrix; (0,1) and (1,0) are the strongest cross pairs
	scores := [][]float64{
		{0.2, 0.9, 0.1},
		{0.8, 0.3, 0.1},
		{0.1, 0.1, 0.6},
	}
	got := Greedy(3, 3, func(i, j int) float64 { return scores[i][j] }, 0.5)

	want := []Assignment{
		{Left: 0, Right: 1, Score: 0.9},
		{Left: 1, Right: 0, Score: 0.8},
		{Left: 2, Right: 2, Score: 0.6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Greedy() = %v, want %v", got, want)
	}

	// No entity may appear twice
	seenL := map[int]bool{}
	seenR := map[int]bool{}
	for _, a := range got {
		if seenL[a.Left] || seenR[a.Right] {
			t.Errorf("Entity reused in assignment %v", a)
		}
		seenL[a.Left] = true
		seenR[a.Right] = true
		if a.Score < 0.5 {
			t.Errorf("Accepted pair below threshold: %v", a)
		}
	}
}

func TestGreedy_Threshold(t *testing.T) {
	got := Greedy(2, 2, func(i, j int) float64 { return 0.4 }, 0.5)
	if len(got) != 0 {
		t.Errorf("Expected no pairs below threshold, got %v", got)
	}
}

func TestGreedy_ImpossibleThreshold(t *testing.T) {
	// threshold 1.1 can never be reached
	got := Greedy(5, 5, func(i, j int) float64 { return 1.0 }, 1.1)
	if len(got) != 0 {
		t.Errorf("Expected empty match set with threshold 1.1, got %v", got)
	}
}

func TestGreedy_TieBreakDeterministic(t *testing.T) {
	// All scores equal: ties must resolve by input order, every time
	score := func(i, j int) float64 { return 0.7 }

	first := Greedy(3, 3, score, 0.5)
	for n := 0; n < 10; n++ {
		again := Greedy(3, 3, score, 0.5)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Non-deterministic result: %v vs %v", first, again)
		}
	}

	want := []Assignment{
		{Left: 0, Right: 0, Score: 0.7},
		{Left: 1, Right: 1, Score: 0.7},
		{Left: 2, Right: 2, Score: 0.7},
	}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Tie-break order = %v, want %v", first, want)
	}
}

func TestGreedy_EmptySides(t *testing.T) {
	if got := Greedy(0, 3, func(i, j int) float64 { return 1 }, 0.5); got != nil {
		t.Errorf("Expected nil for empty left, got %v", got)
	}
	if got := Greedy(3, 0, func(i, j int) float64 { return 1 }, 0.5); got != nil {
		t.Errorf("Expected nil for empty right, got %v", got)
	}
}

func TestGreedy_UnevenSides(t *testing.T) {
	// 3 left, 2 right: at most 2 pairs
	got := Greedy(3, 2, func(i, j int) float64 { return 0.9 }, 0.5)
	if len(got) != 2 {
		t.Errorf("Expected 2 pairs for 3x2 matrix, got %d", len(got))
	}
}

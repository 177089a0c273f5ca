package readability

import (
	"math"
	"testing"
)

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"beautiful", 3},
		{"make", 1},
		{"the", 1},
		{"agreement", 3},
		{"a", 1},
		{"rhythm", 1},
		{"mat.", 1},
	}
	for _, c := range cases {
		if got := CountSyllables(c.word); got != c.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestEstimateEmptyText(t *testing.T) {
	m := Estimate("", DefaultConfig())
	if m.GradeLevel != 0 || m.ReadingTimeMinutes != 0 {
		t.Fatalf("expected zero metrics for empty text, got %+v", m)
	}
}

func TestEstimateKnownSentence(t *testing.T) {
	// 6 words, 1 sentence, 6 syllables:
	// 0.39*6 + 11.8*1 - 15.59 = -1.45
	m := Estimate("The cat sat on the mat.", DefaultConfig())
	if m.GradeLevel != -1.45 {
		t.Errorf("grade level = %v, want -1.45", m.GradeLevel)
	}
	// 23 characters * 14.69ms / 60000 rounds to 0.01 minutes.
	if m.ReadingTimeMinutes != 0.01 {
		t.Errorf("reading time = %v, want 0.01", m.ReadingTimeMinutes)
	}
}

func TestEstimateWordPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyWords
	m := Estimate("The cat sat on the mat.", cfg)
	if m.ReadingTimeMinutes != 0.03 {
		t.Errorf("reading time = %v, want 0.03 (6 words / 200 wpm)", m.ReadingTimeMinutes)
	}
}

func TestEstimateDenserTextScoresHigher(t *testing.T) {
	simple := Estimate("The cat sat. The dog ran. The sun rose.", DefaultConfig())
	dense := Estimate("Notwithstanding any contradictory provision, the indemnification obligations enumerated hereunder survive termination indefinitely.", DefaultConfig())
	if dense.GradeLevel <= simple.GradeLevel {
		t.Fatalf("expected dense legal text to score above simple text: %v <= %v", dense.GradeLevel, simple.GradeLevel)
	}
}

func TestEstimateRoundsToTwoDecimals(t *testing.T) {
	m := Estimate("Some arbitrary words forming a single sentence without much care.", DefaultConfig())
	for _, v := range []float64{m.GradeLevel, m.ReadingTimeMinutes} {
		if math.Abs(v*100-math.Round(v*100)) > 1e-9 {
			t.Errorf("value %v not rounded to 2 decimals", v)
		}
	}
}

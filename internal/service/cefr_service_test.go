package service

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	svc := NewCEFRService()

	tests := []struct {
		score int
		want  string
	}{
		{0, "A0"},
		{10, "A0"},
		{11, "A1"},
		{20, "A1"},
		{21, "A2"},
		{40, "A2"},
		{41, "B1"},
		{50, "B1"},
		{51, "B2"},
		{70, "B2"},
		{71, "C1"},
		{85, "C1"},
		{86, "C2"},
		{100, "C2"},
	}

	for _, tt := range tests {
		if got := svc.Classify(tt.score).Level; got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClassifyAdjacentScoresSplitBands(t *testing.T) {
	svc := NewCEFRService()
	if svc.Classify(85).Level == svc.Classify(86).Level {
		t.Error("scores 85 and 86 must map to different bands")
	}
}

func TestClassifyIdempotent(t *testing.T) {
	svc := NewCEFRService()
	first := svc.Classify(73)
	for i := 0; i < 5; i++ {
		if got := svc.Classify(73); got != first {
			t.Fatalf("Classify(73) changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestLevelMetadata(t *testing.T) {
	svc := NewCEFRService()

	c1 := svc.Classify(71)
	if c1.Label != "Advanced" {
		t.Errorf("C1 label = %q, want Advanced", c1.Label)
	}
	if c1.Range() != "71-85" {
		t.Errorf("C1 range = %q, want 71-85", c1.Range())
	}

	a0 := svc.Classify(0)
	if a0.Label != "Novice" || a0.Range() != "0-10" {
		t.Errorf("A0 = %q %q, want Novice 0-10", a0.Label, a0.Range())
	}
}

func TestLevelByName(t *testing.T) {
	svc := NewCEFRService()

	b2, ok := svc.LevelByName("B2")
	if !ok {
		t.Fatal("LevelByName(B2) not found")
	}
	if b2.Label != "Upper Intermediate" || b2.Range() != "51-70" {
		t.Errorf("B2 = %q %q, want Upper Intermediate 51-70", b2.Label, b2.Range())
	}

	if _, ok := svc.LevelByName("Z9"); ok {
		t.Error("LevelByName(Z9) should not be found")
	}
}

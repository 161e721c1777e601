package service

import (
	"math"
	"testing"
)

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "the quick brown fox", "the quick brown fox", 1.0},
		{"identical after normalization", "Hello, World!", "hello world", 1.0},
		{"identical with extra whitespace", "  hello world  ", "hello world", 1.0},
		{"no shared tokens", "alpha beta", "gamma delta", 0.0},
		{"both empty", "", "", 0.0},
		{"punctuation only vs empty", "?!.,", "", 0.0},
		{"one empty", "", "hello", 0.0},
		{"half overlap", "a b c", "a b d", 0.5}, // |{a,b}| / |{a,b,c,d}|
		{"subset", "a b c", "a b c d e", 0.6},   // 3/5
		{"repeated words collapse", "yes yes yes", "yes", 1.0},
		{"case insensitive", "HELLO world", "hello WORLD", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TextSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTextSimilaritySymmetric(t *testing.T) {
	a, b := "the cat sat on the mat", "a cat on a mat"
	if TextSimilarity(a, b) != TextSimilarity(b, a) {
		t.Errorf("similarity should be symmetric")
	}
}

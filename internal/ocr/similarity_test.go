package ocr

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "whiskey", "whiskey", 1},
		{"both empty", "", "", 1},
		{"one empty", "whiskey", "", 0},
		{"single substitution", "abc", "abd", 1 - 1.0/3.0},
		{"completely different", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestClosestToken(t *testing.T) {
	t.Run("exact token wins", func(t *testing.T) {
		token, score := ClosestToken("Whiskey", "old barrel whiskey 40%")
		if token != "whiskey" {
			t.Errorf("token = %q, want %q", token, "whiskey")
		}
		if score != 1 {
			t.Errorf("score = %v, want 1", score)
		}
	})

	t.Run("near miss scores below one", func(t *testing.T) {
		token, score := ClosestToken("whiskey", "old barrel wh1skey")
		if token != "wh1skey" {
			t.Errorf("token = %q, want %q", token, "wh1skey")
		}
		if score <= 0.5 || score >= 1 {
			t.Errorf("score = %v, want in (0.5, 1)", score)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		token, score := ClosestToken("whiskey", "")
		if token != "" || score != 0 {
			t.Errorf("got (%q, %v), want empty token and zero score", token, score)
		}
	})
}

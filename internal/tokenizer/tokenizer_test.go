package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and drops punctuation",
			in:   "Hello, World! It's 2024.",
			want: []string{"hello", "world", "it", "s", "2024"},
		},
		{
			name: "keeps duplicates in order",
			in:   "the cat and the hat",
			want: []string{"the", "cat", "and", "the", "hat"},
		},
		{
			name: "underscores are word characters",
			in:   "snake_case stays whole",
			want: []string{"snake_case", "stays", "whole"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "punctuation only",
			in:   "... --- !!!",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	in := "Re-tokenizing the SAME chunk text, again and again."
	first := Tokenize(in)
	for i := 0; i < 10; i++ {
		if got := Tokenize(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}

package normalize

import (
	"reflect"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"lowercase", "Golden Retriever", "golden retriever"},
		{"trim", "  Poodle  ", "poodle"},
		{"collapse whitespace", "German \t  Shepherd\n Dog", "german shepherd dog"},
		{"strip nikud", "כֶּלֶב", "כלב"},
		{"strip cantillation", "שָׁלוֹם֑", "שלום"},
		{"mark between spaces", "a ְ b", "a b"},
		{"leading mark", "ְ abc", "abc"},
		{"hebrew untouched", "רועה גרמני", "רועה גרמני"},
		{"non breaking space", "a\u00a0b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Golden   Retriever ",
		"כֶּלֶב רוֹעִים",
		"MiXeD \t CaSe\nלָבָן",
		"a ְ b",
	}
	for _, input := range inputs {
		once := Text(input)
		twice := Text(once)
		if once != twice {
			t.Errorf("Text not idempotent for %q: once=%q twice=%q", input, once, twice)
		}
	}
}

func TestMapOffsets(t *testing.T) {
	m := Map("  Ab  כֶּ d")
	if got, want := m.String(), "ab כ d"; got != want {
		t.Fatalf("Map().String() = %q, want %q", got, want)
	}
	// Source runes: ' ',' ','A','b',' ',' ','כ',U+05B6,U+05BC,' ','d'
	wantOffsets := []int{2, 3, 4, 6, 9, 10}
	if !reflect.DeepEqual(m.Offsets, wantOffsets) {
		t.Errorf("Map().Offsets = %v, want %v", m.Offsets, wantOffsets)
	}
	if got := m.Len(); got != 6 {
		t.Errorf("Map().Len() = %d, want 6", got)
	}
}

func TestMappedOriginal(t *testing.T) {
	m := Map(" Rex")
	got := m.Original([]int{0, 2, 7, -1})
	want := []int{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Original() = %v, want %v", got, want)
	}
	if m.Original(nil) != nil {
		t.Error("Original(nil) should be nil")
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Labrador", []string{"labrador"}},
		{"multiple with noise", "  Labrador   Retriever ", []string{"labrador", "retriever"}},
		{"hebrew", "רועה  גרמני", []string{"רועה", "גרמני"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsMark(t *testing.T) {
	if !IsMark('\u05B0') || !IsMark('\u0591') || !IsMark('\u05C7') {
		t.Error("expected Hebrew points to be marks")
	}
	if IsMark('א') || IsMark('a') || IsMark('\u05C8') {
		t.Error("letters and out-of-range runes must not be marks")
	}
}

package match

import "testing"

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		indices []int
		marker  Marker
		want    string
	}{
		{"no indices", "Rex", nil, DefaultMarker, "Rex"},
		{"every rune", "Rex", []int{0, 1, 2}, DefaultMarker, "<mark>R</mark><mark>e</mark><mark>x</mark>"},
		{"sparse", "Rex", []int{0, 2}, DefaultMarker, "<mark>R</mark>e<mark>x</mark>"},
		{"out of range ignored", "Rex", []int{5}, DefaultMarker, "Rex"},
		{"hebrew runes", "כלב", []int{1}, DefaultMarker, "כ<mark>ל</mark>ב"},
		{"custom marker", "Rex", []int{1}, Marker{Open: "*", Close: "*"}, "R*e*x"},
		{"zero marker falls back", "Rex", []int{1}, Marker{}, "R<mark>e</mark>x"},
		{"markup passes through", "<b>", []int{1}, DefaultMarker, "<<mark>b</mark>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.indices, tt.marker)
			if got != tt.want {
				t.Errorf("Highlight(%q, %v) = %q, want %q", tt.text, tt.indices, got, tt.want)
			}
		})
	}
}

func TestHighlightAgreesWithScore(t *testing.T) {
	r := Score("rex", "  R e X rex")
	got := Highlight("  R e X rex", r.Indices, DefaultMarker)
	want := "  R e X <mark>r</mark><mark>e</mark><mark>x</mark>"
	if got != want {
		t.Errorf("Highlight after Score = %q, want %q", got, want)
	}
}

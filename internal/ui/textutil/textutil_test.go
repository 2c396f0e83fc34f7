package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "summarize", 20, "summarize"},
		{"exact", "abc", 3, "abc"},
		{"cut", "Doc Summarizer", 8, "Doc Sum…"},
		{"wide runes", "日本語テキスト", 7, "日本語…"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := VisualWidth(got); w > tt.width {
				t.Errorf("width %d exceeds %d", w, tt.width)
			}
		})
	}
}

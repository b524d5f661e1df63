package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/codescribe-ai/codescribe/internal/model"
)

func numberedSource(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestExtractContext(t *testing.T) {
	tests := []struct {
		name       string
		totalLines int
		start, end int
		wantFirst  string
		wantLast   string
		wantCount  int
	}{
		{
			name:       "window in the middle",
			totalLines: 20,
			start:      10, end: 12,
			wantFirst: "line 7", wantLast: "line 15", wantCount: 9,
		},
		{
			name:       "clamped at the top",
			totalLines: 20,
			start:      1, end: 2,
			wantFirst: "line 1", wantLast: "line 5", wantCount: 5,
		},
		{
			name:       "clamped at the bottom",
			totalLines: 10,
			start:      9, end: 10,
			wantFirst: "line 6", wantLast: "line 10", wantCount: 5,
		},
		{
			name:       "single line file",
			totalLines: 1,
			start:      1, end: 1,
			wantFirst: "line 1", wantLast: "line 1", wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			element := model.CodeElement{StartLine: tt.start, EndLine: tt.end}
			got := ExtractContext(element, numberedSource(tt.totalLines))
			lines := strings.Split(got, "\n")
			if len(lines) != tt.wantCount {
				t.Fatalf("line count = %d, want %d", len(lines), tt.wantCount)
			}
			if lines[0] != tt.wantFirst {
				t.Errorf("first line = %q, want %q", lines[0], tt.wantFirst)
			}
			if lines[len(lines)-1] != tt.wantLast {
				t.Errorf("last line = %q, want %q", lines[len(lines)-1], tt.wantLast)
			}
		})
	}
}

func TestExtractContextFallbackSpan(t *testing.T) {
	// Regex-parsed elements have StartLine == EndLine; the window must still
	// cover the surrounding lines.
	element := model.CodeElement{StartLine: 5, EndLine: 5}
	got := ExtractContext(element, numberedSource(10))
	lines := strings.Split(got, "\n")
	if len(lines) != 7 {
		t.Fatalf("line count = %d, want 7", len(lines))
	}
	if lines[0] != "line 2" || lines[6] != "line 8" {
		t.Errorf("window = %q..%q, want line 2..line 8", lines[0], lines[6])
	}
}

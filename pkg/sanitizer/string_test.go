package sanitizer

import (
	"reflect"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "weekly sync", "weekly sync"},
		{"surrounding whitespace", "  standup  ", "standup"},
		{"collapses runs", "design \t\t review", "design review"},
		{"strips control chars", "demo\x00\x1b day", "demo day"},
		{"newlines become spaces", "line1\nline2", "line1 line2"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"unicode preserved", "会议室预定", "会议室预定"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTextSlice(t *testing.T) {
	got := TextSlice([]string{" whiteboard ", "", "  ", "tv\n screen"})
	want := []string{"whiteboard", "tv screen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TextSlice() = %v, want %v", got, want)
	}

	if TextSlice(nil) != nil {
		t.Error("TextSlice(nil) should stay nil")
	}
}

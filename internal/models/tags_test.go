package models

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "python,css", []string{"python", "css"}},
		{"whitespace and case", " Python , CSS ", []string{"python", "css"}},
		{"duplicates", "python,Python,css,python", []string{"python", "css"}},
		{"empty segments", ",python,,css,", []string{"python", "css"}},
		{"empty string", "", []string{}},
		{"only commas", ",,,", []string{}},
		{"multi-word tag", "data analysis, python", []string{"data analysis", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitTags(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags(" Python , CSS , python "); got != "python,css" {
		t.Errorf("JoinTags() = %q, expected %q", got, "python,css")
	}
	if got := JoinTags(""); got != "" {
		t.Errorf("JoinTags(\"\") = %q, expected empty", got)
	}
}

func TestTagSet(t *testing.T) {
	set := TagSet("Python, css")
	if len(set) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(set))
	}
	if _, ok := set["python"]; !ok {
		t.Error("set should contain 'python'")
	}
	if _, ok := set["css"]; !ok {
		t.Error("set should contain 'css'")
	}
}

func TestParseTaskStatus(t *testing.T) {
	valid := []string{"TODO", "IN_PROGRESS", "DONE"}
	for _, s := range valid {
		status, ok := ParseTaskStatus(s)
		if !ok {
			t.Errorf("ParseTaskStatus(%q) should be valid", s)
		}
		if string(status) != s {
			t.Errorf("ParseTaskStatus(%q) = %q", s, status)
		}
	}

	invalid := []string{"", "todo", "done", "ARCHIVED", "IN PROGRESS", "DONE "}
	for _, s := range invalid {
		if _, ok := ParseTaskStatus(s); ok {
			t.Errorf("ParseTaskStatus(%q) should be rejected", s)
		}
	}
}

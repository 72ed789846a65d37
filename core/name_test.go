package core

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{".", ""},
		{"...", ""},
		{"a", "a"},
		{"a.b.c", "a.b.c"},
		{".a.b.", "a.b"},
		{"a..b", "a.b"},
		{" a . b ", "a.b"},
		{" .. child3", "child3"},
		{"component.sub", "component.sub"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParentName(t *testing.T) {
	tests := []struct {
		in     string
		parent string
		ok     bool
	}{
		{"", "", false},
		{"a", "", true},
		{"a.b", "a", true},
		{"a.b.c", "a.b", true},
	}
	for _, tt := range tests {
		parent, ok := ParentName(tt.in)
		if parent != tt.parent || ok != tt.ok {
			t.Errorf("ParentName(%q) = (%q, %v), want (%q, %v)", tt.in, parent, ok, tt.parent, tt.ok)
		}
	}
}

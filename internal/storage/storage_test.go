package storage

import (
	"reflect"
	"testing"
)

func TestLogicalName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare name", in: "book.xlsx", want: "book.xlsx"},
		{name: "relative subdir", in: "reports/book.xlsx", want: "reports/book.xlsx"},
		{name: "absolute keeps basename", in: "/data/excel/book.xlsx", want: "book.xlsx"},
		{name: "backslashes normalized", in: "reports\\q1\\book.xlsx", want: "reports/q1/book.xlsx"},
		{name: "leading slashes stripped", in: "//book.xlsx", want: "book.xlsx"},
		{name: "surrounding whitespace", in: "  book.xlsx \t", want: "book.xlsx"},
		{name: "empty in empty out", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := LogicalName(tt.in); got != tt.want {
				t.Fatalf("LogicalName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogicalName_SameArtifact(t *testing.T) {
	t.Parallel()

	// Different spellings of the same file must resolve identically.
	pairs := [][2]string{
		{"/tmp/exports/book.xlsx", "book.xlsx"},
		{" book.xlsx", "book.xlsx"},
		{"/a/book.xlsx", "/b/book.xlsx"},
	}
	for _, p := range pairs {
		if LogicalName(p[0]) != LogicalName(p[1]) {
			t.Fatalf("LogicalName(%q) = %q, LogicalName(%q) = %q; want equal",
				p[0], LogicalName(p[0]), p[1], LogicalName(p[1]))
		}
	}
}

func TestFilterNames(t *testing.T) {
	t.Parallel()

	names := []string{"a.xlsx", "b.xlsx", "sub/c.xlsx", "notes.txt", "axxlsx"}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "no pattern passes all", pattern: "", want: names},
		{name: "star crosses separators", pattern: "*.xlsx", want: []string{"a.xlsx", "b.xlsx", "sub/c.xlsx"}},
		{name: "dot is literal", pattern: "a*xlsx", want: []string{"a.xlsx", "axxlsx"}},
		{name: "exact literal", pattern: "notes.txt", want: []string{"notes.txt"}},
		{name: "no matches", pattern: "*.csv", want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := filterNames(names, tt.pattern)
			if err != nil {
				t.Fatalf("filterNames() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("filterNames(%q) = %#v, want %#v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestJoinKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{prefix: "", name: "book.xlsx", want: "book.xlsx"},
		{prefix: "excel", name: "book.xlsx", want: "excel/book.xlsx"},
		{prefix: "excel", name: "/book.xlsx", want: "excel/book.xlsx"},
	}
	for _, tt := range tests {
		if got := joinKey(tt.prefix, tt.name); got != tt.want {
			t.Fatalf("joinKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestNormPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/", want: ""},
		{in: " /excel/ ", want: "excel"},
		{in: "excel/reports", want: "excel/reports"},
	}
	for _, tt := range tests {
		if got := normPrefix(tt.in); got != tt.want {
			t.Fatalf("normPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

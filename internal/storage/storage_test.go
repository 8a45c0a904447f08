package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "result")

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/tk8-results")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if want := filepath.Join(home, "tk8-results"); s.Dir() != want {
		t.Errorf("Dir() = %q, want %q", s.Dir(), want)
	}
}

func TestUniquePath(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name     string
		existing []string
		file     string
		want     string
	}{
		{
			name: "no collision",
			file: "report.xlsx",
			want: "report.xlsx",
		},
		{
			name:     "one collision",
			existing: []string{"a.xlsx"},
			file:     "a.xlsx",
			want:     "a_2.xlsx",
		},
		{
			name:     "several collisions",
			existing: []string{"b.xlsx", "b_2.xlsx", "b_3.xlsx"},
			file:     "b.xlsx",
			want:     "b_4.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range tt.existing {
				if err := os.WriteFile(filepath.Join(s.Dir(), name), []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := s.UniquePath(tt.file)
			if err != nil {
				t.Fatalf("UniquePath() error: %v", err)
			}
			if want := filepath.Join(s.Dir(), tt.want); got != want {
				t.Errorf("UniquePath() = %q, want %q", got, want)
			}
		})
	}
}

func TestUniquePath_RejectsPaths(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for _, name := range []string{"", "../escape.xlsx", "sub/dir.xlsx"} {
		if _, err := s.UniquePath(name); err == nil {
			t.Errorf("UniquePath(%q) expected error", name)
		}
	}
}

func TestList(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, name := range []string{"a.xlsx", "b.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(s.Dir(), name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "sub.xlsx"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := s.List(".xlsx")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List() = %v, want 2 xlsx files", names)
	}
}

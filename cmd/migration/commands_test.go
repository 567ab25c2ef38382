package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default", args: nil, want: 1},
		{name: "explicit", args: []string{"3"}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"two"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSteps(%v): %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseVersionRejectsNegative(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	got, err := parseVersion(" 1788220802 ")
	if err != nil || got != 1788220802 {
		t.Fatalf("parseVersion: got=%d err=%v", got, err)
	}
}

func TestResolveMigrationsDirPrefersExplicit(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("resolve=%q want=%q", got, want)
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")

	got := normalizeDBURL("postgres://u:p@localhost:5432/touchline?sslmode=disable")
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag in url, got %q", got)
	}
}

func TestRootCommandRequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"version"})
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}

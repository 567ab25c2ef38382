package main

import (
	"bytes"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulate_TextLog(t *testing.T) {
	out, err := execute(t, "--age-group", "U7", "--players", "6", "--seed", "42")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if !strings.Contains(out, "status: finished") {
		t.Fatalf("expected finished game, got:\n%s", out)
	}
	if !strings.Contains(out, "0': INITIAL - ") {
		t.Fatalf("expected initial lineup line, got:\n%s", out)
	}
	if !strings.Contains(out, "QUARTER BREAK") {
		t.Fatalf("expected quarter breaks, got:\n%s", out)
	}
	if !strings.Contains(out, "SUB - OUT: [") {
		t.Fatalf("expected substitutions with a bench of two, got:\n%s", out)
	}
}

func TestSimulate_SeedIsDeterministic(t *testing.T) {
	first, err := execute(t, "--team", memory.TeamIDLittleLions, "--seed", "7")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := execute(t, "--team", memory.TeamIDLittleLions, "--seed", "7")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != second {
		t.Fatalf("same seed produced different logs")
	}
}

func TestSimulate_JSONCredit(t *testing.T) {
	out, err := execute(t, "--team", memory.TeamIDLittleLions, "--absent", "lions-06", "--format", "json", "--seed", "3")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var result simulation
	if err := sonic.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if result.State.Status != lineup.StatusFinished {
		t.Fatalf("expected finished, got %s", result.State.Status)
	}
	// 4 on field x 40 minutes shared by 5 available players.
	if got := result.Credit["lions-06"]; got != 32 {
		t.Fatalf("expected absent credit 32, got %d", got)
	}
	total := 0
	for id, minutes := range result.Credit {
		if id != "lions-06" {
			total += minutes
		}
	}
	if total != 160 {
		t.Fatalf("expected 160 credited player-minutes, got %d", total)
	}
}

func TestSimulate_ForfeitWithoutCredit(t *testing.T) {
	out, err := execute(t, "--age-group", "U7", "--players", "2", "--format", "json")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var result simulation
	if err := sonic.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if result.State.Status != lineup.StatusForfeit {
		t.Fatalf("expected forfeit, got %s", result.State.Status)
	}
	if len(result.Credit) != 0 {
		t.Fatalf("expected no credit for a forfeit, got %v", result.Credit)
	}
}

func TestSimulate_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown team", args: []string{"--team", "nope"}},
		{name: "unknown absent player", args: []string{"--absent", "p99"}},
		{name: "bad intensity", args: []string{"--intensity", "wild"}},
		{name: "bad format", args: []string{"--format", "xml"}},
		{name: "bad age group", args: []string{"--age-group", "U30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

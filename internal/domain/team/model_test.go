package team

import "testing"

func TestDefaultsFollowAgeGroupPresets(t *testing.T) {
	tests := []struct {
		group    AgeGroup
		onField  int
		periods  int
		minutes  int
		keeper   bool
		minStart int
	}{
		{group: AgeGroupU6, onField: 4, periods: 4, minutes: 10, keeper: false, minStart: 3},
		{group: AgeGroupU9, onField: 6, periods: 2, minutes: 25, keeper: true, minStart: 4},
		{group: AgeGroupU10, onField: 8, periods: 2, minutes: 30, keeper: true, minStart: 6},
		{group: AgeGroupU17, onField: 11, periods: 2, minutes: 35, keeper: true, minStart: 7},
	}

	for _, tc := range tests {
		t.Run(string(tc.group), func(t *testing.T) {
			team, err := Defaults("t1", "Comets", tc.group)
			if err != nil {
				t.Fatalf("defaults: %v", err)
			}
			if team.PlayersOnField != tc.onField || team.Periods != tc.periods || team.MinutesPerPeriod != tc.minutes {
				t.Fatalf("unexpected format: %+v", team)
			}
			if team.DedicatedGoalkeeper != tc.keeper {
				t.Fatalf("unexpected dedicated goalkeeper: %v", team.DedicatedGoalkeeper)
			}
			if team.MinPlayersToStart != tc.minStart {
				t.Fatalf("unexpected min players to start: %d", team.MinPlayersToStart)
			}
			if err := team.Validate(); err != nil {
				t.Fatalf("preset team should validate: %v", err)
			}
		})
	}
}

func TestEveryAgeGroupHasPreset(t *testing.T) {
	for _, group := range AllAgeGroups {
		if _, err := PresetFor(group); err != nil {
			t.Fatalf("preset for %s: %v", group, err)
		}
	}
}

func TestParsePresetsRejectsGaps(t *testing.T) {
	raw := []byte("presets:\n  - ageGroups: [U6]\n    playersOnField: 4\n    periods: 4\n    minutesPerPeriod: 10\n    minPlayersToStart: 3\n")
	if _, err := parsePresets(raw); err == nil {
		t.Fatalf("expected error for missing age groups")
	}
}

func TestValidate(t *testing.T) {
	team, err := Defaults("t1", "Comets", AgeGroupU7)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}

	invalid := team
	invalid.MinPlayersToStart = 5
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error when min players exceeds players on field")
	}

	invalid = team
	invalid.AgeGroup = "U30"
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error for unknown age group")
	}

	invalid = team
	invalid.Name = "  "
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestGameConfig(t *testing.T) {
	team, _ := Defaults("t1", "Comets", AgeGroupU8)
	cfg := team.GameConfig()
	if cfg.TotalPlayerMinutes() != 6*25*2 {
		t.Fatalf("unexpected total player minutes: %d", cfg.TotalPlayerMinutes())
	}
}

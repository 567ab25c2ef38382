package team

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset holds the match format defaults of an age group.
type Preset struct {
	AgeGroups           []AgeGroup `yaml:"ageGroups"`
	PlayersOnField      int        `yaml:"playersOnField"`
	Periods             int        `yaml:"periods"`
	MinutesPerPeriod    int        `yaml:"minutesPerPeriod"`
	DedicatedGoalkeeper bool       `yaml:"dedicatedGoalkeeper"`
	MinPlayersToStart   int        `yaml:"minPlayersToStart"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

var (
	presetsOnce sync.Once
	presetIndex map[AgeGroup]Preset
	presetErr   error
)

func loadPresets() (map[AgeGroup]Preset, error) {
	presetsOnce.Do(func() {
		presetIndex, presetErr = parsePresets(presetsYAML)
	})
	return presetIndex, presetErr
}

func parsePresets(raw []byte) (map[AgeGroup]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode age group presets: %w", err)
	}

	out := make(map[AgeGroup]Preset, len(AllAgeGroups))
	for _, preset := range file.Presets {
		for _, group := range preset.AgeGroups {
			if _, ok := out[group]; ok {
				return nil, fmt.Errorf("age group %s has more than one preset", group)
			}
			out[group] = preset
		}
	}
	for _, group := range AllAgeGroups {
		if _, ok := out[group]; !ok {
			return nil, fmt.Errorf("age group %s has no preset", group)
		}
	}

	return out, nil
}

// PresetFor returns the defaults for an age group.
func PresetFor(group AgeGroup) (Preset, error) {
	presets, err := loadPresets()
	if err != nil {
		return Preset{}, err
	}
	preset, ok := presets[group]
	if !ok {
		return Preset{}, fmt.Errorf("unknown age group %q", group)
	}
	return preset, nil
}

// Defaults builds a team whose match format comes from the age group preset.
func Defaults(id, name string, group AgeGroup) (Team, error) {
	preset, err := PresetFor(group)
	if err != nil {
		return Team{}, err
	}

	return Team{
		ID:                  id,
		Name:                name,
		AgeGroup:            group,
		PlayersOnField:      preset.PlayersOnField,
		Periods:             preset.Periods,
		MinutesPerPeriod:    preset.MinutesPerPeriod,
		DedicatedGoalkeeper: preset.DedicatedGoalkeeper,
		MinPlayersToStart:   preset.MinPlayersToStart,
	}, nil
}

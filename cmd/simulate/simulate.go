package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	teamID         string
	ageGroup       string
	players        int
	absent         []string
	intensity      string
	autoSubstitute bool
	seed           uint64
	format         string
}

type simulation struct {
	State  lineup.GameState `json:"state"`
	Report lineup.Report    `json:"report"`
	Credit map[string]int   `json:"credit,omitempty"`
}

func newRootCommand() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Play a whole youth game offline and print the substitution log",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.format {
			case "text", "json":
				return nil
			default:
				return fmt.Errorf("invalid format %q: must be text or json", opts.format)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := runSimulation(*opts)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, result)
		},
	}

	cmd.Flags().StringVar(&opts.teamID, "team", "", "seeded team id to play (overrides --age-group and --players)")
	cmd.Flags().StringVar(&opts.ageGroup, "age-group", string(team.AgeGroupU8), "age group preset for a generated roster")
	cmd.Flags().IntVar(&opts.players, "players", 8, "size of the generated roster")
	cmd.Flags().StringSliceVar(&opts.absent, "absent", nil, "player ids that miss the game")
	cmd.Flags().StringVar(&opts.intensity, "intensity", string(lineup.IntensityBalanced), "frequent, balanced or infrequent")
	cmd.Flags().BoolVar(&opts.autoSubstitute, "auto-substitute", true, "apply every proposal at its checkpoint")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "tie-break seed; 0 picks a random one")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	return cmd
}

func runSimulation(opts simulateOptions) (simulation, error) {
	intensity, err := lineup.ParseIntensity(opts.intensity)
	if err != nil {
		return simulation{}, err
	}

	item, roster, err := loadRoster(opts)
	if err != nil {
		return simulation{}, err
	}

	available := make(map[string]bool, len(roster))
	for _, p := range roster {
		available[p.ID] = true
	}
	for _, id := range opts.absent {
		id = strings.TrimSpace(id)
		if _, ok := available[id]; !ok {
			return simulation{}, fmt.Errorf("absent player %q is not on the roster", id)
		}
		available[id] = false
	}

	engineOpts := []lineup.Option{lineup.WithAutoSubstitute(opts.autoSubstitute)}
	if opts.seed != 0 {
		engineOpts = append(engineOpts, lineup.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}
	engine := lineup.NewEngine(engineOpts...)

	state := engine.InitializeGame(item.GameConfig(), intensity, player.Snapshots(roster), player.Availability(roster, available))
	final := engine.SimulateFullGame(&state)

	out := simulation{
		State:  final,
		Report: lineup.BuildReport(final),
	}
	if final.Status == lineup.StatusFinished {
		credit, err := lineup.MinutesToCredit(final)
		if err != nil {
			return simulation{}, err
		}
		out.Credit = credit
	}

	return out, nil
}

func loadRoster(opts simulateOptions) (team.Team, []player.Player, error) {
	if opts.teamID != "" {
		for _, t := range memory.SeedTeams() {
			if t.ID != opts.teamID {
				continue
			}
			roster := make([]player.Player, 0)
			for _, p := range memory.SeedPlayers() {
				if p.TeamID == t.ID {
					roster = append(roster, p)
				}
			}
			player.SortRoster(roster)
			return t, roster, nil
		}
		return team.Team{}, nil, fmt.Errorf("unknown team %q", opts.teamID)
	}

	group, err := team.ParseAgeGroup(opts.ageGroup)
	if err != nil {
		return team.Team{}, nil, err
	}
	item, err := team.Defaults("simulated", "Simulated "+string(group), group)
	if err != nil {
		return team.Team{}, nil, err
	}
	if opts.players < 1 {
		return team.Team{}, nil, fmt.Errorf("players must be at least 1")
	}

	roster := make([]player.Player, 0, opts.players)
	for i := 1; i <= opts.players; i++ {
		jersey := i
		roster = append(roster, player.Player{
			ID:           fmt.Sprintf("p%02d", i),
			TeamID:       item.ID,
			Name:         fmt.Sprintf("Player %02d", i),
			JerseyNumber: &jersey,
		})
	}
	return item, roster, nil
}

func render(w io.Writer, format string, result simulation) error {
	if format == "json" {
		payload, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode simulation: %w", err)
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}

	report := result.Report
	fmt.Fprintf(w, "status: %s  minutes: %d  substitutions: %d\n\n", report.Status, report.TotalMinutes, report.Substitutions)
	for _, line := range report.EventLog {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, "\nminutes played:")
	for _, pm := range report.MinutesPlayed {
		fmt.Fprintf(w, "  %-20s %3d", pm.Name, pm.Minutes)
		if credit, ok := result.Credit[pm.ID]; ok {
			fmt.Fprintf(w, "  (+%d season)", credit)
		}
		fmt.Fprintln(w)
	}
	if len(report.NotAvailable) > 0 {
		fmt.Fprintf(w, "not available: %s\n", strings.Join(report.NotAvailable, ", "))
	}
	if len(report.Injured) > 0 {
		fmt.Fprintf(w, "injured: %s\n", strings.Join(report.Injured, ", "))
	}
	return nil
}

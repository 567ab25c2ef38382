package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/touchline/internal/platform/cache"
)

type countingPlayerRepo struct {
	player.Repository
	lists int
}

func (r *countingPlayerRepo) ListByTeam(ctx context.Context, teamID, search string) ([]player.Player, error) {
	r.lists++
	return r.Repository.ListByTeam(ctx, teamID, search)
}

func TestPlayerRepository_CachesRosterUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	next := &countingPlayerRepo{Repository: memory.NewPlayerRepository(memory.SeedPlayers())}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		items, err := repo.ListByTeam(ctx, memory.TeamIDLittleLions, "")
		if err != nil {
			t.Fatalf("list players: %v", err)
		}
		if len(items) != 6 {
			t.Fatalf("expected 6 players, got %d", len(items))
		}
	}
	if next.lists != 1 {
		t.Fatalf("expected one storage read, got %d", next.lists)
	}

	if _, err := repo.ListByTeam(ctx, memory.TeamIDLittleLions, "ava"); err != nil {
		t.Fatalf("search players: %v", err)
	}
	if next.lists != 2 {
		t.Fatalf("expected search to bypass cache, got %d reads", next.lists)
	}

	item, exists, err := repo.GetByID(ctx, "lions-01")
	if err != nil || !exists {
		t.Fatalf("get player: exists=%v err=%v", exists, err)
	}
	item.SeasonMinutesPlayed += 40
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("upsert player: %v", err)
	}

	items, err := repo.ListByTeam(ctx, memory.TeamIDLittleLions, "")
	if err != nil {
		t.Fatalf("list players after upsert: %v", err)
	}
	if next.lists != 3 {
		t.Fatalf("expected upsert to invalidate the roster, got %d reads", next.lists)
	}
	for _, p := range items {
		if p.ID == "lions-01" && p.SeasonMinutesPlayed != 80 {
			t.Fatalf("expected refreshed season minutes 80, got %d", p.SeasonMinutesPlayed)
		}
	}

	updated, _, err := repo.GetByID(ctx, "lions-01")
	if err != nil {
		t.Fatalf("get player after upsert: %v", err)
	}
	if updated.SeasonMinutesPlayed != 80 {
		t.Fatalf("expected cached player to be refreshed, got %d", updated.SeasonMinutesPlayed)
	}
}

func TestTeamRepository_CachesMissingTeam(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := NewTeamRepository(memory.NewTeamRepository(memory.SeedTeams()), basecache.NewStore(time.Minute))

	_, exists, err := repo.GetByID(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing team: %v", err)
	}
	if exists {
		t.Fatalf("expected missing team to not exist")
	}

	teams, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}

	if err := repo.Delete(ctx, memory.TeamIDRiversideRockets); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	teams, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams after delete: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team after delete, got %d", len(teams))
	}
}

func TestFixtureRepository_ReturnsIsolatedAvailability(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := NewFixtureRepository(memory.NewFixtureRepository(memory.SeedGames()), basecache.NewStore(time.Minute))

	game, exists, err := repo.GetByID(ctx, memory.GameIDLionsOpener)
	if err != nil || !exists {
		t.Fatalf("get game: exists=%v err=%v", exists, err)
	}
	game.Availability["lions-06"] = true

	again, _, err := repo.GetByID(ctx, memory.GameIDLionsOpener)
	if err != nil {
		t.Fatalf("get game again: %v", err)
	}
	if again.Availability["lions-06"] {
		t.Fatalf("caller mutation leaked into the cache")
	}

	if err := repo.UpdateAvailability(ctx, memory.GameIDLionsOpener, map[string]bool{"lions-06": true}); err != nil {
		t.Fatalf("update availability: %v", err)
	}
	games, err := repo.ListByTeam(ctx, memory.TeamIDLittleLions)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	var found fixture.Game
	for _, g := range games {
		if g.ID == memory.GameIDLionsOpener {
			found = g
		}
	}
	if !found.Availability["lions-06"] {
		t.Fatalf("expected refreshed availability, got %+v", found.Availability)
	}
}

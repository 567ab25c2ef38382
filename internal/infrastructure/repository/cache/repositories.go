package cache

import (
	"context"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	basecache "github.com/riskibarqy/touchline/internal/platform/cache"
)

const (
	teamPrefix   = "team:"
	playerPrefix = "player:"
	gamePrefix   = "game:"

	teamListKey = teamPrefix + "list"
)

// TeamRepository caches team reads. Deleting a team also drops every cached
// player and game because the delete cascades in storage.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, teamListKey, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, teamPrefix+"id:"+teamID, func(ctx context.Context) (cachedByID[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedByID[team.Team]{}, err
		}
		return cachedByID[team.Team]{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, teamListKey, teamPrefix+"id:"+item.ID)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, teamPrefix)
	r.cache.DeletePrefix(ctx, playerPrefix)
	r.cache.DeletePrefix(ctx, gamePrefix)
	return nil
}

// PlayerRepository caches roster reads. Searches always go to storage.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID, search string) ([]player.Player, error) {
	if search != "" {
		return r.next.ListByTeam(ctx, teamID, search)
	}

	items, err := basecache.Load(ctx, r.cache, playerListKey(teamID), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByTeam(ctx, teamID, "")
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, playerPrefix+"id:"+playerID, func(ctx context.Context) (cachedByID[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return cachedByID[player.Player]{}, err
		}
		return cachedByID[player.Player]{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, playerListKey(item.TeamID), playerPrefix+"id:"+item.ID)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	if err := r.next.Delete(ctx, playerID); err != nil {
		return err
	}

	r.cache.Delete(ctx, playerPrefix+"id:"+playerID)
	r.cache.DeletePrefix(ctx, playerPrefix+"team:")
	return nil
}

func playerListKey(teamID string) string {
	return playerPrefix + "team:" + teamID
}

// FixtureRepository caches scheduled games. Games carry an availability map,
// so every read hands out a clone.
type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByTeam(ctx context.Context, teamID string) ([]fixture.Game, error) {
	items, err := basecache.Load(ctx, r.cache, gameListKey(teamID), func(ctx context.Context) ([]fixture.Game, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cloneGames(items), nil
	})
	if err != nil {
		return nil, err
	}

	return cloneGames(items), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, gameID string) (fixture.Game, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, gamePrefix+"id:"+gameID, func(ctx context.Context) (cachedByID[fixture.Game], error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return cachedByID[fixture.Game]{}, err
		}
		return cachedByID[fixture.Game]{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return fixture.Game{}, false, err
	}

	return cached.value.Clone(), cached.exists, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Game) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, gameListKey(item.TeamID), gamePrefix+"id:"+item.ID)
	return nil
}

func (r *FixtureRepository) UpdateAvailability(ctx context.Context, gameID string, availability map[string]bool) error {
	if err := r.next.UpdateAvailability(ctx, gameID, availability); err != nil {
		return err
	}

	r.invalidateGame(ctx, gameID)
	return nil
}

func (r *FixtureRepository) Delete(ctx context.Context, gameID string) error {
	if err := r.next.Delete(ctx, gameID); err != nil {
		return err
	}

	r.invalidateGame(ctx, gameID)
	return nil
}

func (r *FixtureRepository) invalidateGame(ctx context.Context, gameID string) {
	r.cache.Delete(ctx, gamePrefix+"id:"+gameID)
	r.cache.DeletePrefix(ctx, gamePrefix+"team:")
}

func gameListKey(teamID string) string {
	return gamePrefix + "team:" + teamID
}

func cloneGames(items []fixture.Game) []fixture.Game {
	out := make([]fixture.Game, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

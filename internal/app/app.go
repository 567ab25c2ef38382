package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/touchline/internal/config"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	cacherepo "github.com/riskibarqy/touchline/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/touchline/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/touchline/internal/platform/cache"
	idgen "github.com/riskibarqy/touchline/internal/platform/id"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/resilience"
	"github.com/riskibarqy/touchline/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	teams    team.Repository
	players  player.Repository
	fixtures fixture.Repository
	close    func() error
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// stops live sessions and closes the database; call it after the server has
// shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	expiry, err := usecase.ParseExpiryPolicy(cfg.LiveCountdownExpiry)
	if err != nil {
		_ = repos.close()
		return nil, nil, err
	}

	ids := idgen.NewUUIDGenerator()
	breaker := resilience.NewCircuitBreaker(cfg.CreditCircuitBreaker())

	liveSvc := usecase.NewLiveGameService(
		repos.teams,
		repos.players,
		repos.fixtures,
		func() lineup.Engine { return lineup.NewEngine() },
		ids,
		logger.Named("live"),
		breaker,
		usecase.LiveGameConfig{
			TickInterval:     cfg.LiveTickInterval,
			CountdownSeconds: cfg.LiveCountdownSeconds,
			Expiry:           expiry,
			WorkerPoolSize:   cfg.LiveWorkerPoolSize,
		},
	)

	handler := httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, ids),
		usecase.NewPlayerService(repos.teams, repos.players, ids),
		usecase.NewFixtureService(repos.teams, repos.players, repos.fixtures, ids),
		liveSvc,
		cfg.CORSAllowedOrigins,
		logger.Named("http"),
	)
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() error {
		liveSvc.Shutdown()
		return repos.close()
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = repositories{
			teams:    postgres.NewTeamRepository(db),
			players:  postgres.NewPlayerRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			close:    db.Close,
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		repos = repositories{
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			fixtures: memory.NewFixtureRepository(memory.SeedGames()),
			close:    func() error { return nil },
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
	}

	return repos, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

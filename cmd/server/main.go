package main

import (
	"attractions-walker/internal/adapters/fake"
	"attractions-walker/internal/adapters/google"
	"attractions-walker/internal/adapters/repositories"
	"attractions-walker/internal/adapters/sensor"
	"attractions-walker/internal/adapters/sessions"
	"attractions-walker/internal/api"
	"attractions-walker/internal/config"
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/db"
	"attractions-walker/internal/ports"
	"attractions-walker/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = time.Minute

// providers bundles the map adapters the session manager needs.
type providers struct {
	geocoder   ports.ReverseGeocoder
	searcher   ports.NearbySearcher
	details    ports.PlaceDetailsProvider
	directions ports.DirectionsProvider
}

// main is the application composition root.
// It wires concrete adapters (Google, Redis, SQLite/Postgres) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	p, err := newProviders(cfg)
	if err != nil {
		return err
	}

	store, sweeper, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	walkDB, walkLog, err := newWalkLog(ctx, cfg)
	if err != nil {
		return err
	}
	defer walkDB.Close()

	manager, err := services.NewManager(services.ManagerConfig{
		Store:              store,
		WalkLog:            walkLog,
		Geocoder:           p.geocoder,
		Aggregator:         services.NewAggregator(p.searcher, cfg.SearchRadiusM),
		Presenter:          &services.Presenter{Details: p.details, Directions: p.directions},
		FirstPageTimeout:   cfg.FirstPageTimeout,
		AggregationTimeout: cfg.AggregationTimeout,
	})
	if err != nil {
		return err
	}

	ipClient := &http.Client{Timeout: 5 * time.Second}
	fallbackSensor := func(r *http.Request) ports.LocationSensor {
		return sensor.NewIPSensor(ipClient, cfg.IPGeolocationURL, r.RemoteAddr)
	}

	router := api.NewRouter(manager, fallbackSensor)

	// WriteTimeout covers Start waiting up to FIRST_PAGE_TIMEOUT plus the
	// details and directions calls for the first place.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.FirstPageTimeout + 60*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s provider=%s store=%s", cfg.Port, cfg.PlacesProvider, cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}

		manager.Close()
		return nil
	})

	if sweeper != nil {
		g.Go(func() error {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					n, err := sweeper.Sweep(gctx)
					if err != nil {
						log.Printf("session sweep failed: %v", err)
						continue
					}
					if n > 0 {
						log.Printf("session sweep removed=%d", n)
					}
				}
			}
		})
	}

	return g.Wait()
}

func newProviders(cfg config.Config) (providers, error) {
	if cfg.PlacesProvider == "fake" {
		log.Println("Using demo places provider (no Google calls)")
		dir, details := fake.DemoDirectory(domain.DefaultCoordinates)
		return providers{
			geocoder:   &fake.Geocoder{Name: domain.DefaultPlaceName},
			searcher:   dir,
			details:    details,
			directions: fake.DemoDirections{},
		}, nil
	}

	client, err := google.NewClient(cfg.GoogleAPIKey,
		google.WithBaseURL(cfg.GoogleBaseURL),
		google.WithQPS(cfg.GoogleQPS),
		google.WithPageTokenDelay(cfg.PageTokenDelay),
	)
	if err != nil {
		return providers{}, fmt.Errorf("new providers: %w", err)
	}

	return providers{geocoder: client, searcher: client, details: client, directions: client}, nil
}

type sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

func newSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, sweeper, func(), error) {
	if cfg.SessionStore == "redis" {
		rdb, err := sessions.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Printf("redis close: %v", err)
			}
		}
		// Redis expires keys itself.
		return sessions.NewRedisSessionStore(rdb, cfg.SessionTTL), nil, closeFn, nil
	}

	store := sessions.NewMemorySessionStore(cfg.SessionTTL)
	return store, store, func() {}, nil
}

// newWalkLog prefers Postgres when DATABASE_URL is set and falls back to a
// local SQLite file.
func newWalkLog(ctx context.Context, cfg config.Config) (*sql.DB, ports.WalkLog, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSQLWalkLog(conn), nil
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, repositories.NewSqliteWalkLog(conn), nil
}

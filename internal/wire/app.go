package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/promptvault/internal/adapter/localfile"
	"github.com/alanyang/promptvault/internal/adapter/memory"
	pgdb "github.com/alanyang/promptvault/internal/adapter/postgres"
	pgslot "github.com/alanyang/promptvault/internal/adapter/postgres/slot"
	portstore "github.com/alanyang/promptvault/internal/port/store"
	"github.com/alanyang/promptvault/internal/service/library"
	"github.com/alanyang/promptvault/internal/transport"
	mcptransport "github.com/alanyang/promptvault/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool       *pgxpool.Pool // nil unless DATABASE_URL is set
	Server     *http.Server
	LibrarySvc *library.Service
}

// Close releases resources owned by the app.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// Build is the composition root: the only place concrete types are wired to
// their interface dependencies.
func Build(ctx context.Context) (*App, error) {
	// ── Slot store ───────────────────────────────────────────────────────────
	// Default is a JSON file under DATA_DIR; DATABASE_URL switches to Postgres.
	var (
		slotStore portstore.SlotStore
		pool      *pgxpool.Pool
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		p, err := pgdb.Connect(ctx, dbURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		pool = p
		slotStore = pgslot.New(pool)
		slog.Info("using postgres slot store")
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "./data"
		}
		fs, err := localfile.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening data dir: %w", err)
		}
		slotStore = fs
		slog.Info("using local file slot store", "dir", dataDir)
	}

	slot := os.Getenv("PROMPTS_SLOT")
	if slot == "" {
		slot = "prompts"
	}

	// ── Services ─────────────────────────────────────────────────────────────
	eventBus := memory.NewBus()
	librarySvc := library.NewService(ctx, slotStore, eventBus, slot)

	// ── Transport ────────────────────────────────────────────────────────────
	mcpServer := mcptransport.New(librarySvc)
	cache := memory.NewCache()
	router := transport.NewRouter(ctx, librarySvc, mcpServer.Handler(), eventBus, cache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	slog.Info("application wired", "port", port, "slot", slot)

	return &App{
		Pool:       pool,
		Server:     server,
		LibrarySvc: librarySvc,
	}, nil
}

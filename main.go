package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/party-vote/cliparse"
	"github.com/danielhkuo/party-vote/db"
	"github.com/danielhkuo/party-vote/logger"
	"github.com/danielhkuo/party-vote/middleware"
	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/recordstore"
	"github.com/danielhkuo/party-vote/router"
	"github.com/danielhkuo/party-vote/session"
)

func main() {
	var err error

	// Load .env before reading the environment
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Env, os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the shared record store
	store, conn, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("record store setup failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	if conn != nil {
		defer conn.Close()
	}
	log.Info("Record store ready",
		"type", cfg.DatabaseType,
		"conflict_strategy", cfg.ConflictStrategy,
		"probe_policy", cfg.ProbePolicy,
	)

	// Sessions, and the janitor that drops idle ones
	mgr := session.NewManager(store, session.FromConfig(cfg, log))
	defer mgr.Close()
	go mgr.Run(ctx)

	// Create router
	mux := router.NewRouter(mgr, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	log.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Error("Server closed", "error", err)
	} else {
		log.Info("Server closed", "error", err)
	}
}

// openStore builds the record store for cfg. conn is nil for the memory store.
func openStore(ctx context.Context, cfg cliparse.Config) (recordstore.Store, *sql.DB, error) {
	if cfg.DatabaseType == cliparse.DatabaseMemory {
		return recordstore.NewMemoryStore(models.TableVotes, models.TableDedications), nil, nil
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Create schema (tables) and seed both sheets
	if err := db.CreateSchema(ctx, conn, dialect, models.TableVotes, models.TableDedications); err != nil {
		conn.Close()
		return nil, nil, err
	}

	return recordstore.NewSQLStore(conn, dialect), conn, nil
}

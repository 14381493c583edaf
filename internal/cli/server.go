package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kayanski/launchpad/internal/config"
	"github.com/Kayanski/launchpad/internal/core/minter"
	"github.com/Kayanski/launchpad/internal/rpc"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb/leveldb"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb/memory"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb/pebble"
	"github.com/Kayanski/launchpad/internal/storage/relationaldb"
	"github.com/Kayanski/launchpad/internal/storage/relationaldb/postgres"
	"github.com/Kayanski/launchpad/internal/storage/relationaldb/sqlite"
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the minting controller daemon",
	Long: `Start launchpadd, which provides:
- a public HTTP JSON-RPC listener for purchases and queries
- an admin JSON-RPC listener for operator-only methods
- a WebSocket endpoint streaming completed mints

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	engine := minter.NewEngine(store, config.NewFileParamsProvider(cfg.Authority.ParamsFile), minter.EngineOptions{
		History: history,
		Self:    cfg.Minter.SelfAddress,
	})

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	publisher := rpc.NewPublisher()

	publicServer := rpc.NewServer(rpc.Services{
		Engine:    engine,
		History:   history,
		Publisher: publisher,
	}, timeout, false)
	adminServer := rpc.NewServer(rpc.Services{
		Engine:    engine,
		History:   history,
		Publisher: publisher,
	}, timeout, true)

	publicMux := http.NewServeMux()
	publicMux.Handle("/", publicServer)
	publicMux.Handle("/ws", rpc.NewWebSocketServer(publicServer, publisher))
	publicMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"launchpadd"}`))
	})

	adminMux := http.NewServeMux()
	adminMux.Handle("/", adminServer)

	publicHTTP := &http.Server{Addr: cfg.Server.PublicAddr, Handler: publicMux}
	adminHTTP := &http.Server{Addr: cfg.Server.AdminAddr, Handler: adminMux}

	if !quiet {
		fmt.Println("Starting launchpadd")
		fmt.Printf("  - Public JSON-RPC: http://%s/\n", cfg.Server.PublicAddr)
		fmt.Printf("  - Mint stream:     ws://%s/ws\n", cfg.Server.PublicAddr)
		fmt.Printf("  - Admin JSON-RPC:  http://%s/\n", cfg.Server.AdminAddr)
		fmt.Printf("  - Storage:         %s (%s)\n", cfg.Storage.Backend, cfg.Storage.Path)
		if cfg.History.Driver != "" {
			fmt.Printf("  - Mint history:    %s\n", cfg.History.Driver)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := publicHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("public listener: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		if err := adminHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("admin listener: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		publicHTTP.Shutdown(shutdownCtx)
		adminHTTP.Shutdown(shutdownCtx)
		return nil
	})
	return group.Wait()
}

// openStore opens the configured key-value backend and wraps it in the
// caching store.
func openStore(cfg config.StorageConfig) (*keyValueDb.Store, error) {
	var (
		db  keyValueDb.DB
		err error
	)
	switch cfg.Backend {
	case "pebble":
		db, err = pebble.Open(cfg.Path)
	case "leveldb":
		db, err = leveldb.Open(cfg.Path)
	case "memory":
		db = memory.NewDB()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}
	return keyValueDb.NewStore(db, keyValueDb.StoreOptions{
		CacheSize:         cfg.CacheSize,
		CompressThreshold: cfg.CompressThreshold,
	})
}

// openHistory opens the configured relational history store, or returns nil
// when history is disabled.
func openHistory(cfg config.HistoryConfig) (relationaldb.Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		return sqlite.Open(cfg.DSN)
	case "postgres":
		return postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", relationaldb.ErrUnknownDriver, cfg.Driver)
	}
}

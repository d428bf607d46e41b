package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/waiviolabs/hive-objects-backend/internal/engine"
	"github.com/waiviolabs/hive-objects-backend/internal/hive"
	"github.com/waiviolabs/hive-objects-backend/internal/metrics"
	"github.com/waiviolabs/hive-objects-backend/internal/nodes"
	"github.com/waiviolabs/hive-objects-backend/internal/notify"
	"github.com/waiviolabs/hive-objects-backend/internal/parser"
	"github.com/waiviolabs/hive-objects-backend/internal/storage"
)

type config struct {
	DataDir    string `long:"data-dir" env:"HIVE_OBJECTS_DATA_DIR" description:"leveldb data directory" default:"./data"`
	StartBlock uint64 `long:"start-block" env:"HIVE_OBJECTS_START_BLOCK" description:"block to start from when no cursor is stored" default:"102138605"`
	CursorKey  string `long:"cursor-key" env:"HIVE_OBJECTS_CURSOR_KEY" description:"key the block cursor is stored under" default:"hiveParser:blockNumber"`

	Nodes        []string      `long:"node" env:"HIVE_OBJECTS_NODES" env-delim:"," description:"ledger RPC endpoints" default:"https://api.deathwing.me" default:"https://api.hive.blog" default:"https://api.openhive.network" default:"https://rpc.mahdiyari.info"`
	NodeStatsTTL time.Duration `long:"node-stats-ttl" env:"HIVE_OBJECTS_NODE_STATS_TTL" description:"how long endpoint stats stay relevant" default:"1h"`
	RPCTimeout   time.Duration `long:"rpc-timeout" env:"HIVE_OBJECTS_RPC_TIMEOUT" description:"HTTP timeout for ledger RPC calls" default:"8s"`
	RPCRateLimit int           `long:"rpc-rate-limit" env:"HIVE_OBJECTS_RPC_RATE_LIMIT" description:"ledger RPC calls per second" default:"10"`

	GlobalMuteAccounts []string `long:"global-mute-account" env:"HIVE_OBJECTS_GLOBAL_MUTE_ACCOUNTS" env-delim:"," description:"accounts whose mutes apply platform-wide" default:"waivio"`

	DisableCustomJSON  bool `long:"disable-custom-json" env:"HIVE_OBJECTS_DISABLE_CUSTOM_JSON" description:"skip custom_json operations entirely"`
	DisablePlatformOps bool `long:"disable-platform-ops" env:"HIVE_OBJECTS_DISABLE_PLATFORM_OPS" description:"skip platform object actions"`
	DisableTokenOps    bool `long:"disable-token-ops" env:"HIVE_OBJECTS_DISABLE_TOKEN_OPS" description:"skip token stake operations"`

	NotificationsURL    string `long:"notifications-url" env:"HIVE_OBJECTS_NOTIFICATIONS_URL" description:"websocket URL of the notifications service"`
	NotificationsAPIKey string `long:"notifications-api-key" env:"HIVE_OBJECTS_NOTIFICATIONS_API_KEY" description:"API key for the notifications service"`

	ImportUpdates       bool   `long:"import-updates" env:"HIVE_OBJECTS_IMPORT_UPDATES" description:"forward seeded field updates to the import service"`
	ImportUpdatesURL    string `long:"import-updates-url" env:"HIVE_OBJECTS_IMPORT_UPDATES_URL" description:"endpoint of the import-updates service"`
	ImportUpdatesAPIKey string `long:"import-updates-api-key" env:"HIVE_OBJECTS_IMPORT_UPDATES_API_KEY" description:"API key for the import-updates service"`

	MetricsAddr string `long:"metrics-addr" env:"HIVE_OBJECTS_METRICS_ADDR" description:"address of the prometheus endpoint" default:":2112"`
}

func main() {
	cfg := config{}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("hive ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	objects := storage.NewObjectRepository(store)
	stakes := storage.NewStakeRepository(store)
	pending := storage.NewPendingRepository(store)
	departments := storage.NewDepartmentRepository(store)
	restrictions := storage.NewRestrictionRepository(store)
	cursor := storage.NewBlockCursor(store, cfg.CursorKey, cfg.StartBlock)

	selector, err := nodes.NewSelector(storage.NewNodeStatsRepository(store, cfg.NodeStatsTTL), cfg.Nodes, logger)
	if err != nil {
		return fmt.Errorf("init node selector: %w", err)
	}
	rpc, err := hive.NewClient(selector, metrics.NewRPCClient(), logger, cfg.RPCTimeout, cfg.RPCRateLimit)
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}

	var notifier engine.Notifier = nopNotifier{}
	if cfg.NotificationsURL != "" {
		socket, err := notify.NewSocketNotifier(logger, cfg.NotificationsURL, cfg.NotificationsAPIKey)
		if err != nil {
			return fmt.Errorf("init notifier: %w", err)
		}
		defer func() {
			_ = socket.Close()
		}()
		notifier = socket
	} else {
		logger.Warn("notifications url is not set, notifications are disabled")
	}

	importer, err := notify.NewImportClient(logger, cfg.ImportUpdatesURL, cfg.ImportUpdatesAPIKey, cfg.ImportUpdates)
	if err != nil {
		return fmt.Errorf("init import client: %w", err)
	}
	importer.Start(ctx)
	defer importer.Stop()

	actions, err := engine.New(
		logger,
		objects,
		stakes,
		pending,
		departments,
		restrictions,
		&ledgerPostChecker{rpc: rpc},
		notifier,
		importer,
		engine.Config{GlobalMuteAccounts: cfg.GlobalMuteAccounts},
	)
	if err != nil {
		return fmt.Errorf("init action engine: %w", err)
	}

	customJSON, err := parser.NewCustomJSONParser(logger, actions, stakes, actions, parser.CustomJSONConfig{
		PlatformEnabled: !cfg.DisablePlatformOps,
		TokensEnabled:   !cfg.DisableTokenOps,
	})
	if err != nil {
		return fmt.Errorf("init custom json parser: %w", err)
	}
	parserMetrics := metrics.NewParser()
	blockParser, err := parser.NewParser(logger, customJSON, parserMetrics, parser.Config{
		CustomJSONEnabled: !cfg.DisableCustomJSON,
	})
	if err != nil {
		return fmt.Errorf("init block parser: %w", err)
	}
	processor, err := parser.NewProcessor(logger, rpc, cursor, blockParser, pending, parserMetrics)
	if err != nil {
		return fmt.Errorf("init block processor: %w", err)
	}

	go serveMetrics(ctx, cfg.MetricsAddr, logger)

	logger.Info("starting block processing",
		zap.Uint64("start_block", cfg.StartBlock),
		zap.Strings("nodes", cfg.Nodes))
	return processor.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("metrics server listening", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", zap.Error(err))
	}
}

// ledgerPostChecker answers post-existence lookups against the ledger RPC.
// A missing post comes back from the node as an empty document.
type ledgerPostChecker struct {
	rpc *hive.Client
}

func (c *ledgerPostChecker) Exists(ctx context.Context, author, permlink string) (bool, error) {
	content, err := c.rpc.GetContent(ctx, author, permlink)
	if err != nil {
		return false, fmt.Errorf("get content @%s/%s: %w", author, permlink, err)
	}
	return content != nil && strings.TrimSpace(content.Author) != "", nil
}

// nopNotifier stands in when no notifications endpoint is configured.
type nopNotifier struct{}

func (nopNotifier) RejectUpdate(context.Context, string, string, string) {}

func (nopNotifier) StatusChange(context.Context, string, string) {}

func (nopNotifier) ObjectCreated(context.Context, string, string, string) {}

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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/clearbid/driver-backend/internal/competition"
	"github.com/clearbid/driver-backend/internal/coordinator"
	"github.com/clearbid/driver-backend/internal/ethereum"
	"github.com/clearbid/driver-backend/internal/ledger/postgres"
	"github.com/clearbid/driver-backend/internal/metrics"
	"github.com/clearbid/driver-backend/internal/orderbook"
	"github.com/clearbid/driver-backend/internal/settlement"
	"github.com/clearbid/driver-backend/internal/transport"
)

type config struct {
	PostgresDSN        string        `long:"postgres-dsn" env:"DRIVER_POSTGRES_DSN" description:"PostgreSQL DSN"`
	NodeURL            string        `long:"node-url" env:"DRIVER_NODE_URL" description:"EVM node RPC URL" default:"http://127.0.0.1:8545"`
	NodeRPS            int           `long:"node-rps" env:"DRIVER_NODE_RPS" description:"node request rate limit per second" default:"50"`
	PrivateKey         string        `long:"private-key" env:"DRIVER_PRIVATE_KEY" description:"hex-encoded settlement account private key"`
	SettlementContract string        `long:"settlement-contract" env:"DRIVER_SETTLEMENT_CONTRACT" description:"settlement contract address"`
	OrderbookURL       string        `long:"orderbook-url" env:"DRIVER_ORDERBOOK_URL" description:"orderbook service base URL" default:"http://127.0.0.1:8080"`
	Solvers            []string      `long:"solver" env:"DRIVER_SOLVERS" env-delim:"," description:"solver endpoint as name|url, repeatable"`
	APIAddr            string        `long:"api-addr" env:"DRIVER_API_ADDR" description:"address for the read-only API server" default:":8000"`
	MetricsAddr        string        `long:"metrics-addr" env:"DRIVER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	AuctionInterval    time.Duration `long:"auction-interval" env:"DRIVER_AUCTION_INTERVAL" description:"pause between auction cycles" default:"30s"`
	CompetitionTimeout time.Duration `long:"competition-timeout" env:"DRIVER_COMPETITION_TIMEOUT" description:"deadline for solver responses" default:"15s"`
	SettlementBudget   time.Duration `long:"settlement-budget" env:"DRIVER_SETTLEMENT_BUDGET" description:"wall time granted to a settlement before cancellation" default:"150s"`
	ReorgWindow        uint64        `long:"reorg-window" env:"DRIVER_REORG_WINDOW" description:"blocks to re-verify confirmed settlements against" default:"64"`
	GasBumpPercent     int64         `long:"gas-bump-percent" env:"DRIVER_GAS_BUMP_PERCENT" description:"fee increase per escalation" default:"13"`
	EscalationInterval time.Duration `long:"escalation-interval" env:"DRIVER_ESCALATION_INTERVAL" description:"pause between gas escalations" default:"30s"`
	PollInterval       time.Duration `long:"poll-interval" env:"DRIVER_POLL_INTERVAL" description:"receipt poll interval" default:"3s"`
	Confirmations      uint64        `long:"confirmations" env:"DRIVER_CONFIRMATIONS" description:"blocks on top of inclusion before a settlement counts as confirmed" default:"2"`
}

func main() {
	cfg := config{}

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

	if cfg.PostgresDSN == "" {
		logger.Fatal("PostgreSQL DSN is required")
	}
	if cfg.PrivateKey == "" {
		logger.Fatal("settlement private key is required")
	}
	if !common.IsHexAddress(cfg.SettlementContract) {
		logger.Fatal("settlement contract address is required")
	}
	if len(cfg.Solvers) == 0 {
		logger.Fatal("at least one solver endpoint is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("driver failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return fmt.Errorf("parse settlement key: %w", err)
	}

	endpoints, err := competition.ParseEndpoints(cfg.Solvers)
	if err != nil {
		return fmt.Errorf("parse solver endpoints: %w", err)
	}

	node, err := ethereum.Dial(cfg.NodeURL, metrics.NewNodeClient(), cfg.NodeRPS)
	if err != nil {
		return fmt.Errorf("dial node: %w", err)
	}
	defer node.Close()

	chainID, err := node.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}

	ledger, err := postgres.NewRepository(ctx, cfg.PostgresDSN, metrics.NewPostgresRepository())
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}

	engine, err := settlement.NewEngine(
		node,
		ledger,
		metrics.NewSettlement(),
		key,
		chainID,
		common.HexToAddress(cfg.SettlementContract),
		settlement.Config{
			GasBumpPercent:     cfg.GasBumpPercent,
			EscalationInterval: cfg.EscalationInterval,
			PollInterval:       cfg.PollInterval,
			Confirmations:      cfg.Confirmations,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init settlement engine: %w", err)
	}

	svc := coordinator.NewService(
		orderbook.NewClient(cfg.OrderbookURL, metrics.NewOrderbookClient(), logger),
		ledger,
		competition.NewClient(endpoints, metrics.NewSolverClient(), logger),
		engine,
		node,
		metrics.NewCoordinator(),
		coordinator.Config{
			AuctionInterval:    cfg.AuctionInterval,
			CompetitionTimeout: cfg.CompetitionTimeout,
			SettlementBudget:   cfg.SettlementBudget,
			ReorgWindow:        cfg.ReorgWindow,
		},
		logger,
	)

	startAPIServer(ctx, cfg.APIAddr, transport.NewHandler(ledger, logger).Router(), logger)

	logger.Info("starting driver",
		zap.String("chain_id", chainID.String()),
		zap.Int("solvers", len(endpoints)),
	)
	return svc.Run(ctx)
}

func startAPIServer(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(handler),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting api server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown api server", zap.Error(err))
		}
	}()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

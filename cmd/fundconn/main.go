package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundconn/fundconn/internal/app"
	"github.com/fundconn/fundconn/internal/config"
	"github.com/fundconn/fundconn/internal/events"
	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/fundconn/fundconn/internal/loading"
	"github.com/fundconn/fundconn/internal/notify"
	"github.com/fundconn/fundconn/internal/rpc"
	"github.com/fundconn/fundconn/internal/storage/ipfs"
	"github.com/fundconn/fundconn/internal/wallet"
)

const usage = `usage: fundconn <command>

commands:
  projects        list all projects
  project <id>    show one project with funders and content
  watch           follow ledger events until interrupted
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := rpc.NewClient(cfg.Ledger.Endpoint, logger)
	notifier := notify.NewLogNotifier(logger)
	tracker := loading.NewTracker(loading.DefaultDebounce, func(active bool) {
		logger.Debug("loading", "active", active)
	})

	state := wallet.NewStateStore(cfg.State.Path)
	session := wallet.NewSession(nil, rpc.NewNodeProvider(client), state, notifier, tracker, logger)
	facade := ledger.NewFacade(session, notifier, tracker, logger)
	hub := events.NewHub(logger)
	store := ipfs.New(cfg.Storage.API, cfg.Storage.Gateway, logger)

	fundconn := app.NewClient(session, facade, hub, store, func(b wallet.Binding) ledger.Contract {
		return rpc.NewContract(client, cfg.Ledger.ContractAddress, b.Account, logger)
	}, notifier, tracker, logger)

	if err := session.Startup(ctx); err != nil {
		logger.Error("session startup failed", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, fundconn, client, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, fundconn *app.Client, client *rpc.Client, cfg config.Config, logger *slog.Logger, command string, args []string) error {
	switch command {
	case "projects":
		projects, err := fundconn.LoadProjects(ctx)
		if err != nil {
			return err
		}
		return printJSON(projects)

	case "project":
		if len(args) != 1 {
			return fmt.Errorf("usage: fundconn project <id>")
		}
		detail, err := fundconn.LoadProject(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(detail)

	case "watch":
		return runWatch(ctx, fundconn, client, cfg, logger)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runWatch(ctx context.Context, fundconn *app.Client, client *rpc.Client, cfg config.Config, logger *slog.Logger) error {
	interval, err := cfg.EventPollInterval()
	if err != nil {
		return err
	}

	defer fundconn.WatchFunds()()
	defer fundconn.WatchProjects(ctx, func(projects []ledger.Project) {
		logger.Info("project list reloaded", "count", len(projects))
	})()

	logger.Info("watching ledger events", "interval", interval)
	return fundconn.Run(ctx, polledStream{
		contract: rpc.NewContract(client, cfg.Ledger.ContractAddress, nil, logger),
		interval: interval,
	})
}

// polledStream watches the contract at the configured poll interval.
type polledStream struct {
	contract *rpc.Contract
	interval time.Duration
}

func (s polledStream) Watch(ctx context.Context) (<-chan ledger.Event, error) {
	return s.contract.WatchInterval(ctx, s.interval)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

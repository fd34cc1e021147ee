package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/funnel/funnel-core/agent"
	"github.com/nstehr/funnel/funnel-core/config"
	"github.com/nstehr/funnel/funnel-core/ipc"
	"github.com/nstehr/funnel/funnel-core/rules"
)

const banner = `
 ___ _   _ _ __  _ __   ___| |
| __| | | | '_ \| '_ \ / _ \ |
| _|| |_| | | | | | | |  __/ |
|_|  \__,_|_| |_|_| |_|\___|_|

Funnel-Point Tower Defense Sidecar`

func main() {
	strategyPath := flag.String("config", "", "strategy YAML file (defaults built in)")
	socketPath := flag.String("socket", "/tmp/funnel.sock", "unix socket to listen on (empty to disable)")
	wsAddr := flag.String("ws", "", "websocket listen address, e.g. :8765 (empty to disable)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	strategy := config.Default()
	if *strategyPath != "" {
		s, err := config.Load(*strategyPath)
		if err != nil {
			slog.Error("failed to load strategy", "path", *strategyPath, "error", err)
			os.Exit(1)
		}
		strategy = s
	}
	// Compile once up front so a bad rule fails at startup, not on first connect.
	if _, err := rules.NewEngine(strategy); err != nil {
		slog.Error("invalid strategy", "error", err)
		os.Exit(1)
	}

	slog.Info("starting funnel",
		"narrowRadius", strategy.NarrowRadius,
		"wideRadius", strategy.WideRadius,
		"funnelTarget", strategy.FunnelTarget,
		"rules", len(strategy.Rules),
	)

	if *socketPath == "" && *wsAddr == "" {
		slog.Error("nothing to listen on: set -socket or -ws")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serve := func(t ipc.Transport) { handleConn(t, strategy) }

	if *socketPath != "" {
		listener, err := listenUnix(*socketPath)
		if err != nil {
			slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
			os.Exit(1)
		}
		defer listener.Close()
		defer os.Remove(*socketPath)
		slog.Info("listening on domain socket", "path", *socketPath)
		go acceptLoop(ctx, listener, serve)
	}

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", ipc.WebsocketHandler(serve))
		srv := &http.Server{Addr: *wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("listening for websocket hosts", "addr", *wsAddr, "path", "/ws")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket server failed", "error", err)
				stop()
			}
		}()
		defer func() {
			if err := shutdownServer(srv, 5*time.Second); err != nil {
				slog.Warn("websocket server did not stop cleanly", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")
}

// shutdownServer stops srv, giving in-flight requests up to timeout.
func shutdownServer(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s: %w", srv.Addr, err)
	}
	return nil
}

func listenUnix(path string) (net.Listener, error) {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clean up socket: %w", err)
	}
	return net.Listen("unix", path)
}

func acceptLoop(ctx context.Context, listener net.Listener, serve func(ipc.Transport)) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go serve(ipc.NewStreamTransport(conn))
	}
}

// handleConn gives each host connection its own engine; match memory is
// never shared between connections.
func handleConn(t ipc.Transport, strategy config.Strategy) {
	engine, err := rules.NewEngine(strategy)
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		t.Close()
		return
	}
	c := ipc.NewConnection(t, nil)
	agent.New(c, engine).Register()
	c.ReadLoop()
}

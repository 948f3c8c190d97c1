// Package main provides the terminal game client.
// It logs one character in through a protocol gateway and drives the session from
// console commands and Lua scripts.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/otsession/internal/account"
	"github.com/cory-johannsen/otsession/internal/config"
	"github.com/cory-johannsen/otsession/internal/frontend/console"
	"github.com/cory-johannsen/otsession/internal/game/loop"
	"github.com/cory-johannsen/otsession/internal/game/session"
	"github.com/cory-johannsen/otsession/internal/observability"
	"github.com/cory-johannsen/otsession/internal/scripting"
	"github.com/cory-johannsen/otsession/internal/server"
	"github.com/cory-johannsen/otsession/internal/transport/grpcbridge"
	"github.com/cory-johannsen/otsession/internal/transport/wsbridge"
)

// logoutTimeout bounds how long shutdown waits for the loop to send the logout.
const logoutTimeout = 2 * time.Second

// scriptSink forwards notifications to the Lua hooks. The session is built before
// the script manager, so the target is filled in afterwards.
type scriptSink struct {
	session.EventSink
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	color := flag.Bool("color", true, "colorize console output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	characters, err := account.Load(cfg.Game.CharactersFile)
	if err != nil {
		logger.Fatal("loading character list", zap.Error(err))
	}
	character, err := characters.Select(cfg.Game.Character)
	if err != nil {
		logger.Fatal("selecting character", zap.Error(err))
	}

	logger.Info("starting client",
		zap.String("character", character.Name),
		zap.String("world", character.World),
		zap.String("transport", cfg.Bridge.Transport),
		zap.Int("protocol_version", cfg.Game.ProtocolVersion),
	)

	// Build the session
	dispatcher := loop.NewDispatcher(0, logger)
	tracker := session.NewCallTracker()
	out := console.NewOutput(os.Stdout, *color)
	renderer := console.NewRenderer(out)
	scripts := &scriptSink{EventSink: session.NopSink{}}

	game := session.New(logger, session.MultiSink{renderer, scripts}, dispatcher, newDialer(cfg.Bridge, logger))
	renderer.SetCreatures(game.Creatures())
	if err := game.SetProtocolVersion(cfg.Game.ProtocolVersion); err != nil {
		logger.Fatal("setting protocol version", zap.Error(err))
	}
	if cfg.Game.BotProtection {
		game.EnableBotProtection(tracker)
	}

	// Load scripts
	manager := scripting.NewManager(game, tracker, cfg.Scripting.InstructionLimit, logger)
	defer manager.Close()
	if err := manager.LoadDir(cfg.Scripting.Dir); err != nil {
		logger.Fatal("loading scripts", zap.Error(err))
	}
	scripts.EventSink = scripting.NewSink(manager)

	cons := console.New(game, dispatcher, tracker, out, logger)

	dispatcher.Post(func() {
		if err := game.Login(cfg.Account.Name, cfg.Account.Password, character.Endpoint(), character.Name); err != nil {
			logger.Error("login", zap.Error(err))
		}
	})

	// Wire lifecycle
	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("loop", &server.FuncService{
		StartFn: func() error {
			if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, loop.ErrStopped) {
				return err
			}
			return nil
		},
		StopFn: dispatcher.Stop,
	})

	consoleCtx, stopConsole := context.WithCancel(ctx)
	lifecycle.Add("console", &server.FuncService{
		StartFn: func() error {
			err := cons.Run(consoleCtx, os.Stdin)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
		StopFn: stopConsole,
	})

	lifecycle.OnShutdown(func() {
		done := make(chan struct{})
		if !dispatcher.Post(func() {
			defer close(done)
			game.ForceLogout()
		}) {
			return
		}
		select {
		case <-done:
		case <-time.After(logoutTimeout):
			logger.Warn("logout did not complete before shutdown")
		}
	})

	logger.Info("client initialized", zap.Duration("startup", time.Since(start)))

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("client error", zap.Error(err))
	}
}

// newDialer returns the gateway dialer selected by cfg.Transport.
func newDialer(cfg config.BridgeConfig, logger *zap.Logger) session.Dialer {
	if cfg.Transport == "websocket" {
		return wsbridge.NewDialer(cfg.URL(), cfg.DialTimeout, logger)
	}
	return grpcbridge.NewDialer(cfg.Addr(), cfg.DialTimeout, logger)
}

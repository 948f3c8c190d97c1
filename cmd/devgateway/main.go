// Package main provides a development protocol gateway.
// It speaks the gRPC session bridge and answers the client from a small scripted
// world, so the client can be exercised without a game server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/otsession/internal/config"
	"github.com/cory-johannsen/otsession/internal/observability"
	"github.com/cory-johannsen/otsession/internal/server"
	"github.com/cory-johannsen/otsession/internal/transport/grpcbridge"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	latency := flag.Duration("latency", 20*time.Millisecond, "round trip reported for pings")
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

	if cfg.Bridge.Transport != "grpc" {
		logger.Fatal("devgateway only serves the grpc bridge", zap.String("transport", cfg.Bridge.Transport))
	}

	grpcServer := grpc.NewServer()
	grpcbridge.RegisterGatewayServer(grpcServer, newGateway(logger, int(latency.Milliseconds())))

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("grpc", &server.FuncService{
		StartFn: func() error {
			lis, err := net.Listen("tcp", cfg.Bridge.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Bridge.Addr(), err)
			}
			logger.Info("gateway listening", zap.String("addr", lis.Addr().String()))
			return grpcServer.Serve(lis)
		},
		StopFn: func() {
			grpcServer.GracefulStop()
		},
	})

	logger.Info("devgateway initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("grpc_addr", cfg.Bridge.Addr()),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

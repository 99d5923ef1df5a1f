package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/Flamage82/WowTalentComparer/internal/bootstrap"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/branch"
	"github.com/Flamage82/WowTalentComparer/internal/repository"
	talentuc "github.com/Flamage82/WowTalentComparer/internal/usecase/talent"
	"github.com/Flamage82/WowTalentComparer/microservices/rpc"
	"github.com/Flamage82/WowTalentComparer/microservices/usecase"
)

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		bootstrap.NewLogger("info").Errorw("Failed to setup configuration", "error", err)
		return
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatalw("cannot listen", "port", cfg.GrpcPort, "error", err)
	}

	// Parse and Diff never touch topology data; the file store is only
	// there to satisfy the use case.
	store := repository.NewFileTopologyStore(cfg.TopologyDir, logger)
	policy := branch.Policy{MinSize: cfg.BranchMinSize, MaxSize: cfg.BranchMaxSize}
	talentUC := talentuc.NewTalentUseCase(logger, store, talentuc.NewPartitionCache(logger, policy, nil, nil))

	server := grpc.NewServer()
	rpc.RegisterTalentServiceServer(server, usecase.NewTalentRPC(logger, talentUC))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("talent rpc listening on %s", lis.Addr())
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("grpc serve failed", "error", err)
	}
}

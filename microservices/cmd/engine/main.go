package main

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"mnk_engine/internal/bootstrap"
	engineUC "mnk_engine/internal/usecase/engine"
	enginepb "mnk_engine/microservices/proto"
	"mnk_engine/microservices/usecase"
)

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		logger.Fatal("cant listen port", zap.Error(err))
	}

	server := grpc.NewServer()
	engine := engineUC.NewEngineUseCase(cfg.AI(), logger)
	enginepb.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(engine, logger))
	logger.Infof("starting engine server at :%s", cfg.GrpcPort)
	if err := server.Serve(lis); err != nil {
		logger.Fatal("engine server stopped", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}

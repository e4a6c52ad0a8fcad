package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"mnk_engine/internal/bootstrap"
	engineDelivery "mnk_engine/internal/delivery/engine"
	ownMiddleware "mnk_engine/internal/middleware"
	engineUC "mnk_engine/internal/usecase/engine"
	enginepb "mnk_engine/microservices/proto"
)

type mainDeliveryHandler struct {
	engine *engineDelivery.EngineHandler
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	analyzer, closeAnalyzer, err := initAnalyzer(*cfg, logger)
	if err != nil {
		logger.Fatal("Failed to dial grpc", zap.Error(err))
	}
	defer closeAnalyzer()

	r := chi.NewRouter()
	handlers := &mainDeliveryHandler{
		engine: engineDelivery.NewEngineHandler(logger, analyzer),
	}
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Get("/health", h.engine.HandleHealth)
	r.Get("/engines", h.engine.HandleEngines)
	r.Post("/analyze", h.engine.HandleAnalyze)
	r.Get("/analyze/ws", h.engine.HandleAnalyzeStream)
}

// initAnalyzer searches in process unless ENGINE_GRPC_ADDR points at the
// engine microservice.
func initAnalyzer(cfg bootstrap.Config, log *zap.SugaredLogger) (engineDelivery.Analyzer, func(), error) {
	if cfg.EngineGrpcAddr == "" {
		log.Info("Using in-process engine")
		return engineUC.NewEngineUseCase(cfg.AI(), log), func() {}, nil
	}

	conn, err := grpc.NewClient(cfg.EngineGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	log.Infof("Using engine service at %s", cfg.EngineGrpcAddr)
	return engineUC.NewRemoteEngine(enginepb.NewEngineServiceClient(conn), log), func() { _ = conn.Close() }, nil
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}

package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"mnk_engine/internal/domain/game"
	enginepb "mnk_engine/microservices/proto"
)

type Analyzer interface {
	Analyze(ctx context.Context, req game.AnalyzeRequest, onDepth func(game.DepthReport)) (game.AnalyzeResponse, error)
	Engines(ctx context.Context) (game.EnginesResponse, error)
}

type EngineUseCase struct {
	engine Analyzer
	log    *zap.SugaredLogger
	enginepb.UnimplementedEngineServiceServer
}

func NewEngineUseCase(engine Analyzer, log *zap.SugaredLogger) *EngineUseCase {
	return &EngineUseCase{
		engine: engine,
		log:    log,
	}
}

func (e *EngineUseCase) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// Struct -> доменный запрос
	var req game.AnalyzeRequest
	if err := enginepb.FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := e.engine.Analyze(ctx, req, nil)
	if err != nil {
		return nil, enginepb.StatusFromError(err)
	}

	out, err := enginepb.ToStruct(resp)
	if err != nil {
		e.log.Errorw("failed to encode analysis", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (e *EngineUseCase) Engines(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp, err := e.engine.Engines(ctx)
	if err != nil {
		return nil, enginepb.StatusFromError(err)
	}
	out, err := enginepb.ToStruct(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

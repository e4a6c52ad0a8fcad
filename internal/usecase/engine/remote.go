package engine

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"

	"mnk_engine/internal/domain/game"
	enginepb "mnk_engine/microservices/proto"
)

// RemoteEngine forwards analysis to the engine microservice. Depth reports
// arrive with the final answer and are replayed to onDepth afterwards.
type RemoteEngine struct {
	client enginepb.EngineServiceClient
	log    *zap.SugaredLogger
}

func NewRemoteEngine(client enginepb.EngineServiceClient, log *zap.SugaredLogger) *RemoteEngine {
	return &RemoteEngine{
		client: client,
		log:    log,
	}
}

func (r *RemoteEngine) Analyze(ctx context.Context, req game.AnalyzeRequest, onDepth func(game.DepthReport)) (game.AnalyzeResponse, error) {
	in, err := enginepb.ToStruct(req)
	if err != nil {
		return game.AnalyzeResponse{}, err
	}
	out, err := r.client.Analyze(ctx, in)
	if err != nil {
		r.log.Errorw("engine service call failed", "error", err)
		return game.AnalyzeResponse{}, enginepb.ErrorFromStatus(err)
	}

	var resp game.AnalyzeResponse
	if err := enginepb.FromStruct(out, &resp); err != nil {
		return game.AnalyzeResponse{}, err
	}
	if onDepth != nil {
		for _, report := range resp.Reports {
			onDepth(report)
		}
	}
	return resp, nil
}

func (r *RemoteEngine) Engines(ctx context.Context) (game.EnginesResponse, error) {
	out, err := r.client.Engines(ctx, &emptypb.Empty{})
	if err != nil {
		return game.EnginesResponse{}, enginepb.ErrorFromStatus(err)
	}
	var resp game.EnginesResponse
	if err := enginepb.FromStruct(out, &resp); err != nil {
		return game.EnginesResponse{}, err
	}
	return resp, nil
}

package engine

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mnk_engine/internal/domain/game"
	errs "mnk_engine/internal/errors"
	"mnk_engine/internal/httpresponse"
	"mnk_engine/internal/utils"
)

type Analyzer interface {
	Analyze(ctx context.Context, req game.AnalyzeRequest, onDepth func(game.DepthReport)) (game.AnalyzeResponse, error)
	Engines(ctx context.Context) (game.EnginesResponse, error)
}

type EngineHandler struct {
	log    *zap.SugaredLogger
	engine Analyzer
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewEngineHandler(log *zap.SugaredLogger, engine Analyzer) *EngineHandler {
	return &EngineHandler{
		log:    log,
		engine: engine,
	}
}

func (h *EngineHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *EngineHandler) HandleEngines(w http.ResponseWriter, r *http.Request) {
	resp, err := h.engine.Engines(r.Context())
	if err != nil {
		h.log.Errorw("failed to list engines", "error", err)
		httpresponse.WriteErrorResponse(w, statusFor(err), err.Error())
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *EngineHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req game.AnalyzeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorw("bad analyze request", "error", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}

	resp, err := h.engine.Analyze(r.Context(), req, nil)
	if err != nil {
		h.log.Errorw("analysis failed", "error", err)
		httpresponse.WriteErrorResponse(w, statusFor(err), err.Error())
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleAnalyzeStream reads one AnalyzeRequest from the websocket, sends a
// "depth" message per completed iteration and finishes with "result" or
// "error". Closing the socket cancels the analysis.
func (h *EngineHandler) HandleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	_, raw, err := conn.ReadMessage()
	if err != nil {
		h.log.Errorw("failed to read analyze request", "error", err)
		return
	}
	var req game.AnalyzeRequest
	if err := utils.DecodeJSON(raw, &req); err != nil {
		h.writeStream(conn, "error", httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	// the request context outlives the hijacked connection, so a failed read
	// is what tells us the client went away
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	resp, err := h.engine.Analyze(ctx, req, func(report game.DepthReport) {
		h.writeStream(conn, "depth", report)
	})
	if err != nil {
		h.writeStream(conn, "error", httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	h.writeStream(conn, "result", resp)
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}

func (h *EngineHandler) writeStream(conn *websocket.Conn, kind string, data any) {
	if err := conn.WriteJSON(game.StreamMessage{Type: kind, Data: data}); err != nil {
		h.log.Errorw("websocket write failed", "type", kind, "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrConfiguration), errors.Is(err, errs.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNoLegalMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Package server exposes the validation engine over HTTP.
package server

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/mkellner/wohnval/internal/calculation"
	"github.com/mkellner/wohnval/internal/report"
)

// Server wires the validation engine into a fasthttp handler.
type Server struct {
	Engine *calculation.ValidationEngine
	Logger *zap.Logger
}

// New creates a server around an engine.
func New(engine *calculation.ValidationEngine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Engine: engine, Logger: logger}
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.Logger.Info("http server starting", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.Handler())
}

// Handler returns the request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/healthz":
			s.handleHealth(ctx)
		case "/api/v1/validate":
			s.handleValidate(ctx)
		default:
			s.writeError(ctx, fasthttp.StatusNotFound, "not found")
		}
	}
}

// validateRequest is the body of POST /api/v1/validate.
type validateRequest struct {
	SubjectID string `json:"subject_id"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"status":"ok"}`)
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req validateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SubjectID == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "subject_id is required")
		return
	}

	res, err := s.Engine.Run(context.Background(), req.SubjectID)
	if err != nil {
		s.Logger.Error("validation run failed",
			zap.String("subject_id", req.SubjectID),
			zap.Error(err))
		s.writeError(ctx, fasthttp.StatusInternalServerError, "validation failed")
		return
	}

	rep := report.Build(res)
	s.Logger.Info("validation run complete",
		zap.String("subject_id", req.SubjectID),
		zap.String("run_id", rep.RunID),
		zap.Int("errors", rep.ErrorCount()),
		zap.Int("warnings", rep.WarningCount()))

	body, err := json.Marshal(rep)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "encoding report failed")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}

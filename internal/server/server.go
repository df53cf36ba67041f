// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes citation validation and answer assembly over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/juridico-rag/internal/agent"
	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/pkg/types"
)

const defaultMaxBodyBytes = 1 << 20

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	Answer  string   `json:"resposta"`
	Sources []string `json:"fontes"`
}

// ValidateResponse lists unverifiable citations. Unlike types.Response the
// list is always present here, empty when every citation is verified.
type ValidateResponse struct {
	Alerts   []string `json:"alertas"`
	Verified []string `json:"verificadas"`
}

// AnswerRequest is the body of POST /v1/answer.
type AnswerRequest struct {
	Query   string   `json:"consulta" binding:"required"`
	Sources []string `json:"fontes"`
}

// Handler holds the shared, immutable collaborators of the HTTP routes.
type Handler struct {
	verifier *citation.Verifier
	agent    *agent.Agent
	logger   *zap.Logger
}

// NewHandler creates a handler. A nil logger disables logging.
func NewHandler(v *citation.Verifier, a *agent.Agent, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{verifier: v, agent: a, logger: logger}
}

// Router builds the gin engine for h.
func Router(h *Handler, maxBodyBytes int64) *gin.Engine {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger), limitBody(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.POST("/validate", h.Validate)
	v1.POST("/answer", h.Answer)
	return r
}

// Validate handles POST /v1/validate.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res := h.verifier.Check(req.Answer, req.Sources)
	out := ValidateResponse{Alerts: res.Unverified, Verified: res.Verified}
	if out.Alerts == nil {
		out.Alerts = []string{}
	}
	if out.Verified == nil {
		out.Verified = []string{}
	}
	c.JSON(http.StatusOK, out)
}

// Answer handles POST /v1/answer.
func (h *Handler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp := h.agent.GenerateResponse(c.Request.Context(), req.Query, req.Sources)
	if resp.HasAlerts() {
		h.logger.Info("unverifiable citations",
			zap.String("consulta", resp.Query),
			zap.Strings("alertas", resp.Alerts),
		)
	}
	c.JSON(http.StatusOK, resp)
}

// badRequest reports a bind failure: 413 when the body exceeded the limit,
// 400 otherwise.
func badRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": gin.H{
				"code":    "REQUEST_TOO_LARGE",
				"message": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "INVALID_REQUEST",
			"message": err.Error(),
		},
	})
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Serve runs the HTTP service on cfg.Addr until ctx is cancelled, then
// shuts down gracefully.
func Serve(ctx context.Context, cfg types.ServerConfig, h *Handler) error {
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      Router(h, cfg.MaxBodyBytes),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	h.logger.Info("HTTP server stopped")
	return nil
}

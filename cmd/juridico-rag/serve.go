// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/juridico-rag/internal/agent"
	"github.com/pdiddy/juridico-rag/internal/audit"
	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve citation validation and answer assembly over HTTP",
	Long: `Serve starts an HTTP service with POST /v1/validate, POST /v1/answer and
GET /health. With --record every assembled answer is written to the audit log.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("record") {
		cfg.Agent.Record, _ = cmd.Flags().GetBool("record")
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	verifier := citation.NewVerifier(nil)
	if err := agent.CheckTemplate(cfg.Agent.AnswerTemplate); err != nil {
		return err
	}
	opts := []agent.Option{
		agent.WithVerifier(verifier),
		agent.WithTemplate(cfg.Agent.AnswerTemplate),
		agent.WithLogger(logger),
	}
	if cfg.Agent.Record {
		store, err := audit.NewStore(cfg.Audit, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, agent.WithRecorder(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := server.NewHandler(verifier, agent.New(opts...), logger)
	return server.Serve(ctx, cfg.Server, h)
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("record", false, "write assembled answers to the audit log")

	rootCmd.AddCommand(serveCmd)
}

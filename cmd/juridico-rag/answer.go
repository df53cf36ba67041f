// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juridico-rag/internal/agent"
	"github.com/pdiddy/juridico-rag/internal/audit"
)

var answerCmd = &cobra.Command{
	Use:   "answer [query]",
	Short: "Assemble a response record for a legal query",
	Long: `Answer builds the response record {consulta, resposta, fontes, alertas}
for a query and its sources. The answer text comes from the configured
template; alertas appears only when the answer cites something outside the
sources. With --record the record is also written to the audit log.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnswer,
}

func runAnswer(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := loadConfig()
	if cmd.Flags().Changed("template") {
		cfg.Agent.AnswerTemplate, _ = cmd.Flags().GetString("template")
	}
	if cmd.Flags().Changed("record") {
		cfg.Agent.Record, _ = cmd.Flags().GetBool("record")
	}

	srcs, err := sourcesFromFlags(cmd)
	if err != nil {
		return err
	}

	if err := agent.CheckTemplate(cfg.Agent.AnswerTemplate); err != nil {
		return err
	}
	opts := []agent.Option{
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

	resp := agent.New(opts...).GenerateResponse(context.Background(), strings.Join(args, " "), srcs)
	return writeRecord(cmd.OutOrStdout(), resp, format)
}

func writeRecord(w io.Writer, v any, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

var _ agent.Recorder = (*audit.Store)(nil)

func init() {
	addSourceFlags(answerCmd)
	answerCmd.Flags().String("format", "json", "output format: json or yaml")
	answerCmd.Flags().Bool("record", false, "write the response to the audit log")
	answerCmd.Flags().String("template", "", "answer template with one %s for the query")

	rootCmd.AddCommand(answerCmd)
}

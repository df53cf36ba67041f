// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the juridico-rag CLI. It validates the
// citations of generated legal answers against their sources, assembles
// answer records, reviews answer directories, and serves the same operations
// over HTTP.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/juridico-rag/internal/logging"
	"github.com/pdiddy/juridico-rag/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the juridico-rag CLI.
var rootCmd = &cobra.Command{
	Use:   "juridico-rag",
	Short: "Citation verification for generated legal answers",
	Long: `juridico-rag checks that every bracketed citation in a generated legal
answer, such as [Lei 8.078/1990] or [Art. 5, CF/88], names one of the sources
supplied for that answer. Citations are compared case-insensitively after
trimming whitespace; unmatched citations are reported as alerts.

Use validate for a single answer, review for a directory of drafted answers,
answer to assemble a response record, and serve to expose the same checks
over HTTP.

The audit log (answer --record, serve --record, audit) needs SQLite FTS5:
build with "mage build" or "go build -tags sqlite_fts5".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(loadConfig().Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./juridico-rag.yaml or ~/.config/juridico-rag/juridico-rag.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("agent.answer_template", "")
	viper.SetDefault("agent.record", false)
	viper.SetDefault("audit.dir", "audit")
	viper.SetDefault("audit.max_results", 20)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.max_body_bytes", 1<<20)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("juridico-rag")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "juridico-rag"))
		}
	}

	viper.SetEnvPrefix("JURIDICO_RAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the typed configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Agent: types.AgentConfig{
			AnswerTemplate: viper.GetString("agent.answer_template"),
			Record:         viper.GetBool("agent.record"),
		},
		Audit: types.AuditConfig{
			Dir:        viper.GetString("audit.dir"),
			MaxResults: viper.GetInt("audit.max_results"),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			MaxBodyBytes: viper.GetInt64("server.max_body_bytes"),
		},
		Log: types.LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

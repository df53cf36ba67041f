// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/juridico-rag/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit log of assembled answers (list, search, show, export)",
	Long: `Audit reads the SQLite log written by "answer --record" and "serve --record".
Use subcommands to list recent records, search them by text, show one record,
or export the log to YAML or JSON.`,
}

// --- list subcommand ---

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit records, newest first",
	RunE:  runAuditList,
}

func runAuditList(cmd *cobra.Command, args []string) error {
	return listRecords(cmd, listOptsFromFlags(cmd, ""))
}

// --- search subcommand ---

var auditSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over audited queries and answers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAuditSearch,
}

func runAuditSearch(cmd *cobra.Command, args []string) error {
	return listRecords(cmd, listOptsFromFlags(cmd, strings.Join(args, " ")))
}

func listRecords(cmd *cobra.Command, opts audit.ListOptions) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := audit.NewStore(loadConfig().Audit, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		if records == nil {
			records = []audit.Record{}
		}
		return writeRecord(cmd.OutOrStdout(), records, "json")
	}
	formatAuditTable(cmd.OutOrStdout(), records)
	return nil
}

func formatAuditTable(w io.Writer, records []audit.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-40s  %s\n", "ID", "Created", "Query", "Alerts")
	fmt.Fprintln(w, strings.Repeat("-", 108))
	for _, r := range records {
		query := truncate(r.Query, 40)
		fmt.Fprintf(w, "%-36s  %-20s  %-40s  %d\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), query, len(r.Alerts))
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- show subcommand ---

var auditShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one audit record",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditShow,
}

func runAuditShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := audit.NewStore(loadConfig().Audit, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return writeRecord(cmd.OutOrStdout(), rec, format)
}

// --- export subcommand ---

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the audit log to YAML or JSON",
	RunE:  runAuditExport,
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := audit.NewStore(loadConfig().Audit, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, "")
	ctx := context.Background()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(ctx, opts)
	case "json":
		path, err = store.ExportJSON(ctx, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command, query string) audit.ListOptions {
	onlyAlerts, _ := cmd.Flags().GetBool("alerts")
	limit, _ := cmd.Flags().GetInt("limit")
	return audit.ListOptions{
		Query:      query,
		OnlyAlerts: onlyAlerts,
		MaxResults: limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{auditListCmd, auditSearchCmd, auditExportCmd} {
		c.Flags().Bool("alerts", false, "only records with unverifiable citations")
		c.Flags().Int("limit", 0, "maximum records (0 = use default)")
	}
	auditListCmd.Flags().Bool("json", false, "output records as JSON")
	auditSearchCmd.Flags().Bool("json", false, "output records as JSON")
	auditShowCmd.Flags().String("format", "yaml", "output format: yaml or json")
	auditExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	auditCmd.PersistentFlags().String("audit-dir", "", "directory holding audit.db (default from config: audit)")
	_ = viper.BindPFlag("audit.dir", auditCmd.PersistentFlags().Lookup("audit-dir"))

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditSearchCmd)
	auditCmd.AddCommand(auditShowCmd)
	auditCmd.AddCommand(auditExportCmd)

	rootCmd.AddCommand(auditCmd)
}

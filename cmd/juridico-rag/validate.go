// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/internal/sources"
)

// errUnverified is returned under --strict when alerts were reported.
var errUnverified = errors.New("unverifiable citations found")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report citations in an answer that match no source",
	Long: `Validate reads an answer (from --answer or stdin) and prints every bracketed
citation that does not match one of the supplied sources. Sources come from
repeated --source flags and/or --sources-file (sources.yaml catalogue or one
identifier per line). Each distinct citation is reported once.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	answerPath, _ := cmd.Flags().GetString("answer")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")
	verbose, _ := cmd.Flags().GetBool("verbose")

	answer, err := readAnswer(cmd.InOrStdin(), answerPath)
	if err != nil {
		return err
	}
	srcs, err := sourcesFromFlags(cmd)
	if err != nil {
		return err
	}

	res := citation.NewVerifier(nil).Check(answer, srcs)
	if err := formatValidateOutput(cmd.OutOrStdout(), res, jsonOutput, verbose); err != nil {
		return err
	}
	if strict && len(res.Unverified) > 0 {
		return errUnverified
	}
	return nil
}

func formatValidateOutput(w io.Writer, res citation.Result, jsonOutput, verbose bool) error {
	if jsonOutput {
		out := struct {
			Alerts   []string `json:"alertas"`
			Verified []string `json:"verificadas,omitempty"`
		}{Alerts: res.Unverified}
		if out.Alerts == nil {
			out.Alerts = []string{}
		}
		if verbose {
			out.Verified = res.Verified
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if verbose {
		for _, c := range res.Verified {
			fmt.Fprintf(w, "ok      %s\n", c)
		}
	}
	for _, c := range res.Unverified {
		fmt.Fprintf(w, "missing %s\n", c)
	}
	if len(res.Unverified) == 0 {
		fmt.Fprintln(w, "All citations verified.")
		return nil
	}
	fmt.Fprintf(w, "\n%d unverifiable citation(s)\n", len(res.Unverified))
	return nil
}

// readAnswer returns the answer text from path, or from stdin when path is
// empty or "-".
func readAnswer(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading answer from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return string(data), nil
}

// sourcesFromFlags collects --source values followed by --sources-file
// entries.
func sourcesFromFlags(cmd *cobra.Command) ([]string, error) {
	srcs, _ := cmd.Flags().GetStringArray("source")
	file, _ := cmd.Flags().GetString("sources-file")
	if file == "" {
		return srcs, nil
	}
	fromFile, err := sources.Load(file)
	if err != nil {
		return nil, err
	}
	return append(srcs, fromFile...), nil
}

// addSourceFlags registers the flags read by sourcesFromFlags. --source is a
// string array so identifiers may contain commas.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("source", nil, "source identifier (repeatable)")
	cmd.Flags().String("sources-file", "", "sources catalogue (.yaml) or list file (one identifier per line)")
}

func addValidateFlags(cmd *cobra.Command) {
	addSourceFlags(cmd)
	cmd.Flags().String("answer", "-", "answer file to validate (- for stdin)")
	cmd.Flags().Bool("json", false, "output alerts as JSON")
	cmd.Flags().Bool("strict", false, "exit non-zero when any citation is unverifiable")
	cmd.Flags().Bool("verbose", false, "also list verified citations")
}

func init() {
	addValidateFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

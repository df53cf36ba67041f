// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/juridico-rag/internal/citation"
	"github.com/pdiddy/juridico-rag/internal/review"
	"github.com/pdiddy/juridico-rag/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review [dir]",
	Short: "Validate every drafted answer in a review directory",
	Long: `Review checks the numbered answer files (NN-slug.md) of a directory against
the sources.yaml catalogue stored beside them and prints the unverifiable
citations of each file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	report, err := review.Run(args[0], citation.NewVerifier(nil))
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := writeRecord(cmd.OutOrStdout(), report, "json"); err != nil {
			return err
		}
	} else {
		formatReviewOutput(cmd.OutOrStdout(), report)
	}

	if strict && report.Alerts != nil {
		return errUnverified
	}
	return nil
}

func formatReviewOutput(w io.Writer, report *types.ReviewReport) {
	if len(report.Files) == 0 {
		fmt.Fprintln(w, "No answer files found.")
		return
	}
	for _, f := range report.Files {
		if f.Alerts == nil {
			fmt.Fprintf(w, "ok      %s\n", f.File)
			continue
		}
		fmt.Fprintf(w, "alerts  %s\n", f.File)
		for _, a := range f.Alerts {
			fmt.Fprintf(w, "        - %s\n", a)
		}
	}
	fmt.Fprintf(w, "\n%d file(s), %d distinct unverifiable citation(s)\n",
		len(report.Files), len(report.Alerts))
}

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output the report as JSON")
	cmd.Flags().Bool("strict", false, "exit non-zero when any citation is unverifiable")
}

func init() {
	addReviewFlags(reviewCmd)
	rootCmd.AddCommand(reviewCmd)
}

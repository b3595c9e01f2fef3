package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/aeo-snapshot/aeo-cli/internal/store"
)

var (
	analysesBrand string
	analysesLimit int
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List stored analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		analyses, err := st.ListAnalyses(ctx, store.AnalysisFilter{
			Brand: analysesBrand,
			Limit: analysesLimit,
		})
		if err != nil {
			return eris.Wrap(err, "list analyses")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analyses), "encode analyses")
	},
}

var analysisGetCmd = &cobra.Command{
	Use:   "analysis <id>",
	Short: "Show one stored analysis by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		analysis, err := st.GetAnalysis(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "get analysis")
		}
		if analysis == nil {
			return eris.Errorf("analysis not found: %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "encode analysis")
	},
}

func init() {
	analysesCmd.Flags().StringVar(&analysesBrand, "brand", "", "filter by brand name")
	analysesCmd.Flags().IntVar(&analysesLimit, "limit", 0, "max results (default 20)")
	rootCmd.AddCommand(analysesCmd)
	rootCmd.AddCommand(analysisGetCmd)
}

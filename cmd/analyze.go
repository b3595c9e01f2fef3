package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aeo-snapshot/aeo-cli/internal/campaign"
	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

var (
	analyzeBrand     string
	analyzeSector    string
	analyzeKeywords  string
	analyzeQuestions []string
	analyzeNoSave    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a visibility campaign for one brand",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		analysis, err := svc.Execute(ctx, campaign.Params{
			Brand: model.Brand{
				Name:     analyzeBrand,
				Sector:   analyzeSector,
				Keywords: analyzeKeywords,
			},
			Questions: analyzeQuestions,
		})
		if err != nil {
			return eris.Wrap(err, "run campaign")
		}

		if !analyzeNoSave {
			if err := st.SaveAnalysis(ctx, analysis); err != nil {
				return eris.Wrap(err, "save analysis")
			}
			zap.L().Info("analysis saved", zap.String("id", analysis.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "encode analysis")
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBrand, "brand", "", "brand or domain to analyze (required)")
	analyzeCmd.Flags().StringVar(&analyzeSector, "sector", "", "market sector (required)")
	analyzeCmd.Flags().StringVar(&analyzeKeywords, "keywords", "", "comma-separated keywords")
	analyzeCmd.Flags().StringSliceVar(&analyzeQuestions, "question", nil, "custom question (repeatable, skips generation)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "skip persisting the analysis")
	analyzeCmd.MarkFlagRequired("brand")  //nolint:errcheck
	analyzeCmd.MarkFlagRequired("sector") //nolint:errcheck
	rootCmd.AddCommand(analyzeCmd)
}

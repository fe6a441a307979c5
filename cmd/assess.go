package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-cli/internal/assessment"
	"github.com/sells-group/compliance-cli/internal/determination"
	"github.com/sells-group/compliance-cli/internal/model"
)

var (
	assessAnswersPath  string
	assessCategory     string
	assessJurisdiction string
	assessSave         bool
	assessJSON         bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a risk assessment from a questionnaire answers file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("assess"); err != nil {
			return err
		}

		in, err := readInputFile(assessAnswersPath)
		if err != nil {
			return err
		}
		if assessCategory != "" {
			in.Category = model.ClientCategory(assessCategory)
		}
		if err := in.validate(); err != nil {
			return err
		}

		engine := assessment.New(newLoader())
		result, err := engine.Run(in.Category, in.Answers)
		if err != nil {
			return eris.Wrap(err, "assess")
		}

		if assessSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}

			rec, err := st.SaveAssessment(ctx, result)
			if err != nil {
				return eris.Wrap(err, "save assessment")
			}
			zap.L().Info("assessment saved", zap.String("id", rec.ID))
			fmt.Fprintf(os.Stderr, "Saved assessment %s\n", rec.ID)
		}

		if assessJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		jurisdiction := assessJurisdiction
		if jurisdiction == "" {
			jurisdiction = cfg.Assess.Jurisdiction
		}
		doc := determination.Render(result, determination.Options{Jurisdiction: jurisdiction})
		fmt.Print(doc.Text)
		return nil
	},
}

func init() {
	assessCmd.Flags().StringVar(&assessAnswersPath, "answers", "", "path to questionnaire answers JSON (required)")
	assessCmd.Flags().StringVar(&assessCategory, "category", "", "client category (individual, corporate); overrides the answers file")
	assessCmd.Flags().StringVar(&assessJurisdiction, "jurisdiction", "", "jurisdiction code for the determination header (default from config)")
	assessCmd.Flags().BoolVar(&assessSave, "save", false, "persist the assessment snapshot to the store")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "print the snapshot JSON instead of the determination document")
	_ = assessCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(assessCmd)
}

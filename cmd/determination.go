package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-cli/internal/determination"
)

var (
	determinationJurisdiction string
	determinationJSON         bool
)

var determinationCmd = &cobra.Command{
	Use:   "determination <assessment-id>",
	Short: "Re-render the determination document for a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		rec, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "determination")
		}

		jurisdiction := determinationJurisdiction
		if jurisdiction == "" {
			jurisdiction = cfg.Assess.Jurisdiction
		}
		doc := determination.Render(rec.Snapshot, determination.Options{Jurisdiction: jurisdiction})

		if determinationJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		fmt.Print(doc.Text)
		return nil
	},
}

func init() {
	determinationCmd.Flags().StringVar(&determinationJurisdiction, "jurisdiction", "", "jurisdiction code for the document header (default from config)")
	determinationCmd.Flags().BoolVar(&determinationJSON, "json", false, "print the document as structured JSON")
	rootCmd.AddCommand(determinationCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/store"
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Inspect stored assessments",
	Long:  "Commands for listing and viewing persisted assessment snapshots.",
}

// -- assessments list --

var assessmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		tier, _ := cmd.Flags().GetString("tier")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.Filter{
			Category: model.ClientCategory(category),
			Tier:     model.RiskTier(tier),
			Limit:    limit,
		}

		records, err := st.ListAssessments(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "assessments list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No assessments found.")
			return nil
		}

		formatAssessmentsList(os.Stdout, records)
		return nil
	},
}

// -- assessments show --

var assessmentsShowCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show the full snapshot of a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		rec, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "assessments show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	assessmentsListCmd.Flags().String("category", "", "filter by client category (individual, corporate)")
	assessmentsListCmd.Flags().String("tier", "", "filter by risk tier (LOW, MEDIUM, HIGH)")
	assessmentsListCmd.Flags().Int("limit", 50, "max number of assessments to display")

	assessmentsCmd.AddCommand(assessmentsListCmd)
	assessmentsCmd.AddCommand(assessmentsShowCmd)
	rootCmd.AddCommand(assessmentsCmd)
}

// formatAssessmentsList writes a tabular list of assessment records to w.
func formatAssessmentsList(out io.Writer, records []store.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tTIER\tSCORE\tACTIONS\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t--------\t----\t-----\t-------\t-------")

	for _, r := range records {
		actions := 0
		if r.Snapshot != nil {
			actions = len(r.Snapshot.Actions)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			truncateID(r.ID),
			r.Category,
			r.Tier,
			r.Score,
			actions,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

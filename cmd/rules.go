package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/compliance-cli/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the rule documents",
}

// -- rules validate --

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured rule documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := newLoader().Load()
		if err != nil {
			return eris.Wrap(err, "rules validate")
		}
		if err := rules.Validate(cfg); err != nil {
			return err
		}

		fmt.Println("Rule documents are valid.")
		return nil
	},
}

// -- rules show --

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective rule configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := newLoader().Load()
		if err != nil {
			return eris.Wrap(err, "rules show")
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close() //nolint:errcheck
		return enc.Encode(cfg)
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rootCmd.AddCommand(rulesCmd)
}

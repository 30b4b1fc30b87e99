package main

import (
	"encoding/json"
	"fmt"

	"github.com/mikey/snooker/internal/di"
	"github.com/mikey/snooker/pkg/snooker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type rulesReport struct {
	Rules  []string       `json:"rules" yaml:"rules"`
	Config snooker.Config `json:"config" yaml:"config"`
}

func newRulesCmd() *cobra.Command {
	f := &di.CLIFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the rules in evaluation order and the effective rule configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := di.BuildCLIContainer(f, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}

			return container.Invoke(func(e *snooker.Evaluator) error {
				report := rulesReport{Rules: snooker.RuleNames(), Config: e.Config()}
				out := cmd.OutOrStdout()

				if f.Format == "json" {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}

	f.BindFlags(cmd.Flags())

	return cmd
}

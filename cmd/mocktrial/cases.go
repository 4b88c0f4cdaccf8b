package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtcraft/mocktrial/internal/output"
	"github.com/courtcraft/mocktrial/internal/trial"
)

func newCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List the sample case catalog and level tiers",
		RunE:  runCases,
	}
	cmd.Flags().Int64("hint-seed", 0, "Also print one coaching hint per team, from this seed")
	return cmd
}

func runCases(cmd *cobra.Command, args []string) error {
	fmt.Println(output.RenderCases(trial.SampleCases()))
	fmt.Println()
	fmt.Println(output.RenderLevels())

	if seed, _ := cmd.Flags().GetInt64("hint-seed"); seed != 0 {
		hints := trial.NewHintSource(seed)
		for _, team := range trial.Teams() {
			fmt.Printf("%s: %s\n", team, hints.Hint(team))
		}
	}
	return nil
}

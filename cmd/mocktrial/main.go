package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "mocktrial",
		Short: "Classroom mock-trial scoring and verdict engine",
		Long:  "Runs classroom mock trials: two teams argue a case across rounds, speeches are scored on a rubric with points, combos and badges, and an AI judge delivers the verdict.",
	}

	root.PersistentFlags().String("api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	root.PersistentFlags().String("config", "", "Path to a TOML config file")
	root.PersistentFlags().String("model", "", "Chat model for verdict generation")

	root.AddCommand(newServeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newJudgeCmd())
	root.AddCommand(newCasesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

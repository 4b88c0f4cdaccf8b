package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtcraft/mocktrial/internal/output"
	"github.com/courtcraft/mocktrial/internal/trial"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score an argument on the speech rubric",
		Long:  "Reads an argument from a file (or stdin) and shows its rubric score, feedback tags and the points it would earn. Runs fully offline.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScore,
	}
	cmd.Flags().String("team", "prosecutor", "Team the argument belongs to")
	cmd.Flags().Int("combo", 0, "Current combo streak to simulate")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading argument: %w", err)
	}

	teamName, _ := cmd.Flags().GetString("team")
	team, err := trial.ParseTeam(teamName)
	if err != nil {
		return err
	}
	combo, _ := cmd.Flags().GetInt("combo")

	score, feedback := trial.ScoreSpeech(string(data))
	output.PrintScore(score, feedback)

	// Replay the streak on a fresh ledger so the award matches live play.
	ledger := trial.NewLedger()
	ledger.OnCelebrate = output.PrintCelebration
	ledger.State(team).Combo = combo
	award := ledger.Award(team, score)
	output.PrintAward(award)
	output.PrintBadges(ledger.EvaluateBadges(team))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/courtcraft/mocktrial/internal/openai"
	"github.com/courtcraft/mocktrial/internal/output"
	"github.com/courtcraft/mocktrial/internal/trial"
	"github.com/courtcraft/mocktrial/internal/trial/judge"
)

func newJudgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge <snapshot.json>",
		Short: "Request an AI verdict for an exported trial",
		Args:  cobra.ExactArgs(1),
		RunE:  runJudge,
	}
	cmd.Flags().String("out", "", "Write the snapshot, updated with the verdict, to this file")
	cmd.Flags().Bool("prompt-only", false, "Print the judgment prompt instead of calling the judge")
	return cmd
}

func runJudge(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := trial.ParseSnapshot(data)
	if err != nil {
		return err
	}
	session := trial.NewSession()
	if err := session.Restore(snap); err != nil {
		return err
	}

	if promptOnly, _ := cmd.Flags().GetBool("prompt-only"); promptOnly {
		fmt.Fprintln(cmd.OutOrStdout(), judge.BuildPrompt(session))
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := openai.NewClient(cfg.APIKey)
	orchestrator := judge.NewOrchestrator(client, cfg.Model, cfg.VerdictTimeout())

	verdict := orchestrator.RequestVerdict(ctx, session)
	session.Verdict = verdict
	output.PrintVerdict(verdict)
	fmt.Println()
	fmt.Println(output.RenderScoreboard(session))

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		updated, err := trial.MarshalSnapshot(session.Snapshot())
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, updated, 0o644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		fmt.Printf("Saved verdict to %s\n", out)
	}
	return nil
}

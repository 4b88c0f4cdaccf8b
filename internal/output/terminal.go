package output

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/courtcraft/mocktrial/internal/trial"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Colorize wraps s with an ANSI color code and reset when stdout is a
// terminal.
func Colorize(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + ansiReset
}

// Bold wraps s with ANSI bold and reset.
func Bold(s string) string {
	if !colorEnabled {
		return s
	}
	return ansiBold + s + ansiReset
}

func teamColor(team trial.Team) string {
	if team == trial.Prosecutor {
		return ansiRed
	}
	return ansiCyan
}

// PrintScore prints a rubric result: score and feedback tags.
func PrintScore(score int, feedback []string) {
	fmt.Printf("Quality score: %s\n", Colorize(ansiYellow, fmt.Sprintf("%d/100", score)))
	for _, tag := range feedback {
		fmt.Printf("  - %s\n", tag)
	}
}

// PrintAward prints the outcome of one scoring event.
func PrintAward(a trial.Award) {
	line := fmt.Sprintf("%s +%d (%s)", Bold(a.Team.String()), a.Points, a.Reason)
	if a.ComboBonus {
		line += " " + Colorize(ansiYellow, "combo x1.5!")
	}
	fmt.Println(Colorize(teamColor(a.Team), line))
}

// PrintBadges announces newly unlocked badges.
func PrintBadges(badges []trial.Badge) {
	for _, b := range badges {
		fmt.Printf("%s Badge unlocked: %s %s (%s)\n",
			Colorize(ansiGreen, "★"), b.Icon, Bold(b.Name), b.Condition)
	}
}

// PrintVerdict prints the judgment under a banner.
func PrintVerdict(verdict string) {
	fmt.Printf("\n%s\n\n%s\n", Colorize(ansiBold+ansiGreen, "=== Verdict ==="), verdict)
}

// PrintCelebration is wired to the ledger's OnCelebrate hook, the terminal
// stand-in for balloons.
func PrintCelebration(team trial.Team) {
	fmt.Println(Colorize(ansiYellow, fmt.Sprintf("🎉 %s is on a streak!", team)))
}

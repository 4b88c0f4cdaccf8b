// Package judge builds judgment prompts and requests verdicts from the
// external text-generation collaborator, degrading to a deterministic
// fallback verdict on any failure.
package judge

import (
	"fmt"
	"strings"

	"github.com/courtcraft/mocktrial/internal/trial"
)

const noCasePlaceholder = "(no case summary provided)"

const instructionBlock = `
Deliver your verdict in the following format:
1. 🏆 Winning team and why
2. 👍 What each team did well (two points per team)
3. 💡 What to improve (one point per team)
4. 🌟 Best speaker
5. 📈 Scores: prosecution ? points, defense ? points (out of 100)
`

// BuildPrompt composes the judgment request for a session. It is
// deterministic: the same session state always yields the same text. Rounds
// with no text from either side are omitted, but the numbering of the rounds
// that do appear is preserved.
func BuildPrompt(s *trial.Session) string {
	var b strings.Builder
	b.WriteString("Please evaluate this middle school mock trial.\n\n")

	b.WriteString("[Case Summary]\n")
	if strings.TrimSpace(s.CaseSummary) == "" {
		b.WriteString(noCasePlaceholder)
	} else {
		b.WriteString(s.CaseSummary)
	}
	b.WriteString("\n\n[Debate Content]\n")

	for _, r := range s.Rounds.Rounds() {
		if !r.HasContent() {
			continue
		}
		fmt.Fprintf(&b, "\nRound %d:\n", r.ID)
		if r.ProsecutorText != "" {
			fmt.Fprintf(&b, "Prosecution: %s\n", r.ProsecutorText)
		}
		if r.DefenderText != "" {
			fmt.Fprintf(&b, "Defense: %s\n", r.DefenderText)
		}
	}

	b.WriteString(instructionBlock)
	return b.String()
}

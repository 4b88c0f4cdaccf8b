package judge

import (
	"context"
	"strings"
	"time"

	"github.com/courtcraft/mocktrial/internal/openai"
	"github.com/courtcraft/mocktrial/internal/trial"
)

// ChatClient is the slice of the OpenAI client the orchestrator needs, an
// interface so tests can mock the collaborator.
type ChatClient interface {
	ChatCompletion(ctx context.Context, model string, messages []openai.Message) (*openai.ChatResponse, error)
}

const systemRole = "You are an educational and fair AI judge. Explain your reasoning in a friendly way a middle school student can follow."

// FallbackVerdict is returned whenever the collaborator fails. Students never
// see a raw error in place of a judgment.
const FallbackVerdict = `🏆 Verdict

Both teams presented excellent arguments.

Prosecution: logical claims backed by well-chosen evidence.
Defense: a strong grasp of the situation and impressive alternatives.

Things to work on next time:
- Present more concrete evidence
- Rebut the opposing team's claims directly
- Use more value language`

const defaultTimeout = 60 * time.Second

// Orchestrator requests verdicts from the generation collaborator.
type Orchestrator struct {
	llm     ChatClient
	model   string
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator. A non-positive timeout selects the
// default.
func NewOrchestrator(llm ChatClient, model string, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Orchestrator{llm: llm, model: model, timeout: timeout}
}

// RequestVerdict builds the prompt for the session and asks the collaborator
// for a judgment. Errors, timeouts and empty responses all collapse into
// FallbackVerdict; this never returns an error.
func (o *Orchestrator) RequestVerdict(ctx context.Context, s *trial.Session) string {
	prompt := BuildPrompt(s)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.llm.ChatCompletion(ctx, o.model, []openai.Message{
		{Role: "system", Content: systemRole},
		{Role: "user", Content: prompt},
	})
	if err != nil || resp == nil || len(resp.Choices) == 0 {
		return FallbackVerdict
	}
	verdict := strings.TrimSpace(resp.Choices[0].Message.Content)
	if verdict == "" {
		return FallbackVerdict
	}
	return verdict
}

package trial

import (
	"fmt"
	"math/rand"
)

// SampleCase is a ready-made scenario from the classroom catalog.
type SampleCase struct {
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	ProsecutorHint string `json:"prosecutor_hint"`
	DefenderHint   string `json:"defender_hint"`
}

var sampleCases = []SampleCase{
	{
		Title: "🍔 The Lunch Line Cut",
		Summary: `During lunch on March 15th, student A cut ahead in the cafeteria line.
When student B objected, A claimed "my friend C was holding my spot."
Witnesses testified that C never held a spot for anyone.
A explained they were simply too hungry to wait.`,
		ProsecutorHint: "rule breaking, dishonesty, infringing on other students' rights",
		DefenderHint:   "hunger, room for misunderstanding, apology and reflection",
	},
	{
		Title: "📱 The Phone in Class",
		Summary: `During a lesson, student D played a game on a phone hidden under the desk.
When the teacher moved to confiscate it, D claimed "I was only checking the time."
Neighboring student E testified to hearing game sounds.
D explained they were worried about a message from their parents.`,
		ProsecutorHint: "disrupting class, dishonesty, harming everyone's right to learn",
		DefenderHint:   "genuine worry, brief moment, first offense",
	},
	{
		Title: "🎨 The Damaged Artwork",
		Summary: `In art class, student F spilled paint over student G's project.
G insists F did it on purpose, claiming F had always envied the work.
F counters it was a real accident, apologized at once and offered to help.
Witness H said F seemed to be rushing and simply slipped.`,
		ProsecutorHint: "carelessness, a ruined project, emotional harm",
		DefenderHint:   "honest mistake, immediate apology, effort to make it right",
	},
}

// SampleCases returns the catalog in display order.
func SampleCases() []SampleCase {
	out := make([]SampleCase, len(sampleCases))
	copy(out, sampleCases)
	return out
}

// LoadSampleCase applies a catalog case to the session and returns it so the
// caller can surface the strategy hints.
func (s *Session) LoadSampleCase(index int) (SampleCase, error) {
	if index < 0 || index >= len(sampleCases) {
		return SampleCase{}, &ValidationError{
			Field:  "case",
			Reason: fmt.Sprintf("index %d out of range [0,%d]", index, len(sampleCases)-1),
		}
	}
	c := sampleCases[index]
	s.CaseSummary = c.Summary
	return c, nil
}

// Per-team coaching hints shown when a speech has room to grow.
var coachingHints = [2][]string{
	Prosecutor: {
		"💡 Mention specific dates and times",
		"💡 Use the witness testimony",
		"💡 Stress the consequences of breaking the rules",
		"💡 Explain the victim's point of view",
	},
	Defender: {
		"💡 Explain the context of the situation",
		"💡 Stress that there was no bad intent",
		"💡 Show willingness to improve",
		"💡 Offer a reasonable alternative",
	},
}

// HintSource picks coaching hints from an injected random source, so hint
// selection is reproducible with a fixed seed.
type HintSource struct {
	rng *rand.Rand
}

// NewHintSource creates a seeded hint source.
func NewHintSource(seed int64) *HintSource {
	return &HintSource{rng: rand.New(rand.NewSource(seed))}
}

// Hint returns one coaching hint for the team.
func (h *HintSource) Hint(team Team) string {
	team.mustBeValid()
	hints := coachingHints[team]
	return hints[h.rng.Intn(len(hints))]
}

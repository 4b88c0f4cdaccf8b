package trial

// GamificationState tracks one team's progress within a session. Points and
// Badges only ever grow; a full session reset is the single exception.
type GamificationState struct {
	Points      int
	Combo       int
	SpeechCount int
	Badges      []string
}

// HasBadge reports whether the badge id has already been unlocked.
func (s *GamificationState) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Award reasons, one per quality band.
const (
	ReasonCreativeArgument = "creative_argument"
	ReasonLogicalRebuttal  = "logical_rebuttal"
	ReasonFirstSpeech      = "first_speech"
)

// comboThreshold is the streak length at which the 1.5x bonus kicks in.
const comboThreshold = 3

// Award describes the outcome of a single scoring event. The presentation
// layer decides how to render it; the ledger itself has no output.
type Award struct {
	Team       Team
	Points     int
	Reason     string
	ComboBonus bool
}

// Ledger owns both teams' gamification state.
type Ledger struct {
	states [2]GamificationState

	// OnCelebrate fires when a combo bonus is applied. Observable but
	// non-functional, for balloons and similar fanfare.
	OnCelebrate func(team Team)
}

// NewLedger returns a zeroed ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// State returns the mutable state for a team.
func (l *Ledger) State(team Team) *GamificationState {
	team.mustBeValid()
	return &l.states[team]
}

// Award converts a speech quality score into points:
//
//	score >= 80  ->  score/4, creative_argument
//	60..79       ->  score/5, logical_rebuttal
//	below 60     ->  flat 10, first_speech
//
// A running combo of comboThreshold or more multiplies the base by 1.5
// (truncated). The scoring team's combo and speech count then advance.
// Returns the amount actually added.
func (l *Ledger) Award(team Team, quality int) Award {
	if quality < 0 {
		quality = 0
	}
	st := l.State(team)

	var base int
	var reason string
	switch {
	case quality >= 80:
		base = quality / 4
		reason = ReasonCreativeArgument
	case quality >= 60:
		base = quality / 5
		reason = ReasonLogicalRebuttal
	default:
		base = 10
		reason = ReasonFirstSpeech
	}

	amount := base
	bonus := st.Combo >= comboThreshold
	if bonus {
		amount = int(float64(base) * 1.5)
		if l.OnCelebrate != nil {
			l.OnCelebrate(team)
		}
	}

	st.Points += amount
	st.SpeechCount++
	st.Combo++

	return Award{Team: team, Points: amount, Reason: reason, ComboBonus: bonus}
}

// ResetCombos zeroes both streaks. Called when a round boundary is crossed;
// points and badges are untouched.
func (l *Ledger) ResetCombos() {
	for i := range l.states {
		l.states[i].Combo = 0
	}
}

// Reset wipes all state for both teams.
func (l *Ledger) Reset() {
	l.states = [2]GamificationState{}
}

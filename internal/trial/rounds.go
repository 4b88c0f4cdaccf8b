package trial

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Round holds both teams' contributions for one exchange cycle. IDs are
// 1-based and always equal the round's position in the store.
type Round struct {
	ID             int
	ProsecutorText string
	DefenderText   string
	ProsecutorTime time.Duration
	DefenderTime   time.Duration
}

// Text returns the given team's argument.
func (r *Round) Text(team Team) string {
	return *r.textRef(team)
}

// HasContent reports whether either side has submitted text.
func (r *Round) HasContent() bool {
	return r.ProsecutorText != "" || r.DefenderText != ""
}

func (r *Round) textRef(team Team) *string {
	team.mustBeValid()
	if team == Prosecutor {
		return &r.ProsecutorText
	}
	return &r.DefenderText
}

func (r *Round) timeRef(team Team) *time.Duration {
	team.mustBeValid()
	if team == Prosecutor {
		return &r.ProsecutorTime
	}
	return &r.DefenderTime
}

// minArgumentRunes is the floor the manual save path enforces. Transcribed or
// programmatically applied text bypasses it.
const minArgumentRunes = 10

// RoundStore is an ordered collection of rounds. Rounds are only ever
// appended or removed from the tail; reordering never occurs.
type RoundStore struct {
	rounds []Round
}

// NewRoundStore creates a store with n empty rounds (at least one).
func NewRoundStore(n int) *RoundStore {
	if n < 1 {
		n = 1
	}
	s := &RoundStore{}
	for i := 0; i < n; i++ {
		s.AppendRound()
	}
	return s
}

// Len returns the number of rounds.
func (s *RoundStore) Len() int {
	return len(s.rounds)
}

// Round returns a copy of the round at the 1-based index.
func (s *RoundStore) Round(index int) Round {
	return *s.at(index)
}

// Rounds returns a copy of all rounds in order.
func (s *RoundStore) Rounds() []Round {
	out := make([]Round, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// AppendRound creates an empty round at the end of the sequence.
func (s *RoundStore) AppendRound() Round {
	r := Round{ID: len(s.rounds) + 1}
	s.rounds = append(s.rounds, r)
	return r
}

// RemoveLastRound drops the final round. It is a no-op returning false when
// only one round remains.
func (s *RoundStore) RemoveLastRound() bool {
	if len(s.rounds) <= 1 {
		return false
	}
	s.rounds = s.rounds[:len(s.rounds)-1]
	return true
}

// SetText stores an argument via the manual save path. Text shorter than
// minArgumentRunes after trimming is rejected with a ValidationError.
func (s *RoundStore) SetText(index int, team Team, text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minArgumentRunes {
		return &ValidationError{
			Field:  "argument",
			Reason: fmt.Sprintf("must be at least %d characters", minArgumentRunes),
		}
	}
	*s.at(index).textRef(team) = text
	return nil
}

// SetTranscript stores text via the transcription path, which bypasses the
// minimum-length gate.
func (s *RoundStore) SetTranscript(index int, team Team, text string) {
	*s.at(index).textRef(team) = text
}

// ClearText blanks one team's argument in a round.
func (s *RoundStore) ClearText(index int, team Team) {
	*s.at(index).textRef(team) = ""
}

// SetTimeSpent records speaking time for a team; negative durations clamp to
// zero.
func (s *RoundStore) SetTimeSpent(index int, team Team, d time.Duration) {
	if d < 0 {
		d = 0
	}
	*s.at(index).timeRef(team) = d
}

// Resize grows the store with empty rounds or truncates it from the tail.
// Content of surviving rounds is preserved.
func (s *RoundStore) Resize(n int) error {
	if n < 1 {
		return &ValidationError{Field: "round count", Reason: "must be at least 1"}
	}
	for len(s.rounds) < n {
		s.AppendRound()
	}
	if len(s.rounds) > n {
		s.rounds = s.rounds[:n]
	}
	return nil
}

// at panics on an out-of-range index: no legitimate external input reaches
// the store without the caller validating the round number first.
func (s *RoundStore) at(index int) *Round {
	if index < 1 || index > len(s.rounds) {
		panic(fmt.Sprintf("trial: round index %d out of range [1,%d]", index, len(s.rounds)))
	}
	return &s.rounds[index-1]
}

package trial

import "strings"

// defaultRoundCount is the number of empty rounds a fresh session starts with.
const defaultRoundCount = 2

// Session is the aggregate root for one classroom trial. It exclusively owns
// its rounds and ledger; nothing reads or writes ambient state. One session
// is mutated by one caller at a time.
type Session struct {
	CaseSummary string
	Rounds      *RoundStore
	Ledger      *Ledger
	Verdict     string

	currentRound int
}

// NewSession creates a session with two empty rounds and a zeroed ledger.
func NewSession() *Session {
	return &Session{
		Rounds:       NewRoundStore(defaultRoundCount),
		Ledger:       NewLedger(),
		currentRound: 1,
	}
}

// CurrentRound returns the 1-based round the class is working on.
func (s *Session) CurrentRound() int {
	return s.currentRound
}

// SelectRound moves to another round. Crossing a round boundary is a combo
// reset point for both teams.
func (s *Session) SelectRound(n int) error {
	if n < 1 || n > s.Rounds.Len() {
		return &ValidationError{Field: "round", Reason: "out of range"}
	}
	if n != s.currentRound {
		s.Ledger.ResetCombos()
	}
	s.currentRound = n
	return nil
}

// SubmitResult bundles everything the presentation layer needs after one
// accepted submission.
type SubmitResult struct {
	Score     int
	Feedback  []string
	Award     Award
	NewBadges []Badge
}

// SubmitArgument stores text via the gated save path, then scores it, awards
// points and evaluates badges. The round must already exist.
func (s *Session) SubmitArgument(team Team, round int, text string) (*SubmitResult, error) {
	if err := s.Rounds.SetText(round, team, text); err != nil {
		return nil, err
	}
	return s.scoreSubmission(team, text), nil
}

// ApplyTranscript stores transcribed text, bypassing the minimum-length gate.
// An empty transcription leaves the round untouched and is not scored.
func (s *Session) ApplyTranscript(team Team, round int, text string) *SubmitResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.Rounds.SetTranscript(round, team, text)
	return s.scoreSubmission(team, text)
}

func (s *Session) scoreSubmission(team Team, text string) *SubmitResult {
	score, feedback := ScoreSpeech(text)
	award := s.Ledger.Award(team, score)
	badges := s.Ledger.EvaluateBadges(team)
	return &SubmitResult{
		Score:     score,
		Feedback:  feedback,
		Award:     award,
		NewBadges: badges,
	}
}

// Reset returns the session to its initial state: two empty rounds, no case,
// zeroed ledger, no verdict. This is the only operation that decreases
// points.
func (s *Session) Reset() {
	s.CaseSummary = ""
	s.Rounds = NewRoundStore(defaultRoundCount)
	s.Ledger.Reset()
	s.Verdict = ""
	s.currentRound = 1
}

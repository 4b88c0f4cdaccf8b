package trial

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is the flat export format for a session. Field names match the
// files classrooms have already saved, so old exports keep importing.
type Snapshot struct {
	Date     string          `json:"date"`
	Case     string          `json:"case"`
	Rounds   []RoundSnapshot `json:"rounds"`
	Judgment string          `json:"judgment"`
	Scores   ScoreSnapshot   `json:"scores"`
	Badges   BadgeSnapshot   `json:"badges"`
}

// RoundSnapshot is one exported round. Times are seconds.
type RoundSnapshot struct {
	ID         int     `json:"id"`
	Prosecutor string  `json:"prosecutor"`
	Defender   string  `json:"defender"`
	ProsTime   float64 `json:"pros_time"`
	DefTime    float64 `json:"def_time"`
}

// ScoreSnapshot holds both teams' point totals.
type ScoreSnapshot struct {
	Prosecutor int `json:"prosecutor"`
	Defender   int `json:"defender"`
}

// BadgeSnapshot holds both teams' unlocked badge ids.
type BadgeSnapshot struct {
	Prosecutor []string `json:"prosecutor"`
	Defender   []string `json:"defender"`
}

// Snapshot captures the full exportable state of the session.
func (s *Session) Snapshot() Snapshot {
	rounds := make([]RoundSnapshot, 0, s.Rounds.Len())
	for _, r := range s.Rounds.Rounds() {
		rounds = append(rounds, RoundSnapshot{
			ID:         r.ID,
			Prosecutor: r.ProsecutorText,
			Defender:   r.DefenderText,
			ProsTime:   r.ProsecutorTime.Seconds(),
			DefTime:    r.DefenderTime.Seconds(),
		})
	}
	return Snapshot{
		Date:     time.Now().UTC().Format(time.RFC3339),
		Case:     s.CaseSummary,
		Rounds:   rounds,
		Judgment: s.Verdict,
		Scores: ScoreSnapshot{
			Prosecutor: s.Ledger.State(Prosecutor).Points,
			Defender:   s.Ledger.State(Defender).Points,
		},
		Badges: BadgeSnapshot{
			Prosecutor: cloneBadgeIDs(s.Ledger.State(Prosecutor).Badges),
			Defender:   cloneBadgeIDs(s.Ledger.State(Defender).Badges),
		},
	}
}

// Restore fully replaces session state from a snapshot. The rounds key is
// required; every other field defaults to empty or zero when absent. Round
// ids are renormalized to position, negative values clamp to zero and badge
// ids missing from the catalog are dropped. Combo streaks and speech counts
// are not persisted and restart at zero.
func (s *Session) Restore(snap Snapshot) error {
	if snap.Rounds == nil {
		return &ValidationError{Field: "snapshot", Reason: "rounds is required"}
	}

	store := NewRoundStore(len(snap.Rounds))
	for i, rs := range snap.Rounds {
		idx := i + 1
		store.SetTranscript(idx, Prosecutor, rs.Prosecutor)
		store.SetTranscript(idx, Defender, rs.Defender)
		store.SetTimeSpent(idx, Prosecutor, secondsToDuration(rs.ProsTime))
		store.SetTimeSpent(idx, Defender, secondsToDuration(rs.DefTime))
	}

	s.CaseSummary = snap.Case
	s.Rounds = store
	s.Verdict = snap.Judgment
	s.currentRound = 1

	s.Ledger.Reset()
	s.Ledger.State(Prosecutor).Points = clampNonNegative(snap.Scores.Prosecutor)
	s.Ledger.State(Defender).Points = clampNonNegative(snap.Scores.Defender)
	s.Ledger.State(Prosecutor).Badges = knownBadgeIDs(snap.Badges.Prosecutor)
	s.Ledger.State(Defender).Badges = knownBadgeIDs(snap.Badges.Defender)
	return nil
}

// ParseSnapshot decodes an exported snapshot, rejecting malformed JSON with a
// ValidationError.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, &ValidationError{Field: "snapshot", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return snap, nil
}

// MarshalSnapshot renders a snapshot in the indented JSON export format.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("trial: %w", err)
	}
	return data, nil
}

func secondsToDuration(secs float64) time.Duration {
	if secs < 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func cloneBadgeIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// knownBadgeIDs keeps catalog badges only, deduplicated, preserving order.
func knownBadgeIDs(ids []string) []string {
	var out []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := BadgeByID(id); !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

package server

import (
	"github.com/courtcraft/mocktrial/internal/trial"
)

// sessionView is the JSON shape of a session's live state.
type sessionView struct {
	ID           string      `json:"id"`
	Case         string      `json:"case"`
	CurrentRound int         `json:"current_round"`
	Rounds       []roundView `json:"rounds"`
	Prosecutor   teamView    `json:"prosecutor"`
	Defender     teamView    `json:"defender"`
	Verdict      string      `json:"verdict"`
}

type roundView struct {
	ID         int     `json:"id"`
	Prosecutor string  `json:"prosecutor"`
	Defender   string  `json:"defender"`
	ProsTime   float64 `json:"pros_time"`
	DefTime    float64 `json:"def_time"`
}

type teamView struct {
	Points      int         `json:"points"`
	Combo       int         `json:"combo"`
	SpeechCount int         `json:"speech_count"`
	Level       trial.Level `json:"level"`
	Badges      []string    `json:"badges"`
}

type submitView struct {
	Score     int           `json:"score"`
	Feedback  []string      `json:"feedback"`
	Awarded   int           `json:"awarded"`
	Reason    string        `json:"reason"`
	Combo     bool          `json:"combo_bonus"`
	NewBadges []trial.Badge `json:"new_badges"`
}

func viewSession(id string, s *trial.Session) sessionView {
	rounds := make([]roundView, 0, s.Rounds.Len())
	for _, r := range s.Rounds.Rounds() {
		rounds = append(rounds, roundView{
			ID:         r.ID,
			Prosecutor: r.ProsecutorText,
			Defender:   r.DefenderText,
			ProsTime:   r.ProsecutorTime.Seconds(),
			DefTime:    r.DefenderTime.Seconds(),
		})
	}
	return sessionView{
		ID:           id,
		Case:         s.CaseSummary,
		CurrentRound: s.CurrentRound(),
		Rounds:       rounds,
		Prosecutor:   viewTeam(s, trial.Prosecutor),
		Defender:     viewTeam(s, trial.Defender),
		Verdict:      s.Verdict,
	}
}

func viewTeam(s *trial.Session, team trial.Team) teamView {
	st := s.Ledger.State(team)
	badges := make([]string, len(st.Badges))
	copy(badges, st.Badges)
	return teamView{
		Points:      st.Points,
		Combo:       st.Combo,
		SpeechCount: st.SpeechCount,
		Level:       trial.ResolveLevel(st.Points),
		Badges:      badges,
	}
}

func viewSubmit(res *trial.SubmitResult) submitView {
	v := submitView{
		Score:     res.Score,
		Feedback:  res.Feedback,
		Awarded:   res.Award.Points,
		Reason:    res.Award.Reason,
		Combo:     res.Award.ComboBonus,
		NewBadges: res.NewBadges,
	}
	if v.Feedback == nil {
		v.Feedback = []string{}
	}
	if v.NewBadges == nil {
		v.NewBadges = []trial.Badge{}
	}
	return v
}

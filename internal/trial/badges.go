package trial

// Badge is a static catalog entry. Unlock conditions live in badgeRules, not
// on the badge itself; Condition is display text only.
type Badge struct {
	ID        string `json:"id"`
	Icon      string `json:"icon"`
	Name      string `json:"name"`
	Condition string `json:"condition"`
}

var badgeCatalog = []Badge{
	{ID: "fire_speaker", Icon: "🔥", Name: "Fire Speaker", Condition: "three consecutive speeches"},
	{ID: "sniper", Icon: "🎯", Name: "Sniper", Condition: "rebuttal landed with decisive evidence"},
	{ID: "defender", Icon: "🛡️", Name: "Iron Wall", Condition: "three rebuttals held off"},
	{ID: "lightning", Icon: "⚡", Name: "Lightning Response", Condition: "rebuttal within ten seconds"},
	{ID: "mvp", Icon: "🏆", Name: "MVP", Condition: "reached one hundred points"},
	{ID: "teamwork", Icon: "🤝", Name: "Teamwork Master", Condition: "flawless team cooperation"},
}

// Badges returns the full catalog in display order.
func Badges() []Badge {
	out := make([]Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

// BadgeByID looks a badge up in the catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// badgeRule pairs a badge id with its unlock predicate over a team's state.
// Rules are independent of each other; adding one never touches another.
type badgeRule struct {
	id      string
	unlocks func(*GamificationState) bool
}

var badgeRules = []badgeRule{
	{id: "fire_speaker", unlocks: func(s *GamificationState) bool { return s.Combo >= comboThreshold }},
	{id: "mvp", unlocks: func(s *GamificationState) bool { return s.Points >= 100 }},
}

// EvaluateBadges unlocks every badge whose predicate now holds for the team
// and returns only the newly unlocked ones. Safe to call after every scoring
// event: a second call with unchanged state returns nil.
func (l *Ledger) EvaluateBadges(team Team) []Badge {
	st := l.State(team)
	var earned []Badge
	for _, rule := range badgeRules {
		if st.HasBadge(rule.id) || !rule.unlocks(st) {
			continue
		}
		st.Badges = append(st.Badges, rule.id)
		if b, ok := BadgeByID(rule.id); ok {
			earned = append(earned, b)
		}
	}
	return earned
}

package trial

// Level is a display tier derived from cumulative points. It has no gameplay
// effect. MaxPoints < 0 marks an open upper bound.
type Level struct {
	Tier      int    `json:"tier"`
	Title     string `json:"title"`
	MinPoints int    `json:"min_points"`
	MaxPoints int    `json:"max_points"`
}

// levelCatalog bounds are contiguous and exhaustive over [0, inf), so every
// non-negative point total matches exactly one tier.
var levelCatalog = []Level{
	{Tier: 1, Title: "🌱 Courtroom Rookie", MinPoints: 0, MaxPoints: 50},
	{Tier: 2, Title: "📚 Junior Counsel", MinPoints: 51, MaxPoints: 150},
	{Tier: 3, Title: "⚖️ Senior Counsel", MinPoints: 151, MaxPoints: 300},
	{Tier: 4, Title: "🌟 Ace Attorney", MinPoints: 301, MaxPoints: 500},
	{Tier: 5, Title: "👑 Legendary Attorney", MinPoints: 501, MaxPoints: -1},
}

// Levels returns the ordered tier catalog.
func Levels() []Level {
	out := make([]Level, len(levelCatalog))
	copy(out, levelCatalog)
	return out
}

// ResolveLevel returns the tier whose bounds contain points. The tier 1
// fallback should be unreachable given exhaustive bounds.
func ResolveLevel(points int) Level {
	for _, lv := range levelCatalog {
		if points >= lv.MinPoints && (lv.MaxPoints < 0 || points <= lv.MaxPoints) {
			return lv
		}
	}
	return levelCatalog[0]
}

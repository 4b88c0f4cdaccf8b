package trial

import "fmt"

// Team identifies one of the two opposing sides. It is never a free-form
// string inside the core; boundaries parse with ParseTeam.
type Team int

const (
	Prosecutor Team = iota
	Defender
)

var teamNames = [...]string{"prosecutor", "defender"}

func (t Team) String() string {
	t.mustBeValid()
	return teamNames[t]
}

// Opponent returns the other side.
func (t Team) Opponent() Team {
	t.mustBeValid()
	return Defender - t
}

// mustBeValid panics on an unknown team. Only a caller bug can reach this.
func (t Team) mustBeValid() {
	if t < Prosecutor || t > Defender {
		panic(fmt.Sprintf("trial: unknown team %d", int(t)))
	}
}

// ParseTeam maps a wire-level team name onto a Team.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "prosecutor":
		return Prosecutor, nil
	case "defender":
		return Defender, nil
	}
	return 0, &ValidationError{Field: "team", Reason: fmt.Sprintf("unknown team %q", s)}
}

// Teams lists both sides in fixed order.
func Teams() []Team {
	return []Team{Prosecutor, Defender}
}

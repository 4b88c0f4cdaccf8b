package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/courtcraft/mocktrial/internal/trial"
)

// RenderScoreboard renders both teams' standing as a table.
func RenderScoreboard(s *trial.Session) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Team", "Points", "Level", "Combo", "Speeches", "Badges"})

	for _, team := range trial.Teams() {
		st := s.Ledger.State(team)
		level := trial.ResolveLevel(st.Points)
		tw.AppendRow(table.Row{
			team.String(),
			st.Points,
			level.Title,
			fmt.Sprintf("x%d", st.Combo),
			st.SpeechCount,
			badgeIcons(st.Badges),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

// RenderCases renders the sample case catalog.
func RenderCases(cases []trial.SampleCase) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Prosecution hint", "Defense hint"})
	for i, c := range cases {
		tw.AppendRow(table.Row{i, c.Title, c.ProsecutorHint, c.DefenderHint})
	}
	return tw.Render()
}

// RenderLevels renders the level tier catalog.
func RenderLevels() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Tier", "Title", "Points"})
	for _, lv := range trial.Levels() {
		bounds := fmt.Sprintf("%d+", lv.MinPoints)
		if lv.MaxPoints >= 0 {
			bounds = fmt.Sprintf("%d-%d", lv.MinPoints, lv.MaxPoints)
		}
		tw.AppendRow(table.Row{lv.Tier, lv.Title, bounds})
	}
	return tw.Render()
}

func badgeIcons(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	var icons []string
	for _, id := range ids {
		if b, ok := trial.BadgeByID(id); ok {
			icons = append(icons, b.Icon)
		}
	}
	return strings.Join(icons, " ")
}

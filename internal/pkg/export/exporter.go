package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Vodeneev/pokepaste/internal/pkg/enums"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

// JSONReport renders the team as indented JSON, the CLI success output
func JSONReport(team *models.Team) ([]byte, error) {
	data, err := json.MarshalIndent(team, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal team: %w", err)
	}
	return data, nil
}

// Summary renders a short human-readable description of the team
func Summary(team *models.Team) string {
	var b strings.Builder

	title := team.Title
	if title == "" {
		title = "Untitled team"
	}
	b.WriteString(title)
	if team.Author != "" {
		fmt.Fprintf(&b, " (by %s)", team.Author)
	}
	b.WriteString("\n")
	if team.Format != "" {
		fmt.Fprintf(&b, "Format: %s\n", team.Format)
	}
	fmt.Fprintf(&b, "Pokemon: %d\n", len(team.Pokemon))

	for i, m := range team.Pokemon {
		b.WriteString("\n")
		writeMember(&b, i+1, m)
	}
	return b.String()
}

func writeMember(b *strings.Builder, n int, m models.TeamMember) {
	fmt.Fprintf(b, "%d. %s", n, m.Name)
	if m.Gender != "" {
		fmt.Fprintf(b, " (%s)", m.Gender)
	}
	if m.Item != "" {
		fmt.Fprintf(b, " @ %s", m.Item)
	}
	b.WriteString("\n")

	var details []string
	if m.Ability != "" {
		details = append(details, "Ability: "+m.Ability)
	}
	if m.TeraType != "" {
		details = append(details, "Tera: "+m.TeraType)
	}
	details = append(details, fmt.Sprintf("Level %d", m.Level))
	fmt.Fprintf(b, "   %s\n", strings.Join(details, ", "))

	if m.Nature != "" {
		fmt.Fprintf(b, "   Nature: %s\n", NatureLabel(m.Nature))
	}
	if evs := spread(m.EVs, func(v int) bool { return v != 0 }); evs != "" {
		fmt.Fprintf(b, "   EVs: %s\n", evs)
	}
	if ivs := spread(m.IVs, func(v int) bool { return v != models.MaxIV }); ivs != "" {
		fmt.Fprintf(b, "   IVs: %s\n", ivs)
	}
	if len(m.Moves) > 0 {
		fmt.Fprintf(b, "   Moves: %s\n", strings.Join(m.Moves, ", "))
	}
}

// NatureLabel renders "Adamant (+Atk -SpA)"; neutral and unknown natures are returned as is
func NatureLabel(nature string) string {
	effect, ok := enums.ParseNature(nature)
	if !ok || effect.Neutral() {
		return nature
	}
	return fmt.Sprintf("%s (+%s -%s)", nature, effect.Plus.Label(), effect.Minus.Label())
}

// spread lists the stats for which keep returns true, in export order
func spread(block models.StatBlock, keep func(int) bool) string {
	var parts []string
	for _, s := range enums.AllStats {
		if v := block.Get(s); keep(v) {
			parts = append(parts, fmt.Sprintf("%d %s", v, s.Label()))
		}
	}
	return strings.Join(parts, ", ")
}

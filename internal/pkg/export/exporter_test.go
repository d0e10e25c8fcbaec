package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

func sampleTeam() *models.Team {
	garchomp := models.NewTeamMember()
	garchomp.Name = "Garchomp"
	garchomp.Gender = models.GenderMale
	garchomp.Item = "Choice Scarf"
	garchomp.Ability = "Rough Skin"
	garchomp.TeraType = "Ground"
	garchomp.Nature = "Adamant"
	garchomp.EVs = models.StatBlock{HP: 4, Attack: 252, Speed: 252}
	garchomp.Moves = []string{"Earthquake", "Dragon Claw"}

	rotom := models.NewTeamMember()
	rotom.Name = "Rotom-Wash"
	rotom.Nature = "Serious"
	rotom.IVs.Attack = 0

	return &models.Team{
		Title:   "Rain Team",
		Author:  "someone",
		Format:  "gen9ou",
		Pokemon: []models.TeamMember{garchomp, rotom},
		Metadata: models.TeamMetadata{
			Source:   models.SourcePokepaste,
			ParsedAt: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestJSONReport(t *testing.T) {
	data, err := JSONReport(sampleTeam())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"format\": \"gen9ou\"")
	assert.Contains(t, string(data), `"parsedAt": "2026-10-14T00:00:00Z"`)

	var back models.Team
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *sampleTeam(), back)
}

func TestSummary(t *testing.T) {
	want := `Rain Team (by someone)
Format: gen9ou
Pokemon: 2

1. Garchomp (Male) @ Choice Scarf
   Ability: Rough Skin, Tera: Ground, Level 50
   Nature: Adamant (+Atk -SpA)
   EVs: 4 HP, 252 Atk, 252 Spe
   Moves: Earthquake, Dragon Claw

2. Rotom-Wash
   Level 50
   Nature: Serious
   IVs: 0 Atk
`
	assert.Equal(t, want, Summary(sampleTeam()))
}

func TestSummary_Untitled(t *testing.T) {
	team := &models.Team{}
	assert.Equal(t, "Untitled team\nPokemon: 0\n", Summary(team))
}

func TestNatureLabel(t *testing.T) {
	assert.Equal(t, "Calm (+SpD -Atk)", NatureLabel("Calm"))
	assert.Equal(t, "Hardy", NatureLabel("Hardy"))
	assert.Equal(t, "Brash", NatureLabel("Brash"))
}

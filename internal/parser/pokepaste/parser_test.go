package pokepaste

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const samplePokemon = `Garchomp (M) @ Choice Scarf
Ability: Rough Skin
Level: 50
Tera Type: Ground
EVs: 4 HP / 252 Atk / 252 Spe
Adamant Nature
- Earthquake
- Dragon Claw
- Stone Edge
- Fire Fang`

const sampleTeam = samplePokemon + `

Rotom-Wash @ Leftovers
Ability: Levitate
Level: 50
Tera Type: Water
EVs: 248 HP / 8 SpA / 252 SpD
Calm Nature
IVs: 0 Atk
- Volt Switch
- Hydro Pump
- Will-O-Wisp
- Pain Split`

func TestParseText_SinglePokemon(t *testing.T) {
	res := ParseText(samplePokemon, nil)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Pokemon, 1)

	p := res.Data.Pokemon[0]
	assert.Equal(t, "Garchomp", p.Name)
	assert.Equal(t, models.GenderMale, p.Gender)
	assert.Equal(t, "Choice Scarf", p.Item)
	assert.Equal(t, "Rough Skin", p.Ability)
	assert.Equal(t, 50, p.Level)
	assert.Equal(t, "Ground", p.TeraType)
	assert.Equal(t, "Adamant", p.Nature)
	assert.Equal(t, []string{"Earthquake", "Dragon Claw", "Stone Edge", "Fire Fang"}, p.Moves)
	assert.Equal(t, models.StatBlock{HP: 4, Attack: 252, Speed: 252}, p.EVs)
	assert.Equal(t, models.MaxIVs(), p.IVs)
	assert.Equal(t, models.ZeroStats(), p.Stats)
}

func TestParseText_Team(t *testing.T) {
	res := ParseText(sampleTeam, nil)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Pokemon, 2)

	garchomp, rotom := res.Data.Pokemon[0], res.Data.Pokemon[1]
	assert.Equal(t, "Garchomp", garchomp.Name)
	assert.Equal(t, models.StatBlock{HP: 4, Attack: 252, Speed: 252}, garchomp.EVs)

	assert.Equal(t, "Rotom-Wash", rotom.Name)
	assert.Empty(t, rotom.Gender)
	assert.Equal(t, "Leftovers", rotom.Item)
	assert.Equal(t, "Calm", rotom.Nature)
	assert.Equal(t, 0, rotom.IVs.Attack)
	assert.Equal(t, 31, rotom.IVs.HP)
	assert.Equal(t, 31, rotom.IVs.Speed)
	assert.Equal(t, models.StatBlock{HP: 248, SpecialAttack: 8, SpecialDefense: 252}, rotom.EVs)

	assert.Equal(t, "", res.Data.Format)
	assert.Equal(t, models.SourcePokepaste, res.Data.Metadata.Source)
	assert.Empty(t, res.Data.Metadata.OriginalURL)
}

func TestParseText_LineEndings(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"crlf", strings.ReplaceAll(sampleTeam, "\n", "\r\n")},
		{"extra blank lines", strings.Replace(sampleTeam, "Fire Fang\n\n", "Fire Fang\n\n\n\n", 1)},
		{"mixed", strings.Replace(sampleTeam, "Fire Fang\n\n", "Fire Fang\r\n\n", 1)},
		{"leading and trailing blanks", "\n\n" + sampleTeam + "\n\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseText(tt.text, nil)
			require.True(t, res.Success, res.Error)
			require.Len(t, res.Data.Pokemon, 2)
			assert.Equal(t, "Garchomp", res.Data.Pokemon[0].Name)
			assert.Equal(t, "Rotom-Wash", res.Data.Pokemon[1].Name)
			assert.Equal(t, "Pain Split", res.Data.Pokemon[1].Moves[3])
			assert.Equal(t, "Adamant", res.Data.Pokemon[0].Nature)
		})
	}
}

func TestParseText_NoEntries(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n\n \r\n "},
		{"garbage", "這不是有效的 pokepaste 格式"},
		{"comment blocks only", "=== [gen9] My Team ===\n\n// notes: 123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseText(tt.text, nil)
			assert.False(t, res.Success)
			assert.Nil(t, res.Data)
			assert.Contains(t, res.Error, "no valid pokemon found")
			assert.ErrorIs(t, res.Err(), ErrNoEntries)
		})
	}
}

func TestParseText_SkipsNoiseBlocks(t *testing.T) {
	text := "=== [gen9vgc] Rain ===\n\n" + samplePokemon + "\n\n// 2nd slot TBD\n\nPelipper @ Damp Rock\n- Hurricane"
	res := ParseText(text, nil)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Pokemon, 2)
	assert.Equal(t, "Garchomp", res.Data.Pokemon[0].Name)
	assert.Equal(t, "Pelipper", res.Data.Pokemon[1].Name)
}

func TestParseText_Metadata(t *testing.T) {
	fixed := time.Date(2026, 10, 14, 12, 30, 0, 123456789, time.FixedZone("UTC+8", 8*3600))
	p := &Parser{Now: func() time.Time { return fixed }}

	res := p.ParseText(samplePokemon, &Metadata{
		Title:       "測試隊伍",
		Author:      "測試玩家",
		Format:      "Format: gen9vgc2024regg",
		OriginalURL: "https://pokepast.es/test",
	})
	require.True(t, res.Success, res.Error)

	team := res.Data
	assert.Equal(t, "測試隊伍", team.Title)
	assert.Equal(t, "測試玩家", team.Author)
	assert.Equal(t, "gen9vgc2024regg", team.Format)
	assert.Equal(t, "https://pokepast.es/test", team.Metadata.OriginalURL)
	assert.Equal(t, models.SourcePokepaste, team.Metadata.Source)
	assert.Equal(t, time.UTC, team.Metadata.ParsedAt.Location())
	assert.True(t, fixed.Truncate(time.Millisecond).Equal(team.Metadata.ParsedAt))
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Format: gen9ou", "gen9ou"},
		{"gen9ou", "gen9ou"},
		{"", ""},
		{"Notes. Format: gen9ou", "Notes. Format: gen9ou"},
	}
	for _, tt := range tests {
		if got := normalizeFormat(tt.in); got != tt.want {
			t.Errorf("normalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnexpectedError(t *testing.T) {
	inner := errors.New("boom")
	err := &UnexpectedError{Op: "parse text", Err: inner}
	assert.EqualError(t, err, "parse text: boom")
	assert.ErrorIs(t, err, inner)
}

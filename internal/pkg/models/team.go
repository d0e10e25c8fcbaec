package models

import (
	"time"

	"github.com/Vodeneev/pokepaste/internal/pkg/enums"
)

const (
	// SourcePokepaste is the fixed source tag of every parsed team
	SourcePokepaste = "pokepaste"

	DefaultLevel = 50
	MaxIV        = 31
)

// Gender of a team member. Empty means the export did not specify one.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// TeamMember is one decoded entry of a team export
type TeamMember struct {
	Name     string    `json:"name"`
	Level    int       `json:"level"`
	Gender   Gender    `json:"gender,omitempty"`
	Ability  string    `json:"ability,omitempty"`
	Item     string    `json:"item,omitempty"`
	Nature   string    `json:"nature,omitempty"`   // raw name, not checked against enums.ParseNature
	TeraType string    `json:"teraType,omitempty"`
	Stats    StatBlock `json:"stats"`              // base stats, reserved for enrichment
	EVs      StatBlock `json:"evs"`
	IVs      StatBlock `json:"ivs"`
	Moves    []string  `json:"moves"`
}

// NewTeamMember returns a member with the export defaults applied:
// level 50, zero EVs, max IVs, zero base stats and no moves.
func NewTeamMember() TeamMember {
	return TeamMember{
		Level: DefaultLevel,
		Stats: ZeroStats(),
		EVs:   ZeroStats(),
		IVs:   MaxIVs(),
		Moves: []string{},
	}
}

// NatureEffect resolves the member's nature against the static table
func (m TeamMember) NatureEffect() (enums.NatureEffect, bool) {
	return enums.ParseNature(m.Nature)
}

// Team represents a parsed team export
type Team struct {
	Title    string       `json:"title,omitempty"`
	Author   string       `json:"author,omitempty"`
	Format   string       `json:"format"`
	Pokemon  []TeamMember `json:"pokemon"`
	Metadata TeamMetadata `json:"metadata"`
}

// TeamMetadata describes where and when a team was parsed
type TeamMetadata struct {
	Source      string    `json:"source"`
	ParsedAt    time.Time `json:"parsedAt"`
	OriginalURL string    `json:"originalUrl,omitempty"`
}

package enums

import "strings"

// Stat is one of the six canonical stat keys
type Stat string

const (
	HP             Stat = "hp"
	Attack         Stat = "attack"
	Defense        Stat = "defense"
	SpecialAttack  Stat = "specialAttack"
	SpecialDefense Stat = "specialDefense"
	Speed          Stat = "speed"
)

// AllStats lists the stat keys in export order (HP / Atk / Def / SpA / SpD / Spe)
var AllStats = []Stat{HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed}

// statLabels maps lower-cased export labels to stat keys
var statLabels = map[string]Stat{
	"hp":  HP,
	"atk": Attack,
	"def": Defense,
	"spa": SpecialAttack,
	"spd": SpecialDefense,
	"spe": Speed,
}

// StatFromLabel resolves an export label ("HP", "Atk", "SpA", ...) case-insensitively
func StatFromLabel(label string) (Stat, bool) {
	s, ok := statLabels[strings.ToLower(strings.TrimSpace(label))]
	return s, ok
}

// Label returns the short label used in team exports
func (s Stat) Label() string {
	switch s {
	case HP:
		return "HP"
	case Attack:
		return "Atk"
	case Defense:
		return "Def"
	case SpecialAttack:
		return "SpA"
	case SpecialDefense:
		return "SpD"
	case Speed:
		return "Spe"
	default:
		return string(s)
	}
}

// IsValid checks if the stat key is one of the six canonical keys
func (s Stat) IsValid() bool {
	for _, v := range AllStats {
		if v == s {
			return true
		}
	}
	return false
}

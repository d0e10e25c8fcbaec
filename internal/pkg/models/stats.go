package models

import "github.com/Vodeneev/pokepaste/internal/pkg/enums"

// StatBlock holds one value per canonical stat. It is used for base stats,
// effort values and individual values.
type StatBlock struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// PartialStats contains only the stats that were present in an export line
type PartialStats map[enums.Stat]int

func ZeroStats() StatBlock {
	return StatBlock{}
}

func MaxIVs() StatBlock {
	return StatBlock{
		HP:             MaxIV,
		Attack:         MaxIV,
		Defense:        MaxIV,
		SpecialAttack:  MaxIV,
		SpecialDefense: MaxIV,
		Speed:          MaxIV,
	}
}

// Get returns the value of a stat; unknown keys return 0
func (b StatBlock) Get(s enums.Stat) int {
	switch s {
	case enums.HP:
		return b.HP
	case enums.Attack:
		return b.Attack
	case enums.Defense:
		return b.Defense
	case enums.SpecialAttack:
		return b.SpecialAttack
	case enums.SpecialDefense:
		return b.SpecialDefense
	case enums.Speed:
		return b.Speed
	default:
		return 0
	}
}

// Set updates a single stat; unknown keys are ignored
func (b *StatBlock) Set(s enums.Stat, v int) {
	switch s {
	case enums.HP:
		b.HP = v
	case enums.Attack:
		b.Attack = v
	case enums.Defense:
		b.Defense = v
	case enums.SpecialAttack:
		b.SpecialAttack = v
	case enums.SpecialDefense:
		b.SpecialDefense = v
	case enums.Speed:
		b.Speed = v
	}
}

// Merge overwrites only the stats present in p and keeps the rest
func (b *StatBlock) Merge(p PartialStats) {
	for s, v := range p {
		b.Set(s, v)
	}
}

// Total sums all six stats
func (b StatBlock) Total() int {
	return b.HP + b.Attack + b.Defense + b.SpecialAttack + b.SpecialDefense + b.Speed
}

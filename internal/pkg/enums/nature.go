package enums

// NatureEffect describes which stat a nature raises and which it lowers.
// Both are empty for the five neutral natures.
type NatureEffect struct {
	Plus  Stat `json:"plus,omitempty"`
	Minus Stat `json:"minus,omitempty"`
}

// Neutral reports whether the nature has no effect
func (e NatureEffect) Neutral() bool {
	return e.Plus == "" && e.Minus == ""
}

type natureEntry struct {
	name   string
	effect NatureEffect
}

// Canonical order: plus stat by row, minus stat by column.
var natureTable = []natureEntry{
	{"Hardy", NatureEffect{}},
	{"Lonely", NatureEffect{Plus: Attack, Minus: Defense}},
	{"Brave", NatureEffect{Plus: Attack, Minus: Speed}},
	{"Adamant", NatureEffect{Plus: Attack, Minus: SpecialAttack}},
	{"Naughty", NatureEffect{Plus: Attack, Minus: SpecialDefense}},
	{"Bold", NatureEffect{Plus: Defense, Minus: Attack}},
	{"Docile", NatureEffect{}},
	{"Relaxed", NatureEffect{Plus: Defense, Minus: Speed}},
	{"Impish", NatureEffect{Plus: Defense, Minus: SpecialAttack}},
	{"Lax", NatureEffect{Plus: Defense, Minus: SpecialDefense}},
	{"Timid", NatureEffect{Plus: Speed, Minus: Attack}},
	{"Hasty", NatureEffect{Plus: Speed, Minus: Defense}},
	{"Serious", NatureEffect{}},
	{"Jolly", NatureEffect{Plus: Speed, Minus: SpecialAttack}},
	{"Naive", NatureEffect{Plus: Speed, Minus: SpecialDefense}},
	{"Modest", NatureEffect{Plus: SpecialAttack, Minus: Attack}},
	{"Mild", NatureEffect{Plus: SpecialAttack, Minus: Defense}},
	{"Quiet", NatureEffect{Plus: SpecialAttack, Minus: Speed}},
	{"Bashful", NatureEffect{}},
	{"Rash", NatureEffect{Plus: SpecialAttack, Minus: SpecialDefense}},
	{"Calm", NatureEffect{Plus: SpecialDefense, Minus: Attack}},
	{"Gentle", NatureEffect{Plus: SpecialDefense, Minus: Defense}},
	{"Sassy", NatureEffect{Plus: SpecialDefense, Minus: Speed}},
	{"Careful", NatureEffect{Plus: SpecialDefense, Minus: SpecialAttack}},
	{"Quirky", NatureEffect{}},
}

var natures = func() map[string]NatureEffect {
	m := make(map[string]NatureEffect, len(natureTable))
	for _, n := range natureTable {
		m[n.name] = n.effect
	}
	return m
}()

// ParseNature looks up a nature by its exact (case-sensitive) name.
// Unknown names return false; callers keep them as opaque text.
func ParseNature(name string) (NatureEffect, bool) {
	e, ok := natures[name]
	return e, ok
}

// NatureNames returns all known nature names in canonical order
func NatureNames() []string {
	out := make([]string, 0, len(natureTable))
	for _, n := range natureTable {
		out = append(out, n.name)
	}
	return out
}

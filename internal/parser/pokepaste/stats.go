package pokepaste

import (
	"strings"

	"github.com/Vodeneev/pokepaste/internal/pkg/enums"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const statPairSeparator = " / "

// ParseStats decodes "<value> <label>" pairs such as "4 HP / 252 Atk / 252 Spe".
// Only pairs with an integer value and a known label are returned.
func ParseStats(s string) models.PartialStats {
	stats := models.PartialStats{}
	for _, pair := range strings.Split(s, statPairSeparator) {
		fields := strings.Fields(pair)
		if len(fields) < 2 {
			continue
		}
		value, ok := leadingInt(fields[0])
		if !ok {
			continue
		}
		stat, ok := enums.StatFromLabel(fields[1])
		if !ok {
			continue
		}
		stats[stat] = value
	}
	return stats
}

// leadingInt parses an optional sign followed by the leading decimal digits of s,
// so "252" and "252+" both give 252 while "abc" fails.
func leadingInt(s string) (int, bool) {
	neg := false
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		// digits past 18 are dropped to stay inside int64
		if i-start < 18 {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

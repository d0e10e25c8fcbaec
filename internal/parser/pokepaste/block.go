package pokepaste

import (
	"regexp"
	"strings"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const (
	itemSeparator = " @ "
	natureSuffix  = " Nature"
	moveBullet    = "- "
)

var nameOnly = regexp.MustCompile(`^[A-Za-z\-\s\(\)]+$`)

// BlockStatus is the outcome of decoding one block
type BlockStatus int

const (
	BlockDecoded BlockStatus = iota
	BlockSkipped
	BlockErrored
)

func (s BlockStatus) String() string {
	switch s {
	case BlockDecoded:
		return "decoded"
	case BlockSkipped:
		return "skipped"
	case BlockErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// BlockResult is what DecodeBlock returns. Member is set only for BlockDecoded,
// Err only for BlockErrored, Reason explains a skip.
type BlockResult struct {
	Status BlockStatus
	Member *models.TeamMember
	Reason string
	Err    error
}

func decoded(m *models.TeamMember) BlockResult {
	return BlockResult{Status: BlockDecoded, Member: m}
}

func skipped(reason string) BlockResult {
	return BlockResult{Status: BlockSkipped, Reason: reason}
}

// lineHandler decodes one attribute line into the member when it matches
type lineHandler struct {
	prefix string
	apply  func(m *models.TeamMember, value string)
}

var attributeLines = []lineHandler{
	{"Ability: ", func(m *models.TeamMember, v string) { m.Ability = v }},
	{"Level: ", func(m *models.TeamMember, v string) { m.Level = parseLevel(v) }},
	{"Tera Type: ", func(m *models.TeamMember, v string) { m.TeraType = v }},
	{"EVs: ", func(m *models.TeamMember, v string) { m.EVs.Merge(ParseStats(v)) }},
	{"IVs: ", func(m *models.TeamMember, v string) { m.IVs.Merge(ParseStats(v)) }},
	{moveBullet, func(m *models.TeamMember, v string) { m.Moves = append(m.Moves, v) }},
}

// DecodeBlock decodes a single team member block. Blocks that do not look like
// a member (comments, headers, noise) are skipped rather than failed.
func DecodeBlock(block string) (res BlockResult) {
	defer func() {
		if r := recover(); r != nil {
			res = BlockResult{Status: BlockErrored, Err: panicError(r)}
		}
	}()

	lines := splitLines(block)
	if len(lines) == 0 {
		return skipped("empty block")
	}

	header := strings.TrimSpace(lines[0])
	if !strings.Contains(header, "@") && !nameOnly.MatchString(header) {
		return skipped("first line is not a pokemon header")
	}

	m := models.NewTeamMember()
	decodeHeader(&m, header)

	for _, raw := range lines[1:] {
		decodeLine(&m, strings.TrimSpace(raw))
	}

	if m.Name == "" {
		return skipped("no pokemon name")
	}
	return decoded(&m)
}

// decodeHeader handles "Name (M) @ Item"
func decodeHeader(m *models.TeamMember, line string) {
	nameWithGender, item, hasItem := strings.Cut(line, itemSeparator)

	name := strings.TrimSpace(nameWithGender)
	switch {
	case strings.HasSuffix(name, "(M)"):
		m.Gender = models.GenderMale
		name = strings.TrimSpace(strings.TrimSuffix(name, "(M)"))
	case strings.HasSuffix(name, "(F)"):
		m.Gender = models.GenderFemale
		name = strings.TrimSpace(strings.TrimSuffix(name, "(F)"))
	}
	m.Name = name

	if hasItem {
		m.Item = strings.TrimSpace(item)
	}
}

// decodeLine applies the first matching line shape; unknown lines are ignored
func decodeLine(m *models.TeamMember, line string) {
	for _, h := range attributeLines {
		if strings.HasPrefix(line, h.prefix) {
			h.apply(m, strings.TrimSpace(strings.TrimPrefix(line, h.prefix)))
			return
		}
	}
	if strings.Contains(line, natureSuffix) {
		m.Nature = strings.TrimSpace(strings.Replace(line, natureSuffix, "", 1))
	}
}

func parseLevel(s string) int {
	n, ok := leadingInt(s)
	if !ok || n == 0 {
		return models.DefaultLevel
	}
	return n
}

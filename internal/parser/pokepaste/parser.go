package pokepaste

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const formatPrefix = "Format: "

// Metadata is the optional side-channel information of a paste
type Metadata struct {
	Title       string
	Author      string
	Format      string // paste notes, usually "Format: gen9vgc2024regg"
	OriginalURL string
}

// Parser decodes team exports. The zero value is ready to use.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	// Now returns the parse timestamp; defaults to time.Now
	Now func() time.Time
	// Logger receives debug records for skipped blocks; defaults to slog.Default()
	Logger *slog.Logger
}

var defaultParser = &Parser{}

// ParseText decodes a team export document using the default parser
func ParseText(text string, meta *Metadata) models.Result {
	return defaultParser.ParseText(text, meta)
}

// ParseText decodes every block of text into a team. It fails with ErrNoEntries
// when no block decodes to a pokemon; individual bad blocks are dropped.
func (p *Parser) ParseText(text string, meta *Metadata) (res models.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = models.Fail(&UnexpectedError{Op: "parse text", Err: panicError(r)})
		}
	}()

	members := make([]models.TeamMember, 0, 6)
	for i, block := range SplitBlocks(text) {
		br := DecodeBlock(block)
		switch br.Status {
		case BlockDecoded:
			members = append(members, *br.Member)
		case BlockSkipped:
			p.logger().Debug("Skipping paste block", "block", i, "reason", br.Reason)
		case BlockErrored:
			p.logger().Debug("Failed to decode paste block", "block", i, "error", br.Err)
		}
	}

	team, err := p.assemble(members, meta)
	if err != nil {
		return models.Fail(err)
	}
	return models.Ok(team)
}

// assemble builds the team record; the timestamp is taken here, once per team
func (p *Parser) assemble(members []models.TeamMember, meta *Metadata) (*models.Team, error) {
	if len(members) == 0 {
		return nil, ErrNoEntries
	}
	if meta == nil {
		meta = &Metadata{}
	}

	return &models.Team{
		Title:   meta.Title,
		Author:  meta.Author,
		Format:  normalizeFormat(meta.Format),
		Pokemon: members,
		Metadata: models.TeamMetadata{
			Source:      models.SourcePokepaste,
			ParsedAt:    p.now().UTC().Truncate(time.Millisecond),
			OriginalURL: meta.OriginalURL,
		},
	}, nil
}

// normalizeFormat strips a leading literal "Format: "
func normalizeFormat(format string) string {
	return strings.TrimPrefix(format, formatPrefix)
}

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

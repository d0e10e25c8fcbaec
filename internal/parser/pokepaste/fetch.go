package pokepaste

import (
	"context"
	"errors"

	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

// ParseURL fetches a paste and decodes it. The paste notes are used as the format label.
func ParseURL(ctx context.Context, f Fetcher, locator string) models.Result {
	return defaultParser.ParseURL(ctx, f, locator)
}

func (p *Parser) ParseURL(ctx context.Context, f Fetcher, locator string) models.Result {
	doc, err := f.FetchDocument(ctx, locator)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return models.Fail(te)
		}
		return models.Fail(&UnexpectedError{Op: "parse url", Err: err})
	}

	return p.ParseText(doc.Paste, &Metadata{
		Title:       doc.Title,
		Author:      doc.Author,
		Format:      doc.Notes,
		OriginalURL: locator,
	})
}

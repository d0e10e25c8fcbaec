package pokepaste

import (
	"regexp"
	"strings"
)

var (
	blockSeparator = regexp.MustCompile(`\r?\n\r?\n`)
	lineSeparator  = regexp.MustCompile(`\r?\n`)
)

// SplitBlocks splits a document into blank-line separated blocks in source order.
// Whitespace-only blocks are dropped; blocks are not trimmed otherwise.
func SplitBlocks(text string) []string {
	parts := blockSeparator.Split(text, -1)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		blocks = append(blocks, p)
	}
	return blocks
}

// splitLines returns the non-blank lines of a block
func splitLines(block string) []string {
	raw := lineSeparator.Split(block, -1)
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

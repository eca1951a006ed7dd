// Package axy reads and writes astrometry.net field files: FITS binary
// tables with two 32-bit float columns, X and Y, one row per reference
// star. Record and block handling follows the FITS standard directly
// rather than binding a C library: 80-byte header cards, 36 cards per
// 2880-byte block, big-endian data padded to a whole block.
package axy

import (
	"fmt"
	"strings"
)

const (
	blockSize     = 2880
	cardSize      = 80
	cardsPerBlock = blockSize / cardSize

	// One row is two big-endian IEEE float32 values.
	rowSize = 8
)

// Row is one reference-star position.
type Row struct {
	X float32
	Y float32
}

func (r Row) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", r.X, r.Y)
}

// Table is the decoded contents of an axy file.
type Table struct {
	Rows []Row
}

// card formats one 80-byte header record in FITS fixed format: the value,
// already rendered, right-justified to column 30, then an optional comment.
func card(keyword, value, comment string) string {
	s := fmt.Sprintf("%-8s= %20s", keyword, value)
	if comment != "" {
		s += " / " + comment
	}
	if len(s) > cardSize {
		s = s[:cardSize]
	}
	return s + strings.Repeat(" ", cardSize-len(s))
}

// stringCard formats a header record with a quoted string value, padded to
// the standard minimum of eight characters inside the quotes.
func stringCard(keyword, value, comment string) string {
	quoted := fmt.Sprintf("'%-8s'", value)
	s := fmt.Sprintf("%-8s= %s", keyword, quoted)
	if comment != "" {
		s += " / " + comment
	}
	if len(s) > cardSize {
		s = s[:cardSize]
	}
	return s + strings.Repeat(" ", cardSize-len(s))
}

// endCard is the END record padded to a full card.
func endCard() string {
	return "END" + strings.Repeat(" ", cardSize-3)
}

// padHeader pads a sequence of cards with blank records to a whole block.
func padHeader(cards []string) []byte {
	n := len(cards)
	rem := n % cardsPerBlock
	if rem != 0 {
		blank := strings.Repeat(" ", cardSize)
		for i := rem; i < cardsPerBlock; i++ {
			cards = append(cards, blank)
		}
	}
	return []byte(strings.Join(cards, ""))
}

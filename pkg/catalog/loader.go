package catalog

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"starsieve/pkg/errors"
	"starsieve/pkg/logging"
)

// Column order of a catalog record. Extra trailing columns are ignored.
const numFields = 5

// Loader parses catalog text records into ranked candidates.
type Loader struct {
	Filter Filter
	Log    zerolog.Logger
}

// NewLoader creates a Loader with the given filter and no log output.
func NewLoader(filter Filter) *Loader {
	return &Loader{Filter: filter, Log: logging.Nop}
}

// Load reads a catalog file and returns the filtered candidate list,
// brightest first. An unreadable file yields a LoadError; an empty or
// fully rejected catalog yields an empty list and no error.
func (l *Loader) Load(path string) ([]Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError(path, err)
	}
	defer f.Close()

	cands, err := l.Read(f)
	if err != nil {
		return nil, errors.NewLoadError(path, err)
	}
	return cands, nil
}

// Read parses catalog records from r. One record per line, whitespace
// separated: x, y, flux, fwhm, elongation. Lines starting with '#' and
// lines with fewer than five numeric fields are skipped.
func (l *Loader) Read(r io.Reader) ([]Candidate, error) {
	cands := make([]Candidate, 0, 256)
	parsed, rejected, skipped := 0, 0, 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, ok := parseRecord(line)
		if !ok {
			skipped++
			l.Log.Debug().Int("line", lineNo).Msg("skipping malformed record")
			continue
		}
		parsed++

		if !l.Filter.Accept(c) {
			rejected++
			l.Log.Debug().
				Int("line", lineNo).
				Float64("flux", c.Flux).
				Float64("fwhm", c.FWHM).
				Float64("elongation", c.Elongation).
				Msg("rejected by quality filter")
			continue
		}
		cands = append(cands, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Brightest first; stable so equal-flux records keep file order.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Flux > cands[j].Flux
	})

	l.Log.Info().
		Int("parsed", parsed).
		Int("rejected", rejected).
		Int("malformed", skipped).
		Int("candidates", len(cands)).
		Msg("catalog loaded")

	return cands, nil
}

func parseRecord(line string) (Candidate, bool) {
	fields := strings.Fields(line)
	if len(fields) < numFields {
		return Candidate{}, false
	}

	var vals [numFields]float64
	for i := 0; i < numFields; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Candidate{}, false
		}
		vals[i] = v
	}

	return Candidate{
		X:          vals[0],
		Y:          vals[1],
		Flux:       vals[2],
		FWHM:       vals[3],
		Elongation: vals[4],
	}, true
}

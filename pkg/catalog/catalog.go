// Package catalog loads source-extraction catalogs and produces the
// filtered, brightness-ranked candidate list used for reference-star
// selection.
package catalog

import "fmt"

// Candidate is one detected stellar source from a source-extraction run.
type Candidate struct {
	X          float64
	Y          float64
	Flux       float64
	FWHM       float64
	Elongation float64
}

func (c Candidate) String() string {
	return fmt.Sprintf("{X=%f, Y=%f, Flux=%f, FWHM=%f, Elongation=%f}",
		c.X, c.Y, c.Flux, c.FWHM, c.Elongation)
}

// Filter holds the detection-quality thresholds. A candidate survives only
// if it is brighter than MinFlux, wider than MinFWHM, and rounder than
// MaxElongation.
type Filter struct {
	MinFlux       float64
	MinFWHM       float64
	MaxElongation float64
}

// DefaultFilter returns the thresholds tuned for typical wide-field
// survey frames.
func DefaultFilter() Filter {
	return Filter{
		MinFlux:       30.0,
		MinFWHM:       1.0,
		MaxElongation: 2.0,
	}
}

// Accept reports whether a candidate passes the quality filter.
func (f Filter) Accept(c Candidate) bool {
	return c.Flux > f.MinFlux && c.FWHM > f.MinFWHM && c.Elongation < f.MaxElongation
}

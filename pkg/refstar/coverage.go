package refstar

import (
	"sort"

	"starsieve/pkg/catalog"
)

const (
	coverageEdgeFraction = 0.25
	minStarsPerZone      = 3
	minTotalForReliable  = 20
)

// ZonePosition identifies a zone in the 3x3 coverage grid.
type ZonePosition int

const (
	ZoneTopLeft ZonePosition = iota
	ZoneTop
	ZoneTopRight
	ZoneLeft
	ZoneCenter
	ZoneRight
	ZoneBottomLeft
	ZoneBottom
	ZoneBottomRight
)

var zoneLabels = map[ZonePosition]string{
	ZoneTopLeft:     "TL",
	ZoneTop:         "T",
	ZoneTopRight:    "TR",
	ZoneLeft:        "L",
	ZoneCenter:      "Center",
	ZoneRight:       "R",
	ZoneBottomLeft:  "BL",
	ZoneBottom:      "B",
	ZoneBottomRight: "BR",
}

var cornerPositions = []ZonePosition{ZoneTopLeft, ZoneTopRight, ZoneBottomLeft, ZoneBottomRight}

// ZoneOrder lists all zones in display order, top row first.
var ZoneOrder = []ZonePosition{
	ZoneTopLeft, ZoneTop, ZoneTopRight,
	ZoneLeft, ZoneCenter, ZoneRight,
	ZoneBottomLeft, ZoneBottom, ZoneBottomRight,
}

// ZoneData holds per-zone reference-star statistics.
type ZoneData struct {
	Label      string
	StarCount  int
	MedianFlux float64
}

// Coverage summarizes how the reference set is distributed across a 3x3
// grid of image zones. A solve against a set with empty corners tends to
// converge slowly or not at all, so sparse corners are called out.
type Coverage struct {
	Zones       map[ZonePosition]ZoneData
	SparseZones []string
	Reliable    bool
}

// AnalyzeCoverage buckets the reference set into the 3x3 field zones and
// computes per-zone counts and median flux.
func AnalyzeCoverage(refs []catalog.Candidate, width, height int) *Coverage {
	if len(refs) == 0 {
		return nil
	}

	xLo := float64(width) * coverageEdgeFraction
	xHi := float64(width) * (1.0 - coverageEdgeFraction)
	yLo := float64(height) * coverageEdgeFraction
	yHi := float64(height) * (1.0 - coverageEdgeFraction)

	zoneStars := make(map[ZonePosition][]catalog.Candidate)
	for _, pos := range ZoneOrder {
		zoneStars[pos] = make([]catalog.Candidate, 0)
	}
	for _, c := range refs {
		pos := classifyZone(c.X, c.Y, xLo, xHi, yLo, yHi)
		zoneStars[pos] = append(zoneStars[pos], c)
	}

	zones := make(map[ZonePosition]ZoneData)
	for pos, stars := range zoneStars {
		zones[pos] = computeZoneData(pos, stars)
	}

	cov := &Coverage{Zones: zones}

	sparseCorners := 0
	for _, pos := range ZoneOrder {
		if zones[pos].StarCount >= minStarsPerZone {
			continue
		}
		cov.SparseZones = append(cov.SparseZones, zoneLabels[pos])
		for _, corner := range cornerPositions {
			if pos == corner {
				sparseCorners++
			}
		}
	}

	cov.Reliable = len(refs) >= minTotalForReliable && sparseCorners == 0
	return cov
}

func classifyZone(x, y, xLo, xHi, yLo, yHi float64) ZonePosition {
	var col, row int
	if x < xLo {
		col = 0
	} else if x < xHi {
		col = 1
	} else {
		col = 2
	}
	if y < yLo {
		row = 0
	} else if y < yHi {
		row = 1
	} else {
		row = 2
	}

	grid := [3][3]ZonePosition{
		{ZoneTopLeft, ZoneTop, ZoneTopRight},
		{ZoneLeft, ZoneCenter, ZoneRight},
		{ZoneBottomLeft, ZoneBottom, ZoneBottomRight},
	}
	return grid[row][col]
}

func computeZoneData(pos ZonePosition, stars []catalog.Candidate) ZoneData {
	zd := ZoneData{
		Label:     zoneLabels[pos],
		StarCount: len(stars),
	}
	if len(stars) == 0 {
		return zd
	}

	flux := make([]float64, len(stars))
	for i, c := range stars {
		flux[i] = c.Flux
	}
	zd.MedianFlux = medianFloat64(flux)
	return zd
}

func medianFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

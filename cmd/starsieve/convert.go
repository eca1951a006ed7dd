package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"starsieve/pkg/axy"
	"starsieve/pkg/catalog"
	"starsieve/pkg/config"
	"starsieve/pkg/errors"
	"starsieve/pkg/overlay"
	"starsieve/pkg/refstar"
)

var (
	flagWidth    int
	flagHeight   int
	flagOutput   string
	flagOverlay  string
	flagGridSize int
	flagCellCap  int
	flagMinStars int
)

// convertCmd turns a source-extraction catalog into an .axy reference table.
var convertCmd = &cobra.Command{
	Use:   "convert <catalog>",
	Short: "Convert a source-extraction catalog into an .axy reference table",
	Long: `Convert reads a whitespace-separated catalog (x, y, flux, fwhm,
elongation per line), drops implausible detections, thins the remainder
over a uniform grid, and writes the selected star coordinates as a FITS
binary table. If fewer than the minimum number of reference stars
survive, nothing is written and the command fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().IntVar(&flagWidth, "width", 0, "image width in pixels (required)")
	convertCmd.Flags().IntVar(&flagHeight, "height", 0, "image height in pixels (required)")
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (default: catalog path with .axy extension)")
	convertCmd.Flags().StringVar(&flagOverlay, "overlay", "", "also write a JPG visualization of the selection")
	convertCmd.Flags().IntVar(&flagGridSize, "grid-size", 0, "thinning cell size in pixels")
	convertCmd.Flags().IntVar(&flagCellCap, "cell-cap", 0, "max reference stars per grid cell")
	convertCmd.Flags().IntVar(&flagMinStars, "min-stars", 0, "minimum reference stars required to write output")
	_ = convertCmd.MarkFlagRequired("width")
	_ = convertCmd.MarkFlagRequired("height")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if flagWidth <= 0 || flagHeight <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", flagWidth, flagHeight)
	}
	if flagGridSize > 0 {
		cfg.GridSize = flagGridSize
	}
	if flagCellCap > 0 {
		cfg.CellCap = flagCellCap
	}
	if flagMinStars > 0 {
		cfg.MinRefStars = flagMinStars
	}

	catPath := args[0]
	outPath := flagOutput
	if outPath == "" {
		outPath = replaceExt(catPath, ".axy")
	}

	return convert(log, cfg, catPath, outPath, flagOverlay, flagWidth, flagHeight)
}

// convert runs the load -> thin -> gate -> write pipeline.
func convert(log zerolog.Logger, cfg *config.Config, catPath, outPath, overlayPath string, width, height int) error {
	loader := catalog.NewLoader(cfg.Filter())
	loader.Log = log

	cands, err := loader.Load(catPath)
	if err != nil {
		return err
	}

	grid := cfg.Grid()
	refs := refstar.Thin(cands, width, height, grid)
	log.Info().
		Int("candidates", len(cands)).
		Int("selected", len(refs)).
		Int("grid_size", grid.Size).
		Int("cell_cap", grid.CellCap).
		Msg("spatial thinning complete")

	if len(refs) < cfg.MinRefStars {
		return errors.NewInsufficientStarsError(len(refs), cfg.MinRefStars)
	}

	if err := axy.WriteTable(outPath, refs); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Int("rows", len(refs)).Msg("reference table written")

	reportCoverage(log, refs, width, height)

	if overlayPath != "" {
		if err := overlay.RenderSelection(refs, width, height, grid, overlayPath); err != nil {
			// Overlay is a diagnostic extra; a failure doesn't invalidate
			// the table that was already written.
			log.Warn().Err(err).Str("path", overlayPath).Msg("overlay rendering failed")
		} else {
			log.Info().Str("path", overlayPath).Msg("selection overlay written")
		}
	}

	return nil
}

func reportCoverage(log zerolog.Logger, refs []catalog.Candidate, width, height int) {
	cov := refstar.AnalyzeCoverage(refs, width, height)
	if cov == nil {
		return
	}

	ev := log.Info()
	for _, pos := range refstar.ZoneOrder {
		z := cov.Zones[pos]
		ev = ev.Int(z.Label, z.StarCount)
	}
	ev.Msg("zone coverage")

	if !cov.Reliable {
		log.Warn().
			Strs("sparse_zones", cov.SparseZones).
			Msg("reference set is unevenly distributed; solve may be unreliable")
	}
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

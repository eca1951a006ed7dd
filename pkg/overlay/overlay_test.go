package overlay_test

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsieve/pkg/catalog"
	"starsieve/pkg/overlay"
	"starsieve/pkg/refstar"
)

func TestRenderSelectionBytes(t *testing.T) {
	refs := []catalog.Candidate{
		{X: 100, Y: 100, Flux: 900},
		{X: 1500, Y: 800, Flux: 450},
		{X: 2000, Y: 2000, Flux: 40},
	}

	data, err := overlay.RenderSelectionBytes(refs, 2048, 2048, refstar.DefaultGrid())
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 800)
}

func TestRenderSelectionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sel.jpg")
	refs := []catalog.Candidate{{X: 50, Y: 50, Flux: 100}}

	require.NoError(t, overlay.RenderSelection(refs, 1024, 768, refstar.DefaultGrid(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderSelectionEmptySet(t *testing.T) {
	_, err := overlay.RenderSelectionBytes(nil, 512, 512, refstar.DefaultGrid())
	assert.NoError(t, err)
}

func TestRenderSelectionBadDimensions(t *testing.T) {
	_, err := overlay.RenderSelectionBytes(nil, 0, 100, refstar.DefaultGrid())
	assert.Error(t, err)
}

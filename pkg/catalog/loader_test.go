package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsieve/pkg/catalog"
	"starsieve/pkg/errors"
)

const sampleCat = `# SExtractor catalog: x y flux fwhm elongation
102.5  88.1   450.0  2.8  1.05
# a comment in the middle
771.0  12.9    31.1  1.2  1.90
640.2  640.2  900.0  3.1  1.00

5.0    5.0    29.9   2.0  1.10
80.0   90.0   120.0  0.9  1.20
33.3   44.4   500.0  2.5  2.00
not a record at all
12.0   13.0
200.0  300.0  450.0  2.2  1.30  0.002  17.5
`

func newLoader() *catalog.Loader {
	return catalog.NewLoader(catalog.DefaultFilter())
}

func TestReadFiltersAndRanks(t *testing.T) {
	cands, err := newLoader().Read(strings.NewReader(sampleCat))
	require.NoError(t, err)

	// Survivors: flux > 30, fwhm > 1, elongation < 2. The flux=29.9,
	// fwhm=0.9 and elongation=2.0 records fall out, as do the two
	// malformed lines. Extra trailing columns are ignored.
	require.Len(t, cands, 4)

	for _, c := range cands {
		assert.Greater(t, c.Flux, 30.0)
		assert.Greater(t, c.FWHM, 1.0)
		assert.Less(t, c.Elongation, 2.0)
	}

	// Non-increasing flux.
	for i := 1; i < len(cands); i++ {
		assert.GreaterOrEqual(t, cands[i-1].Flux, cands[i].Flux)
	}
	assert.Equal(t, 900.0, cands[0].Flux)
	assert.Equal(t, 31.1, cands[len(cands)-1].Flux)
}

func TestReadStableTieOrder(t *testing.T) {
	in := "1 10 50 2 1\n2 20 50 2 1\n3 30 50 2 1\n"
	cands, err := newLoader().Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cands, 3)

	// Equal flux keeps file order.
	assert.Equal(t, 1.0, cands[0].X)
	assert.Equal(t, 2.0, cands[1].X)
	assert.Equal(t, 3.0, cands[2].X)
}

func TestReadAllRejected(t *testing.T) {
	in := "1 1 10 2 1\n2 2 20 0.5 1\n3 3 40 2 3\n"
	cands, err := newLoader().Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestReadEmpty(t *testing.T) {
	cands, err := newLoader().Read(strings.NewReader("# only comments\n\n"))
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.cat")
	require.NoError(t, os.WriteFile(path, []byte(sampleCat), 0o644))

	cands, err := newLoader().Load(path)
	require.NoError(t, err)
	assert.Len(t, cands, 4)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newLoader().Load(filepath.Join(t.TempDir(), "nope.cat"))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
}

func TestCustomFilter(t *testing.T) {
	loose := catalog.Filter{MinFlux: 0, MinFWHM: 0, MaxElongation: 10}
	cands, err := catalog.NewLoader(loose).Read(strings.NewReader("1 1 5 0.1 5\n"))
	require.NoError(t, err)
	assert.Len(t, cands, 1)
}

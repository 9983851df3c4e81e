package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bulb/engine/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 2, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	return img
}

func TestName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "fractal-1700000000123.png", Name(at))
	assert.Equal(t, "shots/fractal-1.toml", SidecarPath("shots/fractal-1.png"))
}

func TestEncodeDecodes(t *testing.T) {
	data, err := Encode(testImage())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	r, g, b, a := img.At(1, 2).RGBA()
	assert.Equal(t, []uint32{200, 10, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestExporterWritesImageAndSidecar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	var mu sync.Mutex
	var results []Result
	e := NewExporter(WithDir(dir), WithWorkers(1), WithResultHandler(func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}))

	cfg := config.Default()
	cfg.Params.Power = 6
	snap := Snapshot{Camera: cfg.Camera, Params: cfg.Params}
	at := time.UnixMilli(1700000000123)

	e.Save(testImage(), snap, at)
	e.Flush()

	mu.Lock()
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	path := results[0].Path
	mu.Unlock()
	assert.Equal(t, filepath.Join(dir, "fractal-1700000000123.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)

	meta, err := os.ReadFile(SidecarPath(path))
	require.NoError(t, err)
	var back Snapshot
	require.NoError(t, toml.Unmarshal(meta, &back))
	assert.Equal(t, snap, back)
}

func TestExporterDefaults(t *testing.T) {
	e := NewExporter(WithWorkers(-1))
	assert.Equal(t, ".", e.Dir())
}

func TestExporterReportsWriteFailure(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	errs := make(chan error, 1)
	e := NewExporter(WithDir(blocker), WithResultHandler(func(r Result) { errs <- r.Err }))
	e.Save(testImage(), Snapshot{}, time.UnixMilli(1))
	e.Flush()

	assert.Error(t, <-errs)
}

// Package export writes captured FULL-quality frames to disk as PNG files, each
// with a TOML sidecar recording the camera pose and parameters that produced it.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/config"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultWorkers is the number of encoder goroutines when none is configured.
	DefaultWorkers = 2

	filePrefix = "fractal-"
	imageExt   = ".png"
	sidecarExt = ".toml"
)

// Snapshot is the state a frame was rendered with.
type Snapshot struct {
	Camera config.CameraConfig `toml:"camera"`
	Params config.ParamsConfig `toml:"params"`
}

// Result reports the outcome of one export.
type Result struct {
	// Path is the PNG file, set even when writing failed.
	Path string
	Err  error
}

// Exporter encodes and writes frames off the render loop.
type Exporter interface {
	// Save queues img for writing. It returns immediately.
	//
	// Parameters:
	//   - img: the captured frame, which must not be modified afterwards
	//   - snap: the state the frame was rendered with
	//   - at: the capture time, used for the file name
	Save(img image.Image, snap Snapshot, at time.Time)

	// Flush blocks until every queued export has finished.
	Flush()

	// Dir returns the output directory.
	Dir() string
}

type exporter struct {
	dir      string
	workers  int
	pool     worker.DynamicWorkerPool
	wg       sync.WaitGroup
	mu       sync.Mutex
	nextID   int
	onResult func(Result)
}

var _ Exporter = &exporter{}

// NewExporter creates an Exporter backed by a worker pool.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Exporter: the exporter
func NewExporter(options ...ExporterOption) Exporter {
	e := &exporter{
		workers: DefaultWorkers,
	}
	for _, option := range options {
		option(e)
	}
	e.dir = common.Coalesce(e.dir, ".")
	if e.workers <= 0 {
		e.workers = DefaultWorkers
	}
	e.pool = worker.NewDynamicWorkerPool(e.workers, 64, 1*time.Second)
	return e
}

func (e *exporter) Dir() string {
	return e.dir
}

func (e *exporter) Save(img image.Image, snap Snapshot, at time.Time) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.mu.Unlock()

	path := filepath.Join(e.dir, Name(at))
	e.wg.Add(1)
	e.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer e.wg.Done()
			err := write(path, img, snap)
			e.report(Result{Path: path, Err: err})
			return path, err
		},
	})
}

func (e *exporter) Flush() {
	e.wg.Wait()
}

func (e *exporter) report(r Result) {
	if r.Err != nil {
		slog.Error("export failed", "path", r.Path, "error", r.Err)
	} else {
		slog.Info("exported frame", "path", r.Path)
	}
	if e.onResult != nil {
		e.onResult(r)
	}
}

// Name returns the file name for a frame captured at t.
//
// Parameters:
//   - t: the capture time
//
// Returns:
//   - string: "fractal-<unix milliseconds>.png"
func Name(t time.Time) string {
	return filePrefix + strconv.FormatInt(t.UnixMilli(), 10) + imageExt
}

// SidecarPath returns the TOML path paired with a PNG path.
//
// Parameters:
//   - imagePath: the PNG file path
//
// Returns:
//   - string: the same path with a .toml extension
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, imageExt) + sidecarExt
}

// Encode returns img as PNG bytes.
//
// Parameters:
//   - img: the image to encode
//
// Returns:
//   - []byte: the PNG data
//   - error: an error if encoding fails
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func write(path string, img image.Image, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	data, err := Encode(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	meta, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode sidecar: %w", err)
	}
	if err := os.WriteFile(SidecarPath(path), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SidecarPath(path), err)
	}
	return nil
}

package export

// ExporterOption is a functional option for configuring an Exporter.
type ExporterOption func(*exporter)

// WithDir sets the output directory. An empty dir means the working directory.
//
// Parameters:
//   - dir: the directory frames are written to
//
// Returns:
//   - ExporterOption: functional option to set the directory
func WithDir(dir string) ExporterOption {
	return func(e *exporter) {
		e.dir = dir
	}
}

// WithWorkers sets how many frames may be encoded concurrently.
//
// Parameters:
//   - n: the worker count, non-positive values select DefaultWorkers
//
// Returns:
//   - ExporterOption: functional option to set the worker count
func WithWorkers(n int) ExporterOption {
	return func(e *exporter) {
		e.workers = n
	}
}

// WithResultHandler registers a callback run on the worker after each export.
//
// Parameters:
//   - fn: receives the outcome of each export
//
// Returns:
//   - ExporterOption: functional option to set the result handler
func WithResultHandler(fn func(Result)) ExporterOption {
	return func(e *exporter) {
		e.onResult = fn
	}
}

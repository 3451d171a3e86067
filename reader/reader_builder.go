package reader

import "github.com/JordanEmme/obj-reader/mesh"

// ReaderBuilderOption is a functional option for configuring a Reader via NewReader.
type ReaderBuilderOption func(*reader)

// WithWorkers is an option builder that sets the number of workers used
// by ReadAll for parallel decoding. Defaults to NumCPU-1 (minimum 1).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - ReaderBuilderOption: a function that applies the worker count to a reader
func WithWorkers(n int) ReaderBuilderOption {
	return func(r *reader) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithDiagnosticHandler is an option builder that sets the sink for
// non-fatal parse findings (unrecognized directives, degenerate faces).
// Without a handler, diagnostics are dropped.
//
// The handler may be called from multiple goroutines when ReadAll is
// used; it must be safe for concurrent use.
//
// Parameters:
//   - fn: the diagnostic sink
//
// Returns:
//   - ReaderBuilderOption: a function that applies the handler to a reader
func WithDiagnosticHandler(fn func(Diagnostic)) ReaderBuilderOption {
	return func(r *reader) {
		r.onDiagnostic = fn
	}
}

// WithMesh is an option builder that pre-populates the mesh cache.
//
// Parameters:
//   - key: the cache key for the mesh
//   - m: the mesh to cache
//
// Returns:
//   - ReaderBuilderOption: a function that applies the mesh option to a reader
func WithMesh(key string, m *mesh.Mesh) ReaderBuilderOption {
	return func(r *reader) {
		r.meshCache[key] = m
	}
}

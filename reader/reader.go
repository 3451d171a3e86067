package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/JordanEmme/obj-reader/mesh"
)

// ReaderBackendType identifies the mesh file format backend to use.
type ReaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ reader backend.
	BackendTypeOBJ ReaderBackendType = iota
)

// reader is the implementation of the Reader interface.
type reader struct {
	mu sync.RWMutex

	meshCache map[string]*mesh.Mesh

	backend readerBackend

	onDiagnostic func(Diagnostic)

	workers  int
	readPool worker.DynamicWorkerPool
}

// Reader defines the public-facing interface for decoding and caching
// mesh files. It abstracts the file format behind a generic backend and
// keeps a cache of previously decoded meshes.
//
// A single Read call owns its line buffer and stream cursor for its
// entire duration, so one stream must never be fed to two concurrent
// reads; independent files may be read fully in parallel.
type Reader interface {
	// Read decodes a mesh file and caches the result. If the mesh is
	// already cached (by file path), the cached mesh is returned. The
	// backend is selected by file extension (.obj → OBJ backend); paths
	// with any other extension fail with ErrNotObjExtension before the
	// file is opened.
	//
	// On a malformed line the returned error wraps a MalformedLineError
	// and the returned mesh is the partial fill up to the line
	// preceding the failure; callers must discard it.
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - *mesh.Mesh: the decoded and cached mesh
	//   - error: error if decoding fails
	Read(path string) (*mesh.Mesh, error)

	// ReadReader decodes a mesh from a seekable stream and caches it by
	// the given name. The stream is consumed twice (sizing pass, then
	// rewind and decode pass), which is why an io.ReadSeeker is
	// required rather than a plain io.Reader.
	//
	// Parameters:
	//   - name: the cache key for the decoded mesh
	//   - rs: the seekable stream providing OBJ text
	//
	// Returns:
	//   - *mesh.Mesh: the decoded mesh
	//   - error: error if decoding fails
	ReadReader(name string, rs io.ReadSeeker) (*mesh.Mesh, error)

	// ReadAll decodes several mesh files in parallel, one worker per
	// file. Each decode owns its own stream and buffers, so files never
	// contend with each other. Successfully decoded meshes are cached
	// and returned keyed by path; the first failure is returned after
	// all files have been attempted.
	//
	// Parameters:
	//   - paths: the file paths to decode
	//
	// Returns:
	//   - map[string]*mesh.Mesh: the decoded meshes keyed by path
	//   - error: the first error encountered, if any
	ReadAll(paths []string) (map[string]*mesh.Mesh, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *mesh.Mesh: the cached mesh or nil
	Get(name string) *mesh.Mesh

	// Meshes returns the full mesh cache.
	//
	// Returns:
	//   - map[string]*mesh.Mesh: all cached meshes keyed by name
	Meshes() map[string]*mesh.Mesh
}

var _ Reader = &reader{}

// NewReader creates a new Reader instance with the specified backend
// type and options applied.
//
// Parameters:
//   - backendType: the type of reader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of ReaderBuilderOption functions to configure the Reader
//
// Returns:
//   - Reader: a new instance of Reader configured with the provided backend and options
func NewReader(backendType ReaderBackendType, options ...ReaderBuilderOption) Reader {
	r := &reader{
		mu:        sync.RWMutex{},
		meshCache: make(map[string]*mesh.Mesh),
		workers:   max(runtime.NumCPU()-1, 1),
	}

	switch backendType {
	case BackendTypeOBJ:
		r.backend = newOBJReaderBackend()
	}

	for _, option := range options {
		option(r)
	}

	// Initialize the read pool after options so WithWorkers can override
	// the default. Queue size of 256 accommodates typical batch sizes
	// with headroom.
	r.readPool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)

	return r
}

func (r *reader) Read(path string) (*mesh.Mesh, error) {
	r.mu.RLock()
	if cached, ok := r.meshCache[path]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	backend, err := r.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	m, err := backend.Decode(path, r.onDiagnostic)
	if err != nil {
		return m, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.mu.Lock()
	r.meshCache[path] = m
	r.mu.Unlock()

	return m, nil
}

func (r *reader) ReadReader(name string, rs io.ReadSeeker) (*mesh.Mesh, error) {
	r.mu.RLock()
	if cached, ok := r.meshCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	m, err := r.backend.DecodeReader(name, rs, r.onDiagnostic)
	if err != nil {
		return m, fmt.Errorf("failed to read from reader %q: %w", name, err)
	}

	r.mu.Lock()
	r.meshCache[name] = m
	r.mu.Unlock()

	return m, nil
}

func (r *reader) ReadAll(paths []string) (map[string]*mesh.Mesh, error) {
	meshes := make(map[string]*mesh.Mesh, len(paths))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	// Workers are reused across batches (no goroutine spawn overhead).
	// A WaitGroup provides the per-batch barrier since pool.Wait()
	// blocks until workers idle-exit.
	for i, path := range paths {
		wg.Add(1)
		pCap := path // capture for closure
		r.readPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				m, err := r.Read(pCap)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return nil, err
				}
				meshes[pCap] = m
				return nil, nil
			},
		})
	}
	wg.Wait()

	if firstErr != nil {
		return meshes, firstErr
	}
	return meshes, nil
}

func (r *reader) Get(name string) *mesh.Mesh {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meshCache[name]
}

func (r *reader) Meshes() map[string]*mesh.Mesh {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*mesh.Mesh, len(r.meshCache))
	for k, v := range r.meshCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate reader backend based on the file
// extension. Currently only Wavefront OBJ is supported.
func (r *reader) resolveBackend(path string) (readerBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return r.backend, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotObjExtension, path)
	}
}

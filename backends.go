package glref

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
)

// BackendReference is the name of the software reference backend.
const BackendReference = "reference"

// BackendDriver is the name a real-driver context registers under.
const BackendDriver = "driver"

// Factory creates a Context from a configuration.
type Factory func(cfg Config, opts ...Option) (Context, error)

// backends holds the registered context factories. A registered driver
// backend is preferred over the reference implementation.
var backends = gpucontext.NewRegistry[Factory](
	gpucontext.WithPriority(BackendDriver, BackendReference),
)

func init() {
	RegisterBackend(BackendReference, func(cfg Config, opts ...Option) (Context, error) {
		c, err := NewReferenceContext(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// RegisterBackend registers a context factory under name, replacing any
// previous registration.
func RegisterBackend(name string, f Factory) {
	backends.Register(name, func() Factory { return f })
}

// UnregisterBackend removes a context factory.
func UnregisterBackend(name string) {
	backends.Unregister(name)
}

// AvailableBackends returns the registered backend names in sorted order.
func AvailableBackends() []string {
	names := backends.Available()
	slices.Sort(names)
	return names
}

// NewContext creates a context from the named backend. An empty name
// selects the highest-priority registered backend.
func NewContext(name string, cfg Config, opts ...Option) (Context, error) {
	var f Factory
	if name == "" {
		f = backends.Best()
	} else {
		f = backends.Get(name)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return f(cfg, opts...)
}

// referenceAdapter describes the reference implementation the way a GPU
// adapter is described.
var referenceAdapter = gpucontext.AdapterInfo{
	Name: "glref software reference rasterizer",
	Type: gpucontext.AdapterTypeSoftware,
}

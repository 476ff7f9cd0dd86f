package confsource

import (
	"context"

	"github.com/kart-io/etcdconf/pkg/etcdv2"
)

// DefaultOrdinal is assigned to sources that do not request a specific
// merge position.
const DefaultOrdinal = 100

// PropertySource supplies a flat snapshot of configuration properties.
// Implementations load from a backend (etcd, files, environment) and
// must be safe for concurrent use.
type PropertySource interface {
	// Name identifies the source, e.g. "[etcd]http://127.0.0.1:4001".
	Name() string

	// Ordinal drives merge order: sources with higher ordinals override
	// entries contributed by lower ones.
	Ordinal() int

	// GetProperties returns the source's current properties, including
	// any _key.* metadata companions. Failures are encoded into the map
	// as _key.error entries rather than returned out of band, so a
	// broken backend never takes the whole configuration down.
	GetProperties(ctx context.Context) map[string]string
}

// SourceOption configures an EtcdSource.
type SourceOption func(*EtcdSource)

// WithOrdinal sets the source's merge ordinal.
func WithOrdinal(ordinal int) SourceOption {
	return func(s *EtcdSource) {
		s.ordinal = ordinal
	}
}

// EtcdSource is a PropertySource backed by an etcd v2 accessor. Each
// GetProperties call flattens the configured root directory into one
// map; nothing is cached between calls.
type EtcdSource struct {
	accessor  *etcdv2.Accessor
	directory string
	recursive bool
	ordinal   int
}

// NewEtcdSource creates a property source that flattens directory (and,
// if recursive, everything below it) on every read.
func NewEtcdSource(accessor *etcdv2.Accessor, directory string, recursive bool, opts ...SourceOption) *EtcdSource {
	s := &EtcdSource{
		accessor:  accessor,
		directory: directory,
		recursive: recursive,
		ordinal:   DefaultOrdinal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the accessor's source marker.
func (s *EtcdSource) Name() string {
	return s.accessor.Source()
}

// Ordinal returns the source's merge ordinal.
func (s *EtcdSource) Ordinal() int {
	return s.ordinal
}

// GetProperties flattens the configured directory into a property map.
func (s *EtcdSource) GetProperties(ctx context.Context) map[string]string {
	return s.accessor.GetProperties(ctx, s.directory, s.recursive).Map()
}

// Get fetches a single key through the underlying accessor, bypassing
// the directory flattening.
func (s *EtcdSource) Get(ctx context.Context, key string) *etcdv2.Result {
	return s.accessor.Get(ctx, key)
}

package confsource

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider owns the process-wide current Configuration. It evaluates the
// chain of registered property sources into a snapshot and lets a caller
// swap in a replacement. All methods are safe for concurrent use.
type Provider struct {
	mu      sync.RWMutex
	sources []PropertySource
	current Configuration
}

var (
	defaultProvider *Provider
	defaultOnce     sync.Once
)

// Default returns the package-level provider instance, created empty on
// first use.
func Default() *Provider {
	defaultOnce.Do(func() {
		defaultProvider = NewProvider()
	})
	return defaultProvider
}

// NewProvider creates a Provider over the given sources. The initial
// configuration is an empty snapshot until Reload is called.
func NewProvider(sources ...PropertySource) *Provider {
	p := &Provider{
		sources: append([]PropertySource(nil), sources...),
		current: NewConfiguration(nil),
	}
	return p
}

// RegisterSource adds a property source to the provider's chain. The
// change takes effect on the next Reload.
func (p *Provider) RegisterSource(s PropertySource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources = append(p.sources, s)
}

// Sources returns the registered sources in merge order (ascending
// ordinal).
func (p *Provider) Sources() []PropertySource {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := append([]PropertySource(nil), p.sources...)
	sortSources(out)
	return out
}

// GetConfiguration returns the current configuration snapshot.
func (p *Provider) GetConfiguration() Configuration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// SetConfiguration replaces the current configuration. A nil
// configuration is rejected.
func (p *Provider) SetConfiguration(c Configuration) error {
	if c == nil {
		return fmt.Errorf("configuration must not be nil")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = c
	return nil
}

// Configurable reports whether SetConfiguration is supported. This
// implementation always is.
func (p *Provider) Configurable() bool {
	return true
}

// Reload evaluates all registered sources and installs the merged result
// as the current configuration, returning it.
func (p *Provider) Reload(ctx context.Context) Configuration {
	cfg := p.CreateConfiguration(ctx, p.Sources()...)
	p.mu.Lock()
	p.current = cfg
	p.mu.Unlock()
	return cfg
}

// CreateConfiguration merges the given sources into a fresh snapshot
// without touching the provider's current configuration. Sources are
// evaluated in ascending ordinal order, so higher ordinals override.
func (p *Provider) CreateConfiguration(ctx context.Context, sources ...PropertySource) Configuration {
	ordered := append([]PropertySource(nil), sources...)
	sortSources(ordered)

	merged := make(map[string]string)
	for _, s := range ordered {
		for k, v := range s.GetProperties(ctx) {
			merged[k] = v
		}
	}
	return NewConfiguration(merged)
}

// sortSources orders sources by ascending ordinal, keeping registration
// order for equal ordinals.
func sortSources(sources []PropertySource) {
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Ordinal() < sources[j].Ordinal()
	})
}

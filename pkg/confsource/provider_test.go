package confsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource is a PropertySource over a fixed map, for tests.
type staticSource struct {
	name    string
	ordinal int
	props   map[string]string
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Ordinal() int { return s.ordinal }

func (s *staticSource) GetProperties(context.Context) map[string]string { return s.props }

func TestProviderStartsEmpty(t *testing.T) {
	p := NewProvider()
	cfg := p.GetConfiguration()
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Properties())
}

func TestProviderReloadMergesByOrdinal(t *testing.T) {
	low := &staticSource{name: "low", ordinal: 10, props: map[string]string{
		"shared": "from-low",
		"only":   "low-value",
	}}
	high := &staticSource{name: "high", ordinal: 20, props: map[string]string{
		"shared": "from-high",
	}}

	// Registration order must not matter, only the ordinal does.
	p := NewProvider(high, low)
	cfg := p.Reload(context.Background())

	assert.Equal(t, "from-high", cfg.GetOrDefault("shared", ""))
	assert.Equal(t, "low-value", cfg.GetOrDefault("only", ""))
	assert.Same(t, cfg, p.GetConfiguration())
}

func TestProviderRegisterSource(t *testing.T) {
	p := NewProvider()
	p.RegisterSource(&staticSource{name: "a", ordinal: DefaultOrdinal, props: map[string]string{"k": "v"}})

	cfg := p.Reload(context.Background())
	v, ok := cfg.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestProviderSetConfiguration(t *testing.T) {
	p := NewProvider()

	err := p.SetConfiguration(nil)
	require.Error(t, err)

	replacement := NewConfiguration(map[string]string{"k": "v"})
	require.NoError(t, p.SetConfiguration(replacement))
	assert.Same(t, replacement, p.GetConfiguration())
	assert.True(t, p.Configurable())
}

func TestCreateConfigurationDoesNotInstall(t *testing.T) {
	p := NewProvider()
	src := &staticSource{name: "a", ordinal: 1, props: map[string]string{"k": "v"}}

	cfg := p.CreateConfiguration(context.Background(), src)
	assert.Equal(t, "v", cfg.GetOrDefault("k", ""))
	assert.Empty(t, p.GetConfiguration().Properties())
}

func TestDefaultProviderIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestConfigurationSnapshotIsImmutable(t *testing.T) {
	props := map[string]string{"k": "v"}
	cfg := NewConfiguration(props)

	// Mutating the input after construction must not leak in.
	props["k"] = "changed"
	assert.Equal(t, "v", cfg.GetOrDefault("k", ""))

	// Mutating the copy returned by Properties must not leak in either.
	cfg.Properties()["k"] = "changed"
	assert.Equal(t, "v", cfg.GetOrDefault("k", ""))
}

func TestOperatorApply(t *testing.T) {
	base := NewConfiguration(map[string]string{"k": "v"})

	upper := Operator(func(c Configuration) Configuration {
		props := c.Properties()
		props["decorated"] = "yes"
		return NewConfiguration(props)
	})

	out := Apply(base, nil, upper)
	assert.Equal(t, "yes", out.GetOrDefault("decorated", ""))
	assert.Equal(t, "v", out.GetOrDefault("k", ""))

	// No operators returns the input unchanged.
	assert.Same(t, base, Apply(base))
}

package confsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/etcdconf/pkg/etcdv2"
)

func newEtcdTestSource(t *testing.T, handler http.HandlerFunc, opts ...SourceOption) *EtcdSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	acc, err := etcdv2.New(srv.URL)
	require.NoError(t, err)
	return NewEtcdSource(acc, "config", true, opts...)
}

func TestEtcdSourceGetProperties(t *testing.T) {
	src := newEtcdTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/keys/config", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("recursive"))
		w.Write([]byte(`{
			"action": "get",
			"node": {"key": "/config", "dir": true, "nodes": [
				{"key": "/config/app/name", "value": "demo", "createdIndex": 1, "modifiedIndex": 1}
			]}
		}`))
	})

	props := src.GetProperties(context.Background())
	assert.Equal(t, "demo", props["config/app/name"])
	assert.Equal(t, src.Name(), props["_config/app/name.source"])
}

func TestEtcdSourceFailureEncodedAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	acc, err := etcdv2.New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	src := NewEtcdSource(acc, "config", true)
	props := src.GetProperties(context.Background())

	assert.Len(t, props, 2)
	assert.Contains(t, props, "_config.source")
	assert.Contains(t, props, "_config.error")
}

func TestEtcdSourceOrdinal(t *testing.T) {
	acc, err := etcdv2.New("http://127.0.0.1:4001")
	require.NoError(t, err)

	assert.Equal(t, DefaultOrdinal, NewEtcdSource(acc, "/", true).Ordinal())
	assert.Equal(t, 42, NewEtcdSource(acc, "/", true, WithOrdinal(42)).Ordinal())
}

func TestEtcdSourceGet(t *testing.T) {
	src := newEtcdTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/keys/config/app/name", r.URL.Path)
		w.Write([]byte(`{"action":"get","node":{"key":"/config/app/name","value":"demo"}}`))
	})

	res := src.Get(context.Background(), "config/app/name")
	require.False(t, res.Failed())
	v, ok := res.Value()
	require.True(t, ok)
	assert.Equal(t, "demo", v)
}

func TestProviderWithEtcdSource(t *testing.T) {
	src := newEtcdTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"action": "get",
			"node": {"key": "/config", "dir": true, "nodes": [
				{"key": "/config/feature", "value": "on"}
			]}
		}`))
	})

	p := NewProvider(src)
	cfg := p.Reload(context.Background())

	assert.Equal(t, "on", cfg.GetOrDefault("config/feature", ""))
}

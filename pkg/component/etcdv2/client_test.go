package etcdv2

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	etcdv2options "github.com/kart-io/etcdconf/pkg/options/etcdv2"
	"github.com/kart-io/etcdconf/pkg/storage"
)

// TestClientImplementsStorageInterface verifies that Client implements storage.Client
func TestClientImplementsStorageInterface(_ *testing.T) {
	// This is a compile-time check
	var _ storage.Client = (*Client)(nil)
}

// TestFactoryImplementsStorageFactory verifies that Factory implements storage.Factory
func TestFactoryImplementsStorageFactory(_ *testing.T) {
	// This is a compile-time check
	var _ storage.Factory = (*Factory)(nil)
}

func newVersionServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/version" {
			w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(url string) *etcdv2options.Options {
	opts := etcdv2options.NewOptions()
	opts.ServerURL = url
	return opts
}

func TestNewWithContext(t *testing.T) {
	srv := newVersionServer(t, `{"etcdserver":"2.3.8"}`)

	client, err := NewWithContext(context.Background(), testOptions(srv.URL))
	if err != nil {
		t.Fatalf("NewWithContext() error = %v", err)
	}
	defer client.Close()

	if client.Name() != "etcdv2" {
		t.Errorf("Name() = %q, want %q", client.Name(), "etcdv2")
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := client.Health()(); err != nil {
		t.Errorf("Health()() error = %v", err)
	}
}

func TestNewWithContextValidation(t *testing.T) {
	tests := []struct {
		name string
		opts *etcdv2options.Options
	}{
		{
			name: "nil options",
			opts: nil,
		},
		{
			name: "invalid URL",
			opts: testOptions("not-a-url"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWithContext(context.Background(), tt.opts); err == nil {
				t.Error("NewWithContext() expected error, got nil")
			}
		})
	}
}

func TestNewWithContextUnreachable(t *testing.T) {
	srv := newVersionServer(t, "x")
	url := srv.URL
	srv.Close()

	if _, err := NewWithContext(context.Background(), testOptions(url)); err == nil {
		t.Error("NewWithContext() should fail when the server is unreachable")
	}
}

func TestCheckHealth(t *testing.T) {
	srv := newVersionServer(t, `{"etcdserver":"2.3.8"}`)

	client, err := NewWithContext(context.Background(), testOptions(srv.URL))
	if err != nil {
		t.Fatalf("NewWithContext() error = %v", err)
	}
	defer client.Close()

	status := client.CheckHealth(context.Background())
	if !status.Healthy {
		t.Errorf("CheckHealth() unhealthy: %v", status.Error)
	}
	if status.Name != "etcdv2" {
		t.Errorf("status.Name = %q", status.Name)
	}
	if status.Latency <= 0 {
		t.Error("status.Latency should be positive")
	}

	srv.Close()
	status = client.CheckHealth(context.Background())
	if status.Healthy {
		t.Error("CheckHealth() should report unhealthy after server shutdown")
	}
	if status.Error == nil {
		t.Error("status.Error should be set when unhealthy")
	}
}

func TestFactoryCreate(t *testing.T) {
	srv := newVersionServer(t, `{"etcdserver":"2.3.8"}`)

	factory := NewFactory(testOptions(srv.URL))
	client, err := factory.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer client.Close()

	if client.Name() != "etcdv2" {
		t.Errorf("Name() = %q", client.Name())
	}
}

func TestMustCreatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCreate() should panic on failure")
		}
	}()

	factory := NewFactory(testOptions("not-a-url"))
	factory.MustCreate(context.Background())
}

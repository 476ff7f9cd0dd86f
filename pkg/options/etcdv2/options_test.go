package etcdv2

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestNewOptions(t *testing.T) {
	opts := NewOptions()
	if err := opts.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("completed default options should be valid, got error: %v", err)
	}
}

func TestCompleteDefaults(t *testing.T) {
	opts := NewOptions()
	if err := opts.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if opts.ServerURL != defaultServerURL {
		t.Errorf("ServerURL = %q, want %q", opts.ServerURL, defaultServerURL)
	}
}

func TestCompleteFromEnvironment(t *testing.T) {
	t.Setenv(EnvServerURL, "http://etcd.internal:4001")

	opts := NewOptions()
	if err := opts.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if opts.ServerURL != "http://etcd.internal:4001" {
		t.Errorf("ServerURL = %q, want env value", opts.ServerURL)
	}
}

func TestCompleteKeepsExplicitURL(t *testing.T) {
	t.Setenv(EnvServerURL, "http://from-env:4001")

	opts := NewOptions()
	opts.ServerURL = "http://explicit:4001"
	if err := opts.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if opts.ServerURL != "http://explicit:4001" {
		t.Errorf("ServerURL = %q, explicit value must win over the environment", opts.ServerURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(o *Options) { o.ServerURL = "http://127.0.0.1:4001" },
		},
		{
			name:    "empty URL",
			mutate:  func(o *Options) {},
			wantErr: true,
		},
		{
			name:    "missing scheme",
			mutate:  func(o *Options) { o.ServerURL = "127.0.0.1:4001" },
			wantErr: true,
		},
		{
			name:    "bad scheme",
			mutate:  func(o *Options) { o.ServerURL = "ftp://127.0.0.1:4001" },
			wantErr: true,
		},
		{
			name: "non-positive timeout",
			mutate: func(o *Options) {
				o.ServerURL = "http://127.0.0.1:4001"
				o.RequestTimeout = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.mutate(opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs, "etcd")

	err := fs.Parse([]string{
		"--etcd.server-url=http://etcd:4001",
		"--etcd.request-timeout=3s",
		"--etcd.directory=/config",
		"--etcd.recursive=false",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if opts.ServerURL != "http://etcd:4001" {
		t.Errorf("ServerURL = %q", opts.ServerURL)
	}
	if opts.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v", opts.RequestTimeout)
	}
	if opts.Directory != "/config" {
		t.Errorf("Directory = %q", opts.Directory)
	}
	if opts.Recursive {
		t.Error("Recursive should be false")
	}
}

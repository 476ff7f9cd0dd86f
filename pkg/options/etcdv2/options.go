// Package etcdv2 defines configuration options for the etcd v2 accessor.
package etcdv2

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/etcdconf/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

const (
	// EnvServerURL is the environment variable consulted by Complete
	// when no server URL was configured explicitly.
	EnvServerURL = "ETCD_URL"

	defaultServerURL = "http://127.0.0.1:4001"
)

// Options defines configuration options for the etcd v2 accessor.
type Options struct {
	// ServerURL is the base endpoint of the etcd server.
	ServerURL string `json:"server-url" mapstructure:"server-url"`

	// RequestTimeout bounds each HTTP round-trip.
	RequestTimeout time.Duration `json:"request-timeout" mapstructure:"request-timeout"`

	// Directory is the root directory flattened into properties.
	Directory string `json:"directory" mapstructure:"directory"`

	// Recursive controls whether directory listings descend into
	// subdirectories.
	Recursive bool `json:"recursive" mapstructure:"recursive"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		ServerURL:      "",
		RequestTimeout: 10 * time.Second,
		Directory:      "/",
		Recursive:      true,
	}
}

// String returns a string representation, safe for logging.
func (o *Options) String() string {
	return fmt.Sprintf("Etcdv2{server-url=%s, request-timeout=%s, directory=%s, recursive=%t}",
		o.ServerURL, o.RequestTimeout, o.Directory, o.Recursive)
}

// Complete fills in any fields not set that are required to have valid
// data. The server URL falls back to the ETCD_URL environment variable
// and then to the local default, so the environment lookup stays out of
// the accessor itself.
func (o *Options) Complete() error {
	if o.ServerURL == "" {
		o.ServerURL = os.Getenv(EnvServerURL)
	}
	if o.ServerURL == "" {
		o.ServerURL = defaultServerURL
	}
	return nil
}

// Validate checks if the options are valid.
// This method is idempotent and has no side effects.
func (o *Options) Validate() error {
	if o.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(o.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", o.ServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server URL %q must be http(s) with a host", o.ServerURL)
	}
	if o.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// AddFlags adds flags for etcd v2 options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	namePrefix := options.Join(prefixes...)
	fs.StringVar(&o.ServerURL, namePrefix+"server-url", o.ServerURL,
		"Etcd server URL (defaults to $"+EnvServerURL+" or "+defaultServerURL+")")
	fs.DurationVar(&o.RequestTimeout, namePrefix+"request-timeout", o.RequestTimeout,
		"Etcd request timeout")
	fs.StringVar(&o.Directory, namePrefix+"directory", o.Directory,
		"Root directory flattened into properties")
	fs.BoolVar(&o.Recursive, namePrefix+"recursive", o.Recursive,
		"Descend into subdirectories when listing")
}

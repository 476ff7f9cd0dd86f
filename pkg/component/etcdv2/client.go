package etcdv2

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/etcdconf/pkg/etcdv2"
	etcdv2options "github.com/kart-io/etcdconf/pkg/options/etcdv2"
	"github.com/kart-io/etcdconf/pkg/storage"
)

// Client wraps an etcdv2.Accessor with the storage.Client interface.
// It provides lifecycle and health semantics while keeping the accessor
// available for direct key-value operations.
type Client struct {
	accessor *etcdv2.Accessor
	opts     *etcdv2options.Options
}

// New creates a new Client from the provided options. It validates the
// options, builds the accessor, and verifies connectivity with a ping.
//
// This is a convenience wrapper around NewWithContext using a default
// initialization timeout.
func New(opts *etcdv2options.Options) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return NewWithContext(ctx, opts)
}

// NewWithContext creates a new Client with the specified context bounding
// the initialization, including the connectivity probe.
//
// Returns an error if:
//   - Options validation fails (e.g. malformed server URL)
//   - The version endpoint cannot be reached
func NewWithContext(ctx context.Context, opts *etcdv2options.Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid etcd options: %w", err)
	}

	acc, err := etcdv2.New(opts.ServerURL, etcdv2.WithTimeout(opts.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd accessor: %w", err)
	}

	client := &Client{
		accessor: acc,
		opts:     opts,
	}

	if err := client.Ping(ctx); err != nil {
		acc.CloseIdleConnections()
		return nil, fmt.Errorf("failed to ping etcd server: %w", err)
	}
	return client, nil
}

// Name returns the backend type name.
// This implements the storage.Client interface.
func (c *Client) Name() string {
	return "etcdv2"
}

// Ping checks the server is reachable by querying its version endpoint.
// The version endpoint is the cheapest call the v2 API offers and needs
// no key-space access, which makes it suitable for health checks.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	if _, err := c.accessor.Version(ctx); err != nil {
		return fmt.Errorf("etcd ping failed: %w", err)
	}
	return nil
}

// Close releases pooled connections held by the accessor. It is safe to
// call Close multiple times.
//
// This implements the storage.Client interface.
func (c *Client) Close() error {
	if c.accessor != nil {
		c.accessor.CloseIdleConnections()
	}
	return nil
}

// Health returns a HealthChecker function for this client.
//
// This implements the storage.Client interface.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}

// Accessor returns the underlying etcd v2 accessor for key-value
// operations not exposed through the storage.Client interface.
//
// Example usage:
//
//	res := client.Accessor().Get(ctx, "message")
//	if !res.Failed() {
//	    value, _ := res.Value()
//	}
func (c *Client) Accessor() *etcdv2.Accessor {
	return c.accessor
}

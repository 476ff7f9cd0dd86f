package etcdv2

import (
	"context"
	"fmt"

	etcdv2options "github.com/kart-io/etcdconf/pkg/options/etcdv2"
	"github.com/kart-io/etcdconf/pkg/storage"
)

// Factory implements the storage.Factory interface for etcd v2 clients.
// It encapsulates client creation and allows dependency injection and
// testing with mock implementations.
type Factory struct {
	opts *etcdv2options.Options
}

// NewFactory creates a new Factory. The provided options are used for
// every client the factory produces.
//
// Example usage:
//
//	opts := etcdv2options.NewOptions()
//	opts.ServerURL = "http://etcd:4001"
//	factory := NewFactory(opts)
//
//	client, err := factory.Create(ctx)
//	if err != nil {
//	    log.Fatalf("failed to create client: %v", err)
//	}
//	defer client.Close()
func NewFactory(opts *etcdv2options.Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new etcd v2 client.
//
// This implements the storage.Factory interface.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	return client, nil
}

// CreateWithOptions creates a new client with specific options, allowing
// differently configured clients from the same factory.
func (f *Factory) CreateWithOptions(ctx context.Context, opts *etcdv2options.Options) (*Client, error) {
	return NewWithContext(ctx, opts)
}

// MustCreate creates a new client and panics if creation fails. Useful
// for initialization code where failure should stop the program.
func (f *Factory) MustCreate(ctx context.Context) *Client {
	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create etcd client: %v", err))
	}
	return client
}

package etcdv2

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/etcdconf/pkg/storage"
)

// CheckHealth performs a health check against the etcd server and
// reports the outcome with latency. Beyond reachability, it verifies the
// version endpoint returns a non-empty body, which guards against a
// wrong endpoint answering 200 with nothing useful.
func (c *Client) CheckHealth(ctx context.Context) storage.HealthStatus {
	status := storage.HealthStatus{
		Name:    c.Name(),
		Healthy: false,
	}

	start := time.Now()

	version, err := c.accessor.Version(ctx)
	status.Latency = time.Since(start)
	if err != nil {
		status.Error = fmt.Errorf("connectivity check failed: %w", err)
		return status
	}
	if version == "" {
		status.Error = fmt.Errorf("version endpoint returned an empty body")
		return status
	}

	status.Healthy = true
	return status
}

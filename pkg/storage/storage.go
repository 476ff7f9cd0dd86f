// Package storage provides unified interfaces for backend clients.
// It defines the core abstractions a backend client (here, the etcd v2
// accessor) must implement so that health checking, connection management
// and graceful shutdown behave consistently across the project.
package storage

import (
	"context"
	"time"
)

// Client is the base interface that all backend clients must implement.
//
// Example usage:
//
//	var client storage.Client = component.New(acc, opts)
//
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer client.Close()
type Client interface {
	// Name returns the backend type name for identification purposes.
	// This should be a lowercase identifier like "etcdv2". The name is
	// used for logging and health check reporting.
	Name() string

	// Ping checks if the connection to the backend is alive. It should
	// perform a lightweight operation to verify connectivity. The
	// context can be used to set timeouts or cancel the ping.
	Ping(ctx context.Context) error

	// Close closes the connection gracefully, releasing all resources.
	// Close should be idempotent and safe to call multiple times.
	Close() error

	// Health returns a HealthChecker function that can be called to
	// check the backend health status without direct access to the
	// client.
	Health() HealthChecker
}

// HealthChecker is a function type that performs a health check.
//
// Example usage:
//
//	checker := client.Health()
//	if err := checker(); err != nil {
//	    log.Printf("health check failed: %v", err)
//	}
type HealthChecker func() error

// HealthStatus represents the result of a health check operation.
type HealthStatus struct {
	// Name identifies the backend instance being checked. It should
	// match the value returned by Client.Name().
	Name string

	// Healthy indicates whether the backend is functioning properly.
	Healthy bool

	// Latency measures how long the health check took to complete.
	// Useful for spotting degradation before outright failure.
	Latency time.Duration

	// Error contains the error details if the health check failed.
	// Nil when Healthy is true.
	Error error
}

// Factory is an interface for creating backend clients. It encapsulates
// the creation logic and allows dependency injection and testing with
// mock implementations.
type Factory interface {
	// Create creates and initializes a new client. The context can be
	// used to bound the initialization. The returned client should be
	// ready to use.
	Create(ctx context.Context) (Client, error)
}

// Options is the base interface all backend configuration options
// implement, so a factory can validate configuration before dialing.
type Options interface {
	// Validate checks if the options are valid and complete.
	Validate() error
}

// Package etcdv2 wires the etcd v2 HTTP accessor into the storage
// component model: a storage.Client implementation around the accessor,
// a Factory for dependency injection, and a detailed health check built
// on the /version endpoint.
package etcdv2

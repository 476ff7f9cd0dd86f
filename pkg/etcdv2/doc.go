// Package etcdv2 implements a thin HTTP accessor for the etcd v2 keys API.
//
// The accessor issues one synchronous round-trip per call and translates
// etcd's nested JSON node representation into a flat string-to-string
// property map augmented with synthetic metadata keys:
//
//	key=value
//	_key.source=[etcd]http://127.0.0.1:4001
//	_key.createdIndex=12
//	_key.modifiedIndex=34
//	_key.ttl=300
//	_key.expiration=2026-09-01T12:00:00Z
//
// Every call returns a typed *Result; callers that need the historical
// "errors become data" contract use Result.Map, which encodes a failure
// as a _key.error entry instead of returning it out of band.
//
// There is no caching, no retry, and no watch support. Each Accessor owns
// a single pooled HTTP client and is safe for concurrent use.
package etcdv2

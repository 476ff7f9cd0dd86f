// Package confsource provides the property-source side of the
// configuration bridge: a PropertySource abstraction producing flat
// string maps, an etcd-backed source over the v2 accessor, an immutable
// Configuration snapshot built by merging sources, and the Provider that
// owns the process-wide current configuration.
//
// Per-operation metadata travels inside the maps as synthetic companion
// keys (_key.source, _key.createdIndex, ...); the merge keeps them
// verbatim so a consuming layer can inspect provenance.
package confsource

package etcdv2

import "strconv"

// Result is the typed outcome of a single accessor call.
//
// On success, Properties holds the flattened key/value pairs plus their
// metadata companions. On failure, Err is set and Properties must not be
// trusted; Map projects the failure into the flat-map compatibility shape.
type Result struct {
	// Key is the key or directory the call was issued for.
	Key string

	// Properties holds the flattened entries produced by a successful call.
	Properties map[string]string

	// Err records the failure, if any.
	Err error

	source string
}

func newResult(key, source string) *Result {
	r := &Result{
		Key:        key,
		Properties: make(map[string]string),
		source:     source,
	}
	// The source marker is known before any network call is made.
	r.Properties[metaKey(key, "source")] = source
	return r
}

func (r *Result) fail(err error) *Result {
	r.Err = err
	return r
}

// Failed reports whether the call producing this result failed.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Value returns the value stored under the requested key, if present.
func (r *Result) Value() (string, bool) {
	v, ok := r.Properties[r.Key]
	return v, ok
}

// Source returns the source marker, "[etcd]" followed by the server URL.
func (r *Result) Source() string {
	return r.source
}

// Map projects the result into the flat string map consumed by the
// configuration framework. A failed call yields exactly two entries, the
// source marker and a _key.error description; nothing parsed from a
// failed round-trip leaks into the projection.
func (r *Result) Map() map[string]string {
	if r.Err != nil {
		return map[string]string{
			metaKey(r.Key, "source"): r.source,
			metaKey(r.Key, "error"):  r.Err.Error(),
		}
	}
	m := make(map[string]string, len(r.Properties))
	for k, v := range r.Properties {
		m[k] = v
	}
	return m
}

// putNodeMeta copies the node's metadata fields into the metadata
// companions of key. Each companion appears only when the field was
// present in the etcd response.
func (r *Result) putNodeMeta(key string, n *node) {
	if n.CreatedIndex != nil {
		r.Properties[metaKey(key, "createdIndex")] = strconv.FormatUint(*n.CreatedIndex, 10)
	}
	if n.ModifiedIndex != nil {
		r.Properties[metaKey(key, "modifiedIndex")] = strconv.FormatUint(*n.ModifiedIndex, 10)
	}
	if n.Expiration != nil {
		r.Properties[metaKey(key, "expiration")] = *n.Expiration
	}
	if n.TTL != nil {
		r.Properties[metaKey(key, "ttl")] = strconv.FormatInt(*n.TTL, 10)
	}
}

// putPrevNodeMeta copies the previous node's metadata and value into the
// _key.prevNode.* companions.
func (r *Result) putPrevNodeMeta(key string, n *node) {
	if n.CreatedIndex != nil {
		r.Properties[metaKey(key, "prevNode.createdIndex")] = strconv.FormatUint(*n.CreatedIndex, 10)
	}
	if n.ModifiedIndex != nil {
		r.Properties[metaKey(key, "prevNode.modifiedIndex")] = strconv.FormatUint(*n.ModifiedIndex, 10)
	}
	if n.Expiration != nil {
		r.Properties[metaKey(key, "prevNode.expiration")] = *n.Expiration
	}
	if n.TTL != nil {
		r.Properties[metaKey(key, "prevNode.ttl")] = strconv.FormatInt(*n.TTL, 10)
	}
	if n.Value != nil {
		r.Properties[metaKey(key, "prevNode.value")] = *n.Value
	}
}

// metaKey builds the synthetic companion key for a property, e.g.
// metaKey("message", "ttl") == "_message.ttl".
func metaKey(key, field string) string {
	return "_" + key + "." + field
}

package etcdv2

import "strings"

// flatten walks an etcd node tree and accumulates flattened entries.
//
// Directory nodes contribute no key=value pair of their own; they only
// descend into their children. Leaf nodes emit key=value (leading path
// separator stripped, inner separators kept) plus metadata companions
// and the per-key source marker. Recursion depth is bounded by the tree
// depth of the JSON document, so no cycle handling is needed.
func (a *Accessor) flatten(res *Result, n *node) {
	if n.Dir {
		for _, child := range n.Nodes {
			a.flatten(res, child)
		}
		return
	}

	key := strings.TrimPrefix(n.Key, "/")
	if n.Value != nil {
		res.Properties[key] = *n.Value
	}
	res.putNodeMeta(key, n)
	res.Properties[metaKey(key, "source")] = a.Source()
}

package etcdv2

// keysResponse is the envelope etcd v2 wraps around every keys API reply.
type keysResponse struct {
	Action   string `json:"action"`
	Node     *node  `json:"node"`
	PrevNode *node  `json:"prevNode"`
}

// node is a single entry in etcd's key space. Directory nodes carry
// dir=true and hang their children off Nodes; leaf nodes carry a value.
// Optional fields are pointers so that absence can be told apart from a
// zero value when projecting metadata.
type node struct {
	Key           string  `json:"key"`
	Value         *string `json:"value"`
	Dir           bool    `json:"dir"`
	CreatedIndex  *uint64 `json:"createdIndex"`
	ModifiedIndex *uint64 `json:"modifiedIndex"`
	TTL           *int64  `json:"ttl"`
	Expiration    *string `json:"expiration"`
	Nodes         []*node `json:"nodes"`
}

package confsource

// Configuration is an immutable snapshot view over merged properties.
type Configuration interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool)

	// GetOrDefault returns the value stored under key, or def when the
	// key is absent.
	GetOrDefault(key, def string) string

	// Properties returns a copy of all entries, metadata companions
	// included. Mutating the returned map does not affect the snapshot.
	Properties() map[string]string
}

// mapConfiguration is the default Configuration implementation, a plain
// map snapshot. The map is copied on construction and on read, so the
// snapshot stays immutable no matter what callers do.
type mapConfiguration struct {
	props map[string]string
}

// NewConfiguration builds a Configuration snapshot from the given
// properties. The input map is copied.
func NewConfiguration(props map[string]string) Configuration {
	c := &mapConfiguration{props: make(map[string]string, len(props))}
	for k, v := range props {
		c.props[k] = v
	}
	return c
}

func (c *mapConfiguration) Get(key string) (string, bool) {
	v, ok := c.props[key]
	return v, ok
}

func (c *mapConfiguration) GetOrDefault(key, def string) string {
	if v, ok := c.props[key]; ok {
		return v
	}
	return def
}

func (c *mapConfiguration) Properties() map[string]string {
	out := make(map[string]string, len(c.props))
	for k, v := range c.props {
		out[k] = v
	}
	return out
}

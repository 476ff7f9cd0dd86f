package confsource

// Operator maps a given Configuration to another Configuration. Operators
// act like decorators; the operated instance may expose restricted or
// otherwise transformed views of the input.
//
// Deprecated: pass plain func(Configuration) Configuration values, or
// compose with Apply.
type Operator func(Configuration) Configuration

// Apply runs the operators over c in order and returns the final
// Configuration. Nil operators are skipped.
func Apply(c Configuration, ops ...Operator) Configuration {
	for _, op := range ops {
		if op == nil {
			continue
		}
		c = op(c)
	}
	return c
}

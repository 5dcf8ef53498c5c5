// Package components defines ECS components attached to rocket entities.
package components

// Lineage records where a rocket came from.
type Lineage struct {
	ID         uint32 // unique across the run
	Generation int    // cohort the rocket was born into, founders are 0
	ParentA    int32  // cohort index of the first parent, -1 for founders
	ParentB    int32  // cohort index of the second parent, -1 for founders
}

// Founder reports whether the rocket was randomly generated.
func (l Lineage) Founder() bool {
	return l.ParentA < 0
}

// Selfed reports whether both parent draws picked the same rocket.
func (l Lineage) Selfed() bool {
	return !l.Founder() && l.ParentA == l.ParentB
}

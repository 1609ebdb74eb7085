package collection

import "math"

// Status reports how close a collection is to its capacity, as the highest
// threshold reached by the used percentage. Anything under Acceptable works
// perfectly well; past that it may be time to prune or split.
type Status int

const (
	Healthy    Status = 0
	Acceptable Status = 60
	Alert      Status = 70
	Warning    Status = 80
	Critical   Status = 90
)

var statusLevels = []Status{Healthy, Acceptable, Alert, Warning, Critical}

func (s Status) String() string {
	switch s {
	case Healthy:
		return "HEALTHY"
	case Acceptable:
		return "ACCEPTABLE"
	case Alert:
		return "ALERT"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// OverflowPolicy decides what happens when inserting a new key into a
// collection already at capacity.
type OverflowPolicy int

const (
	// Reject refuses the insert with ErrCapacityExceeded. The default.
	Reject OverflowPolicy = iota
	// EvictOldest drops the entry with the smallest key to make room.
	EvictOldest
)

func (p OverflowPolicy) String() string {
	if p == EvictOldest {
		return "evict-oldest"
	}
	return "reject"
}

// Meta is the bookkeeping attached to a Collection: identity, capacity,
// overflow policy and an opaque metadata value that is stored alongside the
// entries but never interpreted.
type Meta struct {
	UUID     string
	Capacity int // <= 0 means unbounded
	Policy   OverflowPolicy
	Metadata interface{}
}

// Meta returns a copy of the collection's bookkeeping.
func (c *Collection) Meta() Meta {
	return c.meta
}

func (c *Collection) UUID() string {
	return c.meta.UUID
}

// Capacity returns the maximum entry count, 0 for unbounded.
func (c *Collection) Capacity() int {
	if c.meta.Capacity <= 0 {
		return 0
	}
	return c.meta.Capacity
}

func (c *Collection) Policy() OverflowPolicy {
	return c.meta.Policy
}

// SetPolicy switches the overflow policy for subsequent inserts.
func (c *Collection) SetPolicy(p OverflowPolicy) {
	c.meta.Policy = p
	c.changed()
}

func (c *Collection) Metadata() interface{} {
	return c.meta.Metadata
}

// SetMetadata replaces the opaque metadata value.
func (c *Collection) SetMetadata(v interface{}) {
	c.meta.Metadata = v
	c.changed()
}

// Usage is the used fraction of capacity, 0 for unbounded collections.
func (c *Collection) Usage() float64 {
	if c.meta.Capacity <= 0 {
		return 0
	}
	return float64(c.Len()) / float64(c.meta.Capacity)
}

// Status maps Usage onto the health levels. Unbounded collections always
// report Healthy.
func (c *Collection) Status() Status {
	pct := int(math.Ceil(c.Usage() * 100))
	status := Healthy
	for _, lv := range statusLevels {
		if int(lv) <= pct {
			status = lv
		}
	}
	return status
}

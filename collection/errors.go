package collection

import "github.com/spacemonkeygo/errors"

// Error is the root class for every failure the container can produce.
var Error = errors.NewClass("collection")

// Callers match error kinds with Class.Contains(err).
var (
	// ErrInvalidCapacity - construction with a capacity <= 0
	ErrInvalidCapacity = Error.NewClass("InvalidCapacity")
	// ErrCapacityExceeded - a new key would push the collection past its capacity
	ErrCapacityExceeded = Error.NewClass("CapacityExceeded")
	// ErrKeyNotFound - the requested key does not exist and no default was supplied
	ErrKeyNotFound = Error.NewClass("KeyNotFound")
	// ErrEmptyCollection - no entry qualifies for the requested operation
	ErrEmptyCollection = Error.NewClass("EmptyCollection")
	// ErrInvalidRange - a range query with min > max
	ErrInvalidRange = Error.NewClass("InvalidRange")
	// ErrUnorderable - values (or a nil key) that admit no total order
	ErrUnorderable = Error.NewClass("Unorderable")
)

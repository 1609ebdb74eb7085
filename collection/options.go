package collection

// Option configures a Collection at construction time.
type Option func(c *Collection) error

// WithCapacity bounds the collection to at most n entries. n must be
// positive; unbounded collections simply omit the option.
func WithCapacity(n int) Option {
	return func(c *Collection) error {
		if n <= 0 {
			return ErrInvalidCapacity.New("capacity must be positive, got %d", n)
		}
		c.meta.Capacity = n
		return nil
	}
}

// WithPolicy selects the overflow policy applied when a new key arrives at
// capacity.
func WithPolicy(p OverflowPolicy) Option {
	return func(c *Collection) error {
		c.meta.Policy = p
		return nil
	}
}

// WithMetadata attaches an opaque metadata value. The collection stores it
// and round-trips it through the codecs but never interprets it.
func WithMetadata(v interface{}) Option {
	return func(c *Collection) error {
		c.meta.Metadata = v
		return nil
	}
}

// WithUUID fixes the collection identity instead of generating one.
func WithUUID(id string) Option {
	return func(c *Collection) error {
		c.meta.UUID = id
		return nil
	}
}

// WithChangeHook registers a callback invoked after every successful
// state-changing operation, so a persistence layer can observe dirtiness
// without the collection depending on any particular store.
func WithChangeHook(hook func()) Option {
	return func(c *Collection) error {
		c.onChange = hook
		return nil
	}
}

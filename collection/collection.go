// Package collection provides a persistable associative container that keeps
// its entries in ascending key order, supports range and value-ordered
// queries, and can enforce a maximum entry count.
//
// The container performs no locking. The expected deployment is
// single-writer-per-transaction access atop a transactional object store;
// isolation across transactions is the host's job.
package collection

import (
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/wecisecode/collection/logger"
)

// Collection maps unique keys to values. A red-black tree keeps ascending
// key order for iteration and range bounds, a plain map serves point
// lookups. Both index the same Entry values, so an overwrite is visible to
// every accessor at once.
type Collection struct {
	tree     *rbtree
	mm       map[interface{}]*Entry
	meta     Meta
	onChange func()
}

// New creates an empty collection. Fails with ErrInvalidCapacity if
// WithCapacity is given a non-positive bound.
func New(opts ...Option) (*Collection, error) {
	c := &Collection{
		tree: newRBTree(KeyCompare),
		mm:   map[interface{}]*Entry{},
		meta: Meta{Policy: Reject},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.meta.UUID == "" {
		c.meta.UUID = uuid.NewString()
	}
	return c, nil
}

// SetChangeHook replaces the dirty-signal callback, e.g. after Restore.
func (c *Collection) SetChangeHook(hook func()) {
	c.onChange = hook
}

func (c *Collection) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Collection) Len() int {
	return len(c.mm)
}

func (c *Collection) Has(key interface{}) bool {
	_, ok := c.mm[normalizeKey(key)]
	return ok
}

// Get retrieves the value at key. A missing key yields the optional default
// and false.
func (c *Collection) Get(key interface{}, defaultValue ...interface{}) (interface{}, bool) {
	if e, ok := c.mm[normalizeKey(key)]; ok {
		return e.Value, true
	}
	if len(defaultValue) > 0 {
		return defaultValue[0], false
	}
	return nil, false
}

// Insert sets key to value. An existing key is overwritten in place and its
// previous value returned. A new key at capacity follows the overflow
// policy: Reject fails with ErrCapacityExceeded, EvictOldest drops the
// smallest key first.
//
// Keys are canonicalized on the way in: integer keys of any width are stored
// as int64, float keys as float64. int32(2) and int64(2) are the same key.
func (c *Collection) Insert(key, value interface{}) (prev interface{}, existed bool, err error) {
	if key == nil {
		return nil, false, ErrUnorderable.New("nil key admits no ordering")
	}
	key = normalizeKey(key)
	if e, ok := c.mm[key]; ok {
		prev = e.Value
		e.Value = value
		c.changed()
		return prev, true, nil
	}
	if c.meta.Capacity > 0 && len(c.mm) >= c.meta.Capacity {
		if c.meta.Policy == Reject {
			return nil, false, ErrCapacityExceeded.New("cannot insert %v: capacity %d reached", key, c.meta.Capacity)
		}
		oldest := c.tree.min()
		c.detach(oldest.Key)
		logger.Warnf("collection %s at capacity %d, evicted key %v", c.meta.UUID, c.meta.Capacity, oldest.Key)
	}
	e := &Entry{Key: key, Value: value}
	if !c.tree.insert(e) {
		// a key absent from the map must be absent from the tree; diverging
		// indexes corrupt the collection, so fail instead
		return nil, false, Error.New("key %v (%T) collides in the ordering index", key, key)
	}
	c.mm[key] = e
	c.changed()
	return nil, false, nil
}

// detach removes key from both indexes without firing the change hook.
func (c *Collection) detach(key interface{}) (*Entry, bool) {
	key = normalizeKey(key)
	e, ok := c.mm[key]
	if !ok {
		return nil, false
	}
	c.tree.delete(key)
	delete(c.mm, key)
	return e, true
}

// Update merges the entries of other, applied in ascending key order of
// other so capacity overflow is deterministic. other may be another
// *Collection, a []Entry, or any map. The merge is atomic: under the Reject
// policy the new-key count is validated against capacity before anything is
// applied, so a failing Update leaves the collection untouched.
func (c *Collection) Update(other interface{}) error {
	entries, err := gather(other)
	if err != nil {
		return err
	}
	if c.meta.Capacity > 0 && c.meta.Policy == Reject {
		added := 0
		seen := map[interface{}]bool{}
		for _, e := range entries {
			if !seen[e.Key] && !c.Has(e.Key) {
				seen[e.Key] = true
				added++
			}
		}
		if len(c.mm)+added > c.meta.Capacity {
			return ErrCapacityExceeded.New("cannot merge %d new entries into %d/%d", added, len(c.mm), c.meta.Capacity)
		}
	}
	for _, e := range entries {
		if _, _, err := c.Insert(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// gather normalizes an Update source to entries sorted in ascending key
// order, with nil keys rejected up front to keep the merge fail-clean.
func gather(other interface{}) ([]Entry, error) {
	var entries []Entry
	switch src := other.(type) {
	case *Collection:
		return src.Items(), nil
	case []Entry:
		entries = append(entries, src...)
	case map[interface{}]interface{}:
		for k, v := range src {
			entries = append(entries, Entry{Key: k, Value: v})
		}
	case map[string]interface{}:
		for k, v := range src {
			entries = append(entries, Entry{Key: k, Value: v})
		}
	default:
		rv := reflect.ValueOf(other)
		if rv.Kind() != reflect.Map {
			return nil, Error.New("cannot merge %T into a collection", other)
		}
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Entry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
		}
	}
	for i := range entries {
		if entries[i].Key == nil {
			return nil, ErrUnorderable.New("nil key admits no ordering")
		}
		entries[i].Key = normalizeKey(entries[i].Key)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return KeyCompare(entries[i].Key, entries[j].Key) < 0
	})
	return entries, nil
}

// Pop removes and returns the value at key. An explicit default always
// suppresses ErrKeyNotFound.
func (c *Collection) Pop(key interface{}, defaultValue ...interface{}) (interface{}, error) {
	if e, ok := c.detach(key); ok {
		c.changed()
		return e.Value, nil
	}
	if len(defaultValue) > 0 {
		return defaultValue[0], nil
	}
	return nil, ErrKeyNotFound.New("key %v not found in collection", key)
}

// PopItem removes and returns the entry with the smallest key. The choice is
// deterministic on purpose.
func (c *Collection) PopItem() (Entry, error) {
	e := c.tree.min()
	if e == nil {
		return Entry{}, ErrEmptyCollection.New("popitem on empty collection")
	}
	c.detach(e.Key)
	c.changed()
	return *e, nil
}

// SetDefault returns the current value at key, inserting defaultValue first
// if the key is absent. The insert path is subject to the overflow policy.
func (c *Collection) SetDefault(key, defaultValue interface{}) (interface{}, error) {
	if e, ok := c.mm[normalizeKey(key)]; ok {
		return e.Value, nil
	}
	if _, _, err := c.Insert(key, defaultValue); err != nil {
		return nil, err
	}
	return defaultValue, nil
}

// Clear removes all entries. Capacity, policy and metadata are unchanged.
func (c *Collection) Clear() {
	if len(c.mm) == 0 {
		return
	}
	logger.Debugf("collection %s cleared %d entries", c.meta.UUID, len(c.mm))
	c.tree = newRBTree(KeyCompare)
	c.mm = map[interface{}]*Entry{}
	c.changed()
}

// Keys returns all keys in ascending order. The slice is a fresh snapshot of
// the state at call time.
func (c *Collection) Keys() []interface{} {
	keys := make([]interface{}, 0, len(c.mm))
	c.tree.ascend(nil, func(e *Entry) bool {
		keys = append(keys, e.Key)
		return true
	})
	return keys
}

// Values returns all values in ascending key order.
func (c *Collection) Values() []interface{} {
	vals := make([]interface{}, 0, len(c.mm))
	c.tree.ascend(nil, func(e *Entry) bool {
		vals = append(vals, e.Value)
		return true
	})
	return vals
}

// Items returns all entries in ascending key order.
func (c *Collection) Items() []Entry {
	items := make([]Entry, 0, len(c.mm))
	c.tree.ascend(nil, func(e *Entry) bool {
		items = append(items, *e)
		return true
	})
	return items
}

// IterItems returns the entries with min <= key <= max in ascending key
// order. A nil bound is unbounded on that side. Fails with ErrInvalidRange
// if both bounds are given and min > max.
func (c *Collection) IterItems(min, max interface{}) ([]Entry, error) {
	if min != nil && max != nil && KeyCompare(min, max) > 0 {
		return nil, ErrInvalidRange.New("min %v > max %v", min, max)
	}
	items := []Entry{}
	c.tree.ascend(min, func(e *Entry) bool {
		if max != nil && KeyCompare(e.Key, max) > 0 {
			return false
		}
		items = append(items, *e)
		return true
	})
	return items, nil
}

// IterKeys returns the keys within [min, max], nil bounds unbounded.
func (c *Collection) IterKeys(min, max interface{}) ([]interface{}, error) {
	items, err := c.IterItems(min, max)
	if err != nil {
		return nil, err
	}
	keys := make([]interface{}, len(items))
	for i, e := range items {
		keys[i] = e.Key
	}
	return keys, nil
}

// IterValues returns the values of the entries with keys within [min, max].
func (c *Collection) IterValues(min, max interface{}) ([]interface{}, error) {
	items, err := c.IterItems(min, max)
	if err != nil {
		return nil, err
	}
	vals := make([]interface{}, len(items))
	for i, e := range items {
		vals[i] = e.Value
	}
	return vals, nil
}

// Fetch visits entries lazily in ascending key order until the callback
// returns false.
func (c *Collection) Fetch(p func(key, value interface{}) bool) {
	c.tree.ascend(nil, func(e *Entry) bool {
		return p(e.Key, e.Value)
	})
}

// FetchReverse visits entries lazily in descending key order.
func (c *Collection) FetchReverse(p func(key, value interface{}) bool) {
	c.tree.descend(nil, func(e *Entry) bool {
		return p(e.Key, e.Value)
	})
}

// FetchRange visits the entries with from <= key <= to, nil bounds
// unbounded, descending when reverse is set.
func (c *Collection) FetchRange(from, to interface{}, p func(key, value interface{}) bool, reverse bool) {
	if reverse {
		c.tree.descend(to, func(e *Entry) bool {
			if from != nil && KeyCompare(e.Key, from) < 0 {
				return false
			}
			return p(e.Key, e.Value)
		})
	} else {
		c.tree.ascend(from, func(e *Entry) bool {
			if to != nil && KeyCompare(e.Key, to) > 0 {
				return false
			}
			return p(e.Key, e.Value)
		})
	}
}

// ByValue returns the entries whose value >= min (all entries when min is
// omitted) ordered by ascending value, ties broken by ascending key. The
// ordering is derived from the current values on every call, never kept as
// a second index. Fails with ErrUnorderable if the values involved admit no
// total order.
func (c *Collection) ByValue(min ...interface{}) ([]Entry, error) {
	var floor interface{}
	if len(min) > 0 {
		floor = min[0]
	}
	out := make([]Entry, 0, len(c.mm))
	var err error
	c.tree.ascend(nil, func(e *Entry) bool {
		if floor != nil {
			var cmp int
			if cmp, err = ValueCompare(e.Value, floor); err != nil {
				return false
			}
			if cmp < 0 {
				return true
			}
		}
		out = append(out, *e)
		return true
	})
	if err != nil {
		return nil, err
	}
	// all values must live in one ordered family; checking against the
	// first entry is enough because the families are transitive
	for i := 1; i < len(out); i++ {
		if _, err := ValueCompare(out[i].Value, out[0].Value); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		cmp, _ := ValueCompare(out[i].Value, out[j].Value)
		if cmp != 0 {
			return cmp < 0
		}
		return KeyCompare(out[i].Key, out[j].Key) < 0
	})
	return out, nil
}

// MaxKey returns the largest key <= max, or the overall largest key when max
// is omitted or nil. Fails with ErrEmptyCollection if no key qualifies.
func (c *Collection) MaxKey(max ...interface{}) (interface{}, error) {
	var e *Entry
	if len(max) > 0 && max[0] != nil {
		e = c.tree.floor(max[0])
		if e == nil {
			return nil, ErrEmptyCollection.New("no key <= %v", max[0])
		}
	} else {
		e = c.tree.max()
		if e == nil {
			return nil, ErrEmptyCollection.New("collection is empty")
		}
	}
	return e.Key, nil
}

// MinKey returns the smallest key >= min, or the overall smallest key when
// min is omitted or nil. Fails with ErrEmptyCollection if no key qualifies.
func (c *Collection) MinKey(min ...interface{}) (interface{}, error) {
	var e *Entry
	if len(min) > 0 && min[0] != nil {
		e = c.tree.ceiling(min[0])
		if e == nil {
			return nil, ErrEmptyCollection.New("no key >= %v", min[0])
		}
	} else {
		e = c.tree.min()
		if e == nil {
			return nil, ErrEmptyCollection.New("collection is empty")
		}
	}
	return e.Key, nil
}

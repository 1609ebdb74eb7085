package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

var (
	_ json.Marshaler   = (*Collection)(nil)
	_ json.Unmarshaler = (*Collection)(nil)
)

// MarshalJSON writes the entries as a single object in ascending key order.
// Keys are coerced to strings; numeric keys survive the round trip because
// UnmarshalJSON coerces them back.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	first := true
	c.tree.ascend(nil, func(e *Entry) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var bs []byte
		if bs, err = json.Marshal(cast.ToString(e.Key)); err != nil {
			return false
		}
		buf.Write(bs)
		buf.WriteByte(':')
		if bs, err = json.Marshal(e.Value); err != nil {
			return false
		}
		buf.Write(bs)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the entries with the decoded object. The entry set
// is staged and validated against capacity before anything is applied, so a
// failing decode leaves the collection untouched.
func (c *Collection) UnmarshalJSON(bs []byte) error {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("json: expected object, got %v", tok)
	}
	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		ks, ok := tok.(string)
		if !ok {
			return fmt.Errorf("json: expected object key, got %v", tok)
		}
		key := coerceScalar(ks)
		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		entries = append(entries, Entry{Key: key, Value: normalizeNumbers(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return c.replaceEntries(entries)
}

// replaceEntries swaps in a decoded entry set, last write winning on
// duplicate keys, after checking the unique count against capacity.
func (c *Collection) replaceEntries(entries []Entry) error {
	tree := newRBTree(KeyCompare)
	mm := make(map[interface{}]*Entry, len(entries))
	for i := range entries {
		key := normalizeKey(entries[i].Key)
		if prev, ok := mm[key]; ok {
			prev.Value = entries[i].Value
			continue
		}
		ne := &Entry{Key: key, Value: entries[i].Value}
		if !tree.insert(ne) {
			return Error.New("key %v (%T) collides in the ordering index", key, key)
		}
		mm[key] = ne
	}
	if c.meta.Capacity > 0 && len(mm) > c.meta.Capacity {
		return ErrCapacityExceeded.New("cannot restore %d entries into capacity %d", len(mm), c.meta.Capacity)
	}
	c.tree = tree
	c.mm = mm
	c.changed()
	return nil
}

// coerceScalar maps a decoded key string back to a number when it is one.
func coerceScalar(s string) interface{} {
	if n, err := cast.ToInt64E(s); err == nil {
		return n
	}
	if f, err := cast.ToFloat64E(s); err == nil {
		return f
	}
	return s
}

// normalizeNumbers rewrites json.Number leaves into int64/float64 so decoded
// values stay orderable by ValueCompare.
func normalizeNumbers(v interface{}) interface{} {
	switch vv := v.(type) {
	case json.Number:
		if n, err := cast.ToInt64E(vv.String()); err == nil {
			return n
		}
		return cast.ToFloat64(vv.String())
	case map[string]interface{}:
		for k, e := range vv {
			vv[k] = normalizeNumbers(e)
		}
		return vv
	case []interface{}:
		for i, e := range vv {
			vv[i] = normalizeNumbers(e)
		}
		return vv
	}
	return v
}

func (c *Collection) String() string {
	bs, _ := json.MarshalIndent(c, "", "    ")
	return string(bs)
}

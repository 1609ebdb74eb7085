package collection

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshot layout: version, uuid, capacity, policy, metadata, entry count,
// then the entries as key/value pairs in ascending key order so equal
// collections produce identical bytes.
const snapshotVersion = 1

var (
	_ msgpack.CustomEncoder = (*Collection)(nil)
	_ msgpack.CustomDecoder = (*Collection)(nil)
)

func (c *Collection) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeInt(snapshotVersion); err != nil {
		return err
	}
	if err := enc.EncodeString(c.meta.UUID); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(c.meta.Capacity)); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(c.meta.Policy)); err != nil {
		return err
	}
	if err := enc.Encode(c.meta.Metadata); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(len(c.mm))); err != nil {
		return err
	}
	var err error
	c.tree.ascend(nil, func(e *Entry) bool {
		if err = enc.Encode(e.Key); err != nil {
			return false
		}
		if err = enc.Encode(e.Value); err != nil {
			return false
		}
		return true
	})
	return err
}

// DecodeMsgpack replaces the collection's entries and bookkeeping with the
// decoded snapshot. Integer keys come back as int64 (DecodeInterfaceLoose);
// KeyCompare orders them numerically so their positions are unchanged.
func (c *Collection) DecodeMsgpack(dec *msgpack.Decoder) error {
	version, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	if version != snapshotVersion {
		return Error.New("unsupported snapshot version %d", version)
	}
	id, err := dec.DecodeString()
	if err != nil {
		return err
	}
	capacity, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	policy, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	metadata, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return err
	}
	n, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	tree := newRBTree(KeyCompare)
	mm := make(map[interface{}]*Entry, n)
	for i := 0; i < n; i++ {
		k, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return err
		}
		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return err
		}
		e := &Entry{Key: normalizeKey(k), Value: v}
		if tree.insert(e) {
			mm[e.Key] = e
		}
	}
	c.tree = tree
	c.mm = mm
	c.meta = Meta{UUID: id, Capacity: capacity, Policy: OverflowPolicy(policy), Metadata: metadata}
	c.changed()
	return nil
}

// Snapshot serializes the collection for the host's durable store. Entry
// set, capacity, policy, uuid and metadata all round-trip through Restore.
func (c *Collection) Snapshot() ([]byte, error) {
	enc := msgpack.GetEncoder()

	var buf bytes.Buffer
	enc.Reset(&buf)

	enc.UseCompactInts(false)
	enc.SetSortMapKeys(true)
	err := c.EncodeMsgpack(enc)
	b := buf.Bytes()

	msgpack.PutEncoder(enc)

	if err != nil {
		return nil, err
	}
	return b, nil
}

// Restore rebuilds a collection from Snapshot bytes. The change hook does
// not survive serialization; reattach one with SetChangeHook.
func Restore(data []byte) (*Collection, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}

	dec := msgpack.GetDecoder()

	dec.Reset(bytes.NewReader(data))
	err = c.DecodeMsgpack(dec)

	msgpack.PutDecoder(dec)

	if err != nil {
		return nil, err
	}
	return c, nil
}

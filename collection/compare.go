package collection

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// Compare returns an integer comparing two keys. The result will be 0 if
// a==b, <0 if a < b, and >0 if a > b.
type Compare func(a, b interface{}) int

// Entry is a unique key paired with its current value.
type Entry struct {
	Key   interface{}
	Value interface{}
}

func StringCompare(a, b string) int {
	return bytes.Compare([]byte(a), []byte(b))
}

func Int64Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func Float64Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uint64
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// hugeUint reports an unsigned value too large for int64, which must not go
// through the int64 collapse (cast would wrap it negative).
func hugeUint(v interface{}) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := rv.Uint(); u > math.MaxInt64 {
			return u, true
		}
	}
	return 0, false
}

// intCompare orders integer values of any width and signedness. Values above
// MaxInt64 sort after every int64.
func intCompare(a, b interface{}) int {
	ua, aHuge := hugeUint(a)
	ub, bHuge := hugeUint(b)
	switch {
	case aHuge && bHuge:
		switch {
		case ua < ub:
			return -1
		case ua > ub:
			return 1
		}
		return 0
	case aHuge:
		return 1
	case bHuge:
		return -1
	}
	return Int64Compare(cast.ToInt64(a), cast.ToInt64(b))
}

// mixedCompare orders keys that share no comparison domain by their string
// forms, breaking string-form ties on the dynamic type name so distinct keys
// never compare equal (the point-lookup map keeps them distinct too).
func mixedCompare(a, b interface{}) int {
	if c := StringCompare(fmt.Sprint(a), fmt.Sprint(b)); c != 0 {
		return c
	}
	return StringCompare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

// normalizeKey collapses integer keys to int64 and float keys to float64,
// so the point-lookup map agrees with KeyCompare about key identity and a
// key keeps its identity across a codec round trip.
func normalizeKey(k interface{}) interface{} {
	if k == nil {
		return nil
	}
	kind := reflect.TypeOf(k).Kind()
	switch {
	case isIntKind(kind):
		if u, huge := hugeUint(k); huge {
			return u
		}
		return cast.ToInt64(k)
	case isFloatKind(kind):
		return cast.ToFloat64(k)
	}
	return k
}

// KeyCompare is the total order over keys used for primary iteration and
// range bounds. Numeric keys compare numerically across int widths, so a key
// survives a codec round trip (int in, int64 out) with its position intact.
// Everything else falls back to ordering the string forms with a type-name
// tie-break, so the order is total and distinct keys never compare equal.
func KeyCompare(a, b interface{}) int {
	if a == nil || b == nil {
		if a == b {
			return 0
		}
		if a == nil {
			return -1
		}
		return 1
	}
	ka := reflect.TypeOf(a).Kind()
	kb := reflect.TypeOf(b).Kind()
	if (isIntKind(ka) || isFloatKind(ka)) && (isIntKind(kb) || isFloatKind(kb)) {
		if isFloatKind(ka) || isFloatKind(kb) {
			return Float64Compare(cast.ToFloat64(a), cast.ToFloat64(b))
		}
		return intCompare(a, b)
	}
	if ka != kb {
		return mixedCompare(a, b)
	}
	switch aa := a.(type) {
	case string:
		return StringCompare(aa, b.(string))
	case time.Time:
		return Int64Compare(aa.UnixNano(), b.(time.Time).UnixNano())
	case *time.Time:
		return Int64Compare(aa.UnixNano(), b.(*time.Time).UnixNano())
	default:
		// cast.ToString yields "" for types it does not know, which would
		// collapse distinct keys into one ordering slot
		return mixedCompare(a, b)
	}
}

// ValueCompare orders values for the value-ordered index. Unlike keys,
// values carry no fallback: mixed families or types without a total order
// fail with ErrUnorderable.
func ValueCompare(a, b interface{}) (int, error) {
	if a == nil || b == nil {
		return 0, ErrUnorderable.New("nil value admits no ordering")
	}
	ka := reflect.TypeOf(a).Kind()
	kb := reflect.TypeOf(b).Kind()
	aNum := isIntKind(ka) || isFloatKind(ka)
	bNum := isIntKind(kb) || isFloatKind(kb)
	if aNum && bNum {
		if isFloatKind(ka) || isFloatKind(kb) {
			return Float64Compare(cast.ToFloat64(a), cast.ToFloat64(b)), nil
		}
		return intCompare(a, b), nil
	}
	switch aa := a.(type) {
	case string:
		if bb, ok := b.(string); ok {
			return StringCompare(aa, bb), nil
		}
	case time.Time:
		if bb, ok := b.(time.Time); ok {
			return Int64Compare(aa.UnixNano(), bb.UnixNano()), nil
		}
	case *time.Time:
		if bb, ok := b.(*time.Time); ok {
			return Int64Compare(aa.UnixNano(), bb.UnixNano()), nil
		}
	}
	return 0, ErrUnorderable.New("cannot order %T against %T", a, b)
}

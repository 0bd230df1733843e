package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Values of mixed type sort by rank first, then within the rank.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankTime
	rankText
)

// Stringify converts an accessor value to the text used for filtering and
// export. nil (including typed nil pointers) becomes "", times are RFC 3339.
func Stringify(v any) string {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// deref follows pointers so *int and int compare the same way.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

type sortKey struct {
	rank int
	b    bool
	i    int64
	u    uint64
	f    float64
	kind numKind
	t    time.Time
	s    string
}

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

func makeSortKey(v any) sortKey {
	v = deref(v)
	if v == nil {
		return sortKey{rank: rankNil}
	}
	if t, ok := v.(time.Time); ok {
		// A zero time stringifies to "", so it sorts with nil too.
		if t.IsZero() {
			return sortKey{rank: rankNil}
		}
		return sortKey{rank: rankTime, t: t}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return sortKey{rank: rankBool, b: rv.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sortKey{rank: rankNumber, kind: numInt, i: rv.Int(), f: float64(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return sortKey{rank: rankNumber, kind: numUint, u: rv.Uint(), f: float64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return sortKey{rank: rankNumber, kind: numFloat, f: rv.Float()}
	case reflect.String:
		// Named string types keep their underlying text, not a Stringer form.
		return sortKey{rank: rankText, s: rv.String()}
	}
	return sortKey{rank: rankText, s: Stringify(v)}
}

func compareKeys(a, b sortKey) int {
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	switch a.rank {
	case rankNil:
		return 0
	case rankBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	case rankNumber:
		return compareNumbers(a, b)
	case rankTime:
		return a.t.Compare(b.t)
	}
	return strings.Compare(a.s, b.s)
}

func compareNumbers(a, b sortKey) int {
	switch {
	case a.kind == numInt && b.kind == numInt:
		return cmp.Compare(a.i, b.i)
	case a.kind == numUint && b.kind == numUint:
		return cmp.Compare(a.u, b.u)
	case a.kind == numInt && b.kind == numUint:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	case a.kind == numUint && b.kind == numInt:
		if b.i < 0 {
			return 1
		}
		return cmp.Compare(a.u, uint64(b.i))
	}
	// cmp.Compare orders NaN first and treats NaN == NaN, which keeps the
	// order total.
	return cmp.Compare(a.f, b.f)
}

// CompareValues is the total order used for sorting accessor values:
// nil < bool < numbers < time.Time < text. The zero time.Time ranks as nil.
// Numbers compare numerically
// across integer and float kinds; anything else compares by its string form.
func CompareValues(a, b any) int {
	return compareKeys(makeSortKey(a), makeSortKey(b))
}

// Package value implements a JSON-like tagged value used to carry RPC
// parameters and typed-data messages.
//
// value 包实现了类 JSON 的标记值，用于承载 RPC 参数和结构化签名消息。
package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/sunyihoo/ethcodec/common"
	"github.com/sunyihoo/ethcodec/common/hexutil"
)

// ErrNotConvertible is returned when a Go value or a Value cannot be turned
// into the requested representation.
var ErrNotConvertible = errors.New("value not convertible")

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "int", "float", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is an immutable JSON-like value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	num  string // JSON literal of a decoded float, kept exact
	s    string
	arr  []Value
	obj  map[string]Value
}

// Constructors for each kind. Array and Object copy their input.
func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: append([]Value{}, vs...)} }
func Object(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindObject, obj: cp}
}

// FromQuantity renders x as a minimal 0x-prefixed hex string value.
func FromQuantity(x *big.Int) Value { return String(hexutil.EncodeBig(x)) }

// FromData renders b as a 0x-prefixed hex string value; empty data is "0x".
func FromData(b []byte) Value { return String(hexutil.Encode(b)) }

// From converts a native Go value. Byte slices become data strings, big
// integers quantity strings and addresses their checksummed hex form.
//
// From 将 Go 原生值转换为 Value。字节切片编码为数据字符串，大整数编码为数量字符串。
func From(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return *x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case []byte:
		return FromData(x), nil
	case *big.Int:
		if x == nil {
			return Null(), nil
		}
		return FromQuantity(x), nil
	case common.Address:
		return String(x.Hex()), nil
	case *common.Address:
		if x == nil {
			return Null(), nil
		}
		return String(x.Hex()), nil
	case common.Hash:
		return String(x.Hex()), nil
	case json.Number:
		return fromNumber(x)
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			v, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			obj[k] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[string]Value:
		return Object(x), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return FromQuantity(new(big.Int).SetUint64(u)), nil
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		arr := make([]Value, rv.Len())
		for i := range arr {
			v, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = v
		}
		return Value{kind: KindArray, arr: arr}, nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrNotConvertible, x)
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the numeric value of v. Ints convert losslessly where possible.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Number returns the JSON literal a float value was decoded from. Numbers
// beyond int64 keep their exact digits here while Float rounds them.
func (v Value) Number() (string, bool) {
	if v.kind != KindFloat || v.num == "" {
		return "", false
	}
	return v.num, true
}

// Str returns the contents of a string value.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Array returns the elements of an array value. The slice must not be modified.
func (v Value) Array() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Object returns a copy of the members of an object value.
func (v Value) Object() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	cp := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		cp[k] = e
	}
	return cp, true
}

// Keys returns the member names of an object in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// Index returns the i'th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Len returns the number of elements or members, or zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Equal reports deep equality. An int and a float are never equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f && v.num == o.num
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// Quantity interprets v as a non-negative integer: a 0x hex string or an int.
// Quantity 将 v 解释为非负整数：0x 十六进制字符串或整数。
func (v Value) Quantity() (*big.Int, bool) {
	switch v.kind {
	case KindInt:
		if v.i < 0 {
			return nil, false
		}
		return big.NewInt(v.i), true
	case KindString:
		x, err := hexutil.DecodeBig(v.s)
		if err != nil {
			return nil, false
		}
		return x, true
	}
	return nil, false
}

// Data interprets v as a 0x-prefixed hex data string.
func (v Value) Data() ([]byte, bool) {
	if v.kind != KindString || len(v.s) < 2 {
		return nil, false
	}
	b, err := hexutil.Decode(v.s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// MarshalJSON implements json.Marshaler. Object members are written in
// sorted key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(k)
			buf.Write(key)
			buf.WriteByte(':')
			if err := v.obj[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		var scalar any
		switch v.kind {
		case KindBool:
			scalar = v.b
		case KindInt:
			scalar = v.i
		case KindFloat:
			if v.num != "" {
				buf.WriteString(v.num)
				return nil
			}
			scalar = v.f
		case KindString:
			scalar = v.s
		}
		enc, err := json.Marshal(scalar)
		if err != nil {
			return err
		}
		buf.Write(enc)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Integral numbers that fit in
// int64 decode as ints, all other numbers as floats.
func (v *Value) UnmarshalJSON(input []byte) error {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	res, err := From(raw)
	if err != nil {
		return err
	}
	*v = res
	return nil
}

func fromNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("%w: number %s", ErrNotConvertible, n)
	}
	return Value{kind: KindFloat, f: f, num: n.String()}, nil
}

// GoString renders v in JSON form for debugging.
func (v Value) GoString() string {
	enc, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("value.Value{invalid: %v}", err)
	}
	return string(enc)
}

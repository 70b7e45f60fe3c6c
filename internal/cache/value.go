package cache

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface over the closed set of storable kinds.
// Only String, Bytes, Int, and Float implement it.
type Value interface {
	value() // sealed

	// Encode returns the store's byte form of the value: raw bytes for
	// Bytes, UTF-8 for String, decimal text for Int and Float.
	Encode() []byte

	// Text returns the canonical text rendering used when the call is
	// recorded in the instrumentation history.
	Text() string
}

// String is UTF-8 text.
type String string

func (String) value() {}

// Encode returns the UTF-8 bytes.
func (s String) Encode() []byte { return []byte(s) }

// Text returns the string itself.
func (s String) Text() string { return string(s) }

// Bytes is a raw byte sequence.
type Bytes []byte

func (Bytes) value() {}

// Encode returns the bytes unchanged.
func (b Bytes) Encode() []byte { return []byte(b) }

// Text renders the bytes as a quoted Go string so non-printable content
// stays one transcript line.
func (b Bytes) Text() string { return strconv.Quote(string(b)) }

// Int is a 64-bit integer.
type Int int64

func (Int) value() {}

// Encode returns the decimal text bytes.
func (n Int) Encode() []byte { return []byte(n.Text()) }

// Text returns the decimal rendering.
func (n Int) Text() string { return strconv.FormatInt(int64(n), 10) }

// Float is a 64-bit floating point number.
type Float float64

func (Float) value() {}

// Encode returns the shortest decimal text that parses back exactly.
func (f Float) Encode() []byte { return []byte(f.Text()) }

// Text returns the shortest round-tripping rendering.
func (f Float) Text() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// NewValue converts a plain Go scalar into a Value. It exists for callers
// holding untyped input (the CLI); library callers construct the concrete
// kinds directly.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

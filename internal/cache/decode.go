package cache

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Decoder transforms the raw stored bytes into a typed Value.
type Decoder func(data []byte) (Value, error)

// DecodeError reports a decoder failure on a successfully read value.
type DecodeError struct {
	// Key is the store key whose value failed to decode.
	Key string

	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode value at %q: %v", e.Key, e.Err)
}

// Unwrap exposes the parse failure for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeString decodes the bytes as UTF-8 text.
func DecodeString(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid UTF-8")
	}
	return String(data), nil
}

// DecodeInt parses the bytes as a decimal integer.
func DecodeInt(data []byte) (Value, error) {
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse integer: %w", err)
	}
	return Int(n), nil
}

// DecodeFloat parses the bytes as a decimal floating point number.
func DecodeFloat(data []byte) (Value, error) {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil, fmt.Errorf("parse float: %w", err)
	}
	return Float(f), nil
}

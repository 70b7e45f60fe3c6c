package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string is itself", String("foo"), "foo"},
		{"int is decimal", Int(-7), "-7"},
		{"float is shortest form", Float(0.1), "0.1"},
		{"float large uses exponent", Float(1e21), "1e+21"},
		{"bytes are quoted", Bytes{0x00, 'a'}, `"\x00a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Text())
		})
	}
}

func TestFloatEncode_RoundTripsExactly(t *testing.T) {
	for _, f := range []Float{0.1, 1.0 / 3.0, 3.141592653589793, -2.5e-10} {
		got, err := DecodeFloat(f.Encode())
		assert.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

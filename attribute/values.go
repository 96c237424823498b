package attribute

import (
	"io"
	"strconv"
)

// NumberType is the XDMF NumberType of a value array.
type NumberType string

const (
	NumberFloat NumberType = "Float"
	NumberUInt  NumberType = "UInt"
)

// Values is a numeric payload array. Implementations are F64 and U64; the
// interface is sealed because storage backends dispatch on the concrete
// payload type.
type Values interface {
	// Len returns the number of values.
	Len() int

	// NumberType returns the XDMF NumberType.
	NumberType() NumberType

	// Precision returns the size of one value in bytes.
	Precision() int

	// Text renders the values space-separated in the canonical text form.
	Text() string

	// WriteText streams the canonical text form, without a trailing newline.
	WriteText(w io.Writer) error

	isValues()
}

// F64 is a float64 payload.
type F64 []float64

func (v F64) Len() int               { return len(v) }
func (v F64) NumberType() NumberType { return NumberFloat }
func (v F64) Precision() int         { return 8 }
func (F64) isValues()                {}

func (v F64) appendText(b []byte) []byte {
	for i, x := range v {
		if i > 0 {
			b = append(b, ' ')
		}
		b = appendFloat(b, x)
	}
	return b
}

// appendFloat renders x in scientific notation with 16 fractional digits and
// a compact exponent, e.g. "1.0000000000000000e0" or "-5.0000000000000000e-1".
// 17 significant digits round-trip exactly through ParseFloat; the compact
// exponent matches the layout meshio-style XDMF files use.
func appendFloat(b []byte, x float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, x, 'e', 16, 64)
	for i := len(b) - 1; i > start; i-- {
		if b[i] != 'e' {
			continue
		}
		// strconv writes "e+00"; drop the plus and leading zeros.
		exp := b[i+1:]
		neg := exp[0] == '-'
		digits := exp
		if neg || exp[0] == '+' {
			digits = exp[1:]
		}
		for len(digits) > 1 && digits[0] == '0' {
			digits = digits[1:]
		}
		b = b[:i+1]
		if neg {
			b = append(b, '-')
		}
		b = append(b, digits...)
		break
	}
	return b
}

func (v F64) Text() string { return string(v.appendText(nil)) }

func (v F64) WriteText(w io.Writer) error {
	_, err := w.Write(v.appendText(nil))
	return err
}

// U64 is a uint64 payload.
type U64 []uint64

func (v U64) Len() int               { return len(v) }
func (v U64) NumberType() NumberType { return NumberUInt }
func (v U64) Precision() int         { return 8 }
func (U64) isValues()                {}

func (v U64) appendText(b []byte) []byte {
	for i, x := range v {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendUint(b, x, 10)
	}
	return b
}

func (v U64) Text() string { return string(v.appendText(nil)) }

func (v U64) WriteText(w io.Writer) error {
	_, err := w.Write(v.appendText(nil))
	return err
}

package attribute

import "fmt"

type kindType int

const (
	kindScalar kindType = iota
	kindVector
	kindTensor
	kindTensor6
	kindMatrix
	kindGeneric
)

// Kind describes the logical shape of a field: how many components each
// entity (point or cell) carries and how XDMF labels the attribute. The zero
// value is Scalar.
type Kind struct {
	t          kindType
	rows, cols int
}

// Scalar is one component per entity.
func Scalar() Kind { return Kind{} }

// Vector is three components per entity.
func Vector() Kind { return Kind{t: kindVector} }

// Tensor is a full 3x3 tensor, nine components per entity.
func Tensor() Kind { return Kind{t: kindTensor} }

// Tensor6 is a symmetric 3x3 tensor in Voigt order, six components per entity.
func Tensor6() Kind { return Kind{t: kindTensor6} }

// Matrix is a rows x cols matrix per entity.
func Matrix(rows, cols int) Kind { return Kind{t: kindMatrix, rows: rows, cols: cols} }

// Generic is an arbitrary fixed number of components per entity.
func Generic(size int) Kind { return Kind{t: kindGeneric, rows: size} }

// Size returns the number of components per entity.
func (k Kind) Size() int {
	switch k.t {
	case kindScalar:
		return 1
	case kindVector:
		return 3
	case kindTensor:
		return 9
	case kindTensor6:
		return 6
	case kindMatrix:
		return k.rows * k.cols
	case kindGeneric:
		return k.rows
	}
	return 0
}

// AttributeType returns the XDMF AttributeType label. Tensor6, Matrix, and
// Generic all serialize as "Matrix"; only the component count differs.
func (k Kind) AttributeType() string {
	switch k.t {
	case kindScalar:
		return "Scalar"
	case kindVector:
		return "Vector"
	case kindTensor:
		return "Tensor"
	}
	return "Matrix"
}

// Dimensions computes the XDMF Dimensions shape of a payload of n values:
// flat for Scalar, entities x components otherwise.
func (k Kind) Dimensions(n int) []int {
	if k.t == kindScalar {
		return []int{n}
	}
	size := k.Size()
	return []int{n / size, size}
}

func (k Kind) String() string {
	switch k.t {
	case kindScalar:
		return "Scalar"
	case kindVector:
		return "Vector"
	case kindTensor:
		return "Tensor"
	case kindTensor6:
		return "Tensor6"
	case kindMatrix:
		return fmt.Sprintf("Matrix(%dx%d)", k.rows, k.cols)
	case kindGeneric:
		return fmt.Sprintf("Generic(%d)", k.rows)
	}
	return fmt.Sprintf("Kind(%d)", int(k.t))
}

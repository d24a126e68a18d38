package metric

import "fmt"

// Type identifies which variant of Value a metric carries.
//
// The ordinals are a wire contract shared with every exporter and must never
// be reordered.
type Type int

const (
	TypeInt    Type = 0
	TypeString Type = 1
	TypeDouble Type = 2
	TypeUint64 Type = 3
)

// String returns the variant name.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeDouble:
		return "double"
	case TypeUint64:
		return "uint64"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Value is the closed set of metric values: Int, String, Double and Uint64.
// The interface is sealed; no other package can add a variant.
type Value interface {
	// Type returns the variant ordinal.
	Type() Type

	sealed()
}

// Int is a signed 32-bit metric value.
type Int int32

// String is a string metric value.
type String string

// Double is a float64 metric value.
type Double float64

// Uint64 is an unsigned 64-bit metric value.
type Uint64 uint64

func (Int) Type() Type    { return TypeInt }
func (String) Type() Type { return TypeString }
func (Double) Type() Type { return TypeDouble }
func (Uint64) Type() Type { return TypeUint64 }

func (Int) sealed()    {}
func (String) sealed() {}
func (Double) sealed() {}
func (Uint64) sealed() {}

// AsFloat64 converts numeric variants to float64. Uint64 values above 2^53
// lose precision. String values report false.
func AsFloat64(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Double:
		return float64(val), true
	case Uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

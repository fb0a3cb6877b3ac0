package convert

import (
	"mapforge/internal/descriptor"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind enumerates the primitive and well-known types the conversion
// registry knows about. Container and user-defined types never get a kind.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as the invalid Kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration

	// KindTotal is the total number of kinds defined.
	KindTotal = int(iota)
)

// KindOf classifies a descriptor, returning the invalid Kind for anything
// that is not a primitive or well-known type.
func KindOf(t *descriptor.Type) Kind {
	if t == nil || t.Kind != descriptor.ContainerNone {
		return 0
	}

	if t.PkgPath == "time" {
		switch t.Name {
		case "Time":
			return KindTime
		case "Duration":
			return KindDuration
		}

		return 0
	}

	if t.PkgPath != "" {
		return 0
	}

	switch t.Name {
	case "int":
		return KindInt
	case "int8":
		return KindInt8
	case "int16":
		return KindInt16
	case "int32", "rune":
		return KindInt32
	case "int64":
		return KindInt64
	case "uint":
		return KindUint
	case "uint8", "byte":
		return KindUint8
	case "uint16":
		return KindUint16
	case "uint32":
		return KindUint32
	case "uint64":
		return KindUint64
	case "float32":
		return KindFloat32
	case "float64":
		return KindFloat64
	case "bool":
		return KindBool
	case "string":
		return KindString
	}

	return 0
}

// GoName returns the Go type name for the kind.
func (k Kind) GoName() string {
	switch k {
	case KindInt:
		return "int"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint:
		return "uint"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindTime:
		return "time.Time"
	case KindDuration:
		return "time.Duration"
	default:
		return ""
	}
}

// Descriptor returns the canonical descriptor for the kind.
func (k Kind) Descriptor() *descriptor.Type {
	switch k {
	case KindTime:
		return descriptor.Named("time", "Time")
	case KindDuration:
		return descriptor.Named("time", "Duration")
	default:
		return descriptor.Builtin(k.GoName())
	}
}

// IsNumber reports whether the kind is any numeric type.
func (k Kind) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsInteger reports whether the kind is a signed or unsigned integer.
func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

// IsFloat reports whether the kind is a floating-point type.
func (k Kind) IsFloat() bool {
	switch k {
	case KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the kind is a signed integer.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the kind is an unsigned integer.
func (k Kind) IsUnsigned() bool {
	switch k {
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// Bits returns the bit width used by strconv parse calls for the kind.
func (k Kind) Bits() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	default:
		return 64
	}
}

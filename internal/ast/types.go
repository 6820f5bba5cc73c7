package ast

// Type is an OSL value type.
//
//go:generate stringer -type=Type
type Type int

const (
	// TypeUnknown marks a type that failed to resolve; the type checker
	// returns it together with the diagnostic that explains the failure.
	TypeUnknown Type = iota
	// TypeVoid is the return type of a function with no value and the
	// placeholder type of the Ci global.
	TypeVoid
	// TypeInt is a 32-bit-ish integer scalar.
	TypeInt
	// TypeFloat is a floating-point scalar.
	TypeFloat
	// TypeString is a string value.
	TypeString
	// TypeColor is a 3-component color (r, g, b).
	TypeColor
	// TypePoint is a 3-component position.
	TypePoint
	// TypeVector is a 3-component direction/offset.
	TypeVector
	// TypeNormal is a 3-component surface normal.
	TypeNormal
	// TypeMatrix is a 4x4 transform matrix.
	TypeMatrix
	// TypeClosure is an opaque BSDF/light closure value.
	TypeClosure
)

// String returns the OSL source spelling of the type, or "<unknown>" for
// TypeUnknown.
func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeColor:
		return "color"
	case TypePoint:
		return "point"
	case TypeVector:
		return "vector"
	case TypeNormal:
		return "normal"
	case TypeMatrix:
		return "matrix"
	case TypeClosure:
		return "closure"
	default:
		return "<unknown>"
	}
}

// IsTriple reports whether t is one of the three-component geometric types
// (color, point, vector, normal), which share arithmetic and access rules.
func (t Type) IsTriple() bool {
	switch t {
	case TypeColor, TypePoint, TypeVector, TypeNormal:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether t participates in arithmetic as a scalar.
func (t Type) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// LookupType returns the Type named by a type-keyword spelling, or
// (TypeUnknown, false) if text does not name a builtin type.
func LookupType(text string) (Type, bool) {
	switch text {
	case "void":
		return TypeVoid, true
	case "int":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "string":
		return TypeString, true
	case "color":
		return TypeColor, true
	case "point":
		return TypePoint, true
	case "vector":
		return TypeVector, true
	case "normal":
		return TypeNormal, true
	case "matrix":
		return TypeMatrix, true
	case "closure":
		return TypeClosure, true
	default:
		return TypeUnknown, false
	}
}

// ShaderType names the kind of a shader declaration.
type ShaderType int

const (
	// ShaderGeneric is the generic 'shader' declaration kind.
	ShaderGeneric ShaderType = iota
	// ShaderSurface is a 'surface' shader.
	ShaderSurface
	// ShaderDisplacement is a 'displacement' shader.
	ShaderDisplacement
	// ShaderLight is a 'light' shader.
	ShaderLight
	// ShaderVolume is a 'volume' shader.
	ShaderVolume
)

// String returns the OSL source spelling of the shader type.
func (s ShaderType) String() string {
	switch s {
	case ShaderSurface:
		return "surface"
	case ShaderDisplacement:
		return "displacement"
	case ShaderLight:
		return "light"
	case ShaderVolume:
		return "volume"
	default:
		return "shader"
	}
}

// GlobalVar identifies one of OSL's predeclared global shader variables.
type GlobalVar int

const (
	// GlobalP is the surface position.
	GlobalP GlobalVar = iota
	// GlobalN is the shading normal.
	GlobalN
	// GlobalNg is the geometric normal.
	GlobalNg
	// GlobalDPdu is the surface derivative with respect to u.
	GlobalDPdu
	// GlobalDPdv is the surface derivative with respect to v.
	GlobalDPdv
	// GlobalU is the surface u parametric coordinate.
	GlobalU
	// GlobalV is the surface v parametric coordinate.
	GlobalV
	// GlobalI is the incident ray direction.
	GlobalI
	// GlobalTime is the shutter time.
	GlobalTime
	// GlobalDtime is the time differential.
	GlobalDtime
	// GlobalDPdtime is the point's time derivative.
	GlobalDPdtime
	// GlobalPs is the displacement-shader position (surface position
	// before displacement is applied).
	GlobalPs
	// GlobalCi is the output closure color; kept as a Void placeholder
	// type rather than its real closure/color type.
	GlobalCi
)

// globalTypes maps each predeclared global to its type, per the builtin
// surface this front-end seeds before the user's own symbols.
var globalTypes = map[GlobalVar]Type{ //nolint:gochecknoglobals
	GlobalP:       TypePoint,
	GlobalN:       TypeNormal,
	GlobalNg:      TypeNormal,
	GlobalDPdu:    TypeVector,
	GlobalDPdv:    TypeVector,
	GlobalU:       TypeFloat,
	GlobalV:       TypeFloat,
	GlobalI:       TypeVector,
	GlobalTime:    TypeFloat,
	GlobalDtime:   TypeFloat,
	GlobalDPdtime: TypeVector,
	GlobalPs:      TypePoint,
	GlobalCi:      TypeVoid,
}

// globalNames maps each predeclared global to its source spelling.
var globalNames = map[string]GlobalVar{ //nolint:gochecknoglobals
	"P":       GlobalP,
	"N":       GlobalN,
	"Ng":      GlobalNg,
	"dPdu":    GlobalDPdu,
	"dPdv":    GlobalDPdv,
	"u":       GlobalU,
	"v":       GlobalV,
	"I":       GlobalI,
	"time":    GlobalTime,
	"dtime":   GlobalDtime,
	"dPdtime": GlobalDPdtime,
	"Ps":      GlobalPs,
	"Ci":      GlobalCi,
}

// LookupGlobal returns the GlobalVar named by text, or (0, false) if text
// does not name a predeclared global.
func LookupGlobal(text string) (GlobalVar, bool) {
	g, ok := globalNames[text]
	return g, ok
}

// TypeOf returns the declared type of a predeclared global.
func (g GlobalVar) TypeOf() Type {
	return globalTypes[g]
}

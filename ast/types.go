package ast

// Format selects the output container the assembler is asked to produce.
type Format int

const (
	// FormatRaw is a plain binary image with no load header.
	FormatRaw Format = iota

	// FormatPRG is a loadable program without an autostart stub.
	FormatPRG

	// FormatBasic is a loadable program with a BASIC autostart stub. The
	// load address must be the canonical BASIC start address ($0801).
	FormatBasic
)

// BasicLoadAddress is the only load address valid for FormatBasic.
const BasicLoadAddress = 0x0801

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatPRG:
		return "prg"
	case FormatBasic:
		return "basicprg"
	}
	return "unknown"
}

// ZpOption selects how the generated program treats the zero page.
type ZpOption int

const (
	// ZpNone leaves the zero page alone; only the zero-page block's own
	// pre-assigned addresses are used.
	ZpNone ZpOption = iota

	// ZpClobberRestore saves the zero page before user code runs and
	// restores it when user code returns.
	ZpClobberRestore
)

func (z ZpOption) String() string {
	switch z {
	case ZpNone:
		return "zp-none"
	case ZpClobberRestore:
		return "zp-clobber-restore"
	}
	return "unknown"
}

// VarClass is the storage class of a variable definition.
type VarClass int

const (
	// ClassVar is a general variable: storage is allocated in the block
	// and the initial value is written by the block initializer.
	ClassVar VarClass = iota

	// ClassConst is a compile-time constant: no storage, the value is
	// equated to the name (strings share the variable representation).
	ClassConst

	// ClassMemory is a memory-mapped variable: the name aliases a fixed
	// address and no storage is allocated.
	ClassMemory

	// ClassZeroPage is a variable with a pre-assigned zero-page address.
	// The name aliases that address and the block initializer still
	// asserts the initial value each run.
	ClassZeroPage
)

func (c VarClass) String() string {
	switch c {
	case ClassVar:
		return "var"
	case ClassConst:
		return "const"
	case ClassMemory:
		return "memory"
	case ClassZeroPage:
		return "zeropage"
	}
	return "unknown"
}

// DataType is the scalar or aggregate data kind of a variable.
type DataType int

const (
	Byte DataType = iota
	Word
	Float
	ByteArray
	WordArray
	Matrix
	String   // 0-terminated
	StringP  // length-prefixed (pascal)
	StringS  // 0-terminated, screencode charset
	StringPS // length-prefixed, screencode charset
)

func (d DataType) String() string {
	switch d {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case Float:
		return "float"
	case ByteArray:
		return "bytearray"
	case WordArray:
		return "wordarray"
	case Matrix:
		return "matrix"
	case String:
		return "string"
	case StringP:
		return "string_p"
	case StringS:
		return "string_s"
	case StringPS:
		return "string_ps"
	}
	return "unknown"
}

// IsString reports whether the data type is one of the four string kinds.
func (d DataType) IsString() bool {
	switch d {
	case String, StringP, StringS, StringPS:
		return true
	}
	return false
}

// Package target parses and formats target-triple descriptions
// (`arch-os[-abi]`) consumed opaquely by the rest of this module and
// handed, verbatim, to the external code generator. Grounded on
// original_source/mira/src/target.rs's str_enum! macro-generated
// Arch/Os/Abi/Endianess types, translated to Go's fmt.Stringer idiom
// (String methods plus Parse* functions) instead of a derive macro,
// and additionally implementing flag.Value so a future driver can accept
// `-target x86_64-linux-gnu` directly.
package target

import (
	"fmt"
	"strings"
)

// Arch is a recognized target architecture.
type Arch uint8

const (
	X86 Arch = iota
	X86_64
)

func (a Arch) String() string {
	switch a {
	case X86:
		return "x86"
	case X86_64:
		return "x86_64"
	default:
		return "invalid"
	}
}

// ParseArch recognizes an Arch from its string form.
func ParseArch(s string) (Arch, bool) {
	switch s {
	case "x86":
		return X86, true
	case "x86_64":
		return X86_64, true
	default:
		return 0, false
	}
}

// Endianness fixes the original source's bug (§9, §6), which returned Big
// for both x86 variants. Both recognized Arch values are little-endian; a
// future Arch that isn't would need its own case added here rather than
// silently inheriting the default.
func (a Arch) Endianness() Endianness {
	return Little
}

// IsX86 reports whether a is any x86 variant.
func (a Arch) IsX86() bool { return a == X86 || a == X86_64 }

// GenericName returns the architecture family name LLVM groups both x86
// variants under.
func (a Arch) GenericName() string {
	if a.IsX86() {
		return "x86"
	}
	return a.String()
}

// LLVM returns the architecture component of an LLVM target triple.
func (a Arch) LLVM() string { return a.String() }

// LLVMCPU returns the LLVM CPU-architecture name, which spells x86_64 as
// "x86-64" unlike the triple component.
func (a Arch) LLVMCPU() string {
	if a == X86_64 {
		return "x86-64"
	}
	return a.String()
}

// Os is a recognized target operating system.
type Os uint8

const (
	Freestanding Os = iota
	Other
	Linux
)

func (o Os) String() string {
	switch o {
	case Freestanding:
		return "freestanding"
	case Other:
		return "other"
	case Linux:
		return "linux"
	default:
		return "invalid"
	}
}

// ParseOs recognizes an Os from its string form.
func ParseOs(s string) (Os, bool) {
	switch s {
	case "freestanding":
		return Freestanding, true
	case "other":
		return Other, true
	case "linux":
		return Linux, true
	default:
		return 0, false
	}
}

// ExeFileExt returns the executable file extension for o. Every
// recognized OS currently uses none.
func (o Os) ExeFileExt() string { return "" }

// DynamicLibExt returns the dynamic library file extension for o.
func (o Os) DynamicLibExt() string { return "so" }

// LLVMVendorOs returns the `vendor-os` component an LLVM triple uses in
// place of a bare OS name: "unknown" for freestanding/other targets,
// "pc-linux" for linux.
func (o Os) LLVMVendorOs() string {
	switch o {
	case Linux:
		return "pc-linux"
	default:
		return "unknown"
	}
}

// Abi is a recognized target ABI.
type Abi uint8

const (
	AbiNone Abi = iota
	Gnu
)

func (a Abi) String() string {
	switch a {
	case AbiNone:
		return "none"
	case Gnu:
		return "gnu"
	default:
		return "invalid"
	}
}

// ParseAbi recognizes an Abi from its string form.
func ParseAbi(s string) (Abi, bool) {
	switch s {
	case "none":
		return AbiNone, true
	case "gnu":
		return Gnu, true
	default:
		return 0, false
	}
}

// LLVM returns the ABI component of an LLVM target triple.
func (a Abi) LLVM() string { return a.String() }

// Endianness is a byte-order tag.
type Endianness uint8

const (
	Big Endianness = iota
	Little
)

func (e Endianness) String() string {
	if e == Big {
		return "big"
	}
	return "little"
}

// Target is a fully parsed `arch-os[-abi]` description.
type Target struct {
	Arch Arch
	Os   Os
	Abi  Abi
}

// New constructs a Target with an explicit ABI.
func New(arch Arch, os Os, abi Abi) Target { return Target{Arch: arch, Os: os, Abi: abi} }

// NewSimple constructs a Target with the default (none) ABI.
func NewSimple(arch Arch, os Os) Target { return New(arch, os, AbiNone) }

// Error is a target-parsing error kind (§6, §7).
type Error struct {
	Kind ErrorKind
}

// ErrorKind enumerates the ways a target-triple string can fail to parse.
type ErrorKind int

const (
	InvalidArch ErrorKind = iota
	InvalidOs
	InvalidAbi
	TooManyArguments
	MissingArch
	MissingOs
)

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidArch:
		return "invalid arch"
	case InvalidOs:
		return "invalid operating system"
	case InvalidAbi:
		return "invalid abi"
	case TooManyArguments:
		return "too many arguments: format is arch-os-abi or arch-os"
	case MissingArch:
		return "no arch specified: format is arch-os-abi or arch-os"
	case MissingOs:
		return "no os specified: format is arch-os-abi or arch-os"
	default:
		return "invalid target"
	}
}

// Parse parses a `arch-os[-abi]` string into a Target.
func Parse(s string) (Target, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 1 || parts[0] == "" {
		return Target{}, &Error{Kind: MissingArch}
	}
	if len(parts) < 2 {
		return Target{}, &Error{Kind: MissingOs}
	}
	if len(parts) > 3 {
		return Target{}, &Error{Kind: TooManyArguments}
	}

	arch, ok := ParseArch(parts[0])
	if !ok {
		return Target{}, &Error{Kind: InvalidArch}
	}
	os, ok := ParseOs(parts[1])
	if !ok {
		return Target{}, &Error{Kind: InvalidOs}
	}
	abi := AbiNone
	if len(parts) == 3 {
		abi, ok = ParseAbi(parts[2])
		if !ok {
			return Target{}, &Error{Kind: InvalidAbi}
		}
	}
	return Target{Arch: arch, Os: os, Abi: abi}, nil
}

// String formats t as `arch-os` when the ABI is the default, otherwise
// `arch-os-abi`.
func (t Target) String() string {
	if t.Abi == AbiNone {
		return fmt.Sprintf("%s-%s", t.Arch, t.Os)
	}
	return fmt.Sprintf("%s-%s-%s", t.Arch, t.Os, t.Abi)
}

// LLVMTriple formats t as the `arch-vendor-abi` string the code
// generator's target backend expects: `osvendor` is "unknown" for
// freestanding/other and "pc-linux" for linux; the ABI component is
// always present here, unlike String's default-ABI elision.
func (t Target) LLVMTriple() string {
	return fmt.Sprintf("%s-%s-%s", t.Arch.LLVM(), t.Os.LLVMVendorOs(), t.Abi.LLVM())
}

// Set implements flag.Value, parsing s into t.
func (t *Target) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

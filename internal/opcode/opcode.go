// Package opcode defines the organism instruction set: a fixed catalogue of
// 17 opcodes, each carrying a single optional 8-bit immediate parameter, and
// the two byte-packed register-address encodings used by several of them.
package opcode

import "fmt"

// Code identifies one of the 17 defined instructions. The zero value is
// LoadInt, which is deliberately a total no-op-ish default (LoadInt(0))
// so that a zeroed Opcode is well-defined rather than meaningless.
type Code byte

const (
	LoadInt Code = iota
	CopyRegisters
	Add
	AddClip
	SubClip
	Flip
	JumpUnconditional
	SkipZero
	MoveRelative
	LookRelative
	Eat
	Sythesize
	Clone
	Compare
	UseMinerals
	Share
	ShareMinerals

	numCodes
)

// NumCodes is the size of the instruction catalogue. Random generation and
// mutation both draw uniformly from [0, NumCodes).
const NumCodes = int(numCodes)

var names = [numCodes]string{
	LoadInt:           "LoadInt",
	CopyRegisters:     "CopyRegisters",
	Add:               "Add",
	AddClip:           "AddClip",
	SubClip:           "SubClip",
	Flip:              "Flip",
	JumpUnconditional: "JumpUnconditional",
	SkipZero:          "SkipZero",
	MoveRelative:      "MoveRelative",
	LookRelative:      "LookRelative",
	Eat:               "Eat",
	Sythesize:         "Sythesize",
	Clone:             "Clone",
	Compare:           "Compare",
	UseMinerals:       "UseMinerals",
	Share:             "Share",
	ShareMinerals:     "ShareMinerals",
}

func (c Code) String() string {
	if c < numCodes {
		return names[c]
	}
	return fmt.Sprintf("Code(%d)", byte(c))
}

// Valid reports whether c names one of the 17 defined instructions. Decode
// always normalizes to a valid Code (mod NumCodes), so this exists mainly
// for assertions in tests.
func (c Code) Valid() bool {
	return c < numCodes
}

// Opcode is a single instruction word: an opcode Code plus its one optional
// 8-bit immediate parameter. Not every Code interprets Param; opcodes with
// no parameter (MoveRelative, LookRelative, Eat, Sythesize, Compare,
// UseMinerals, Share, ShareMinerals) simply ignore it, which keeps every Opcode value
// fixed-width and total to decode.
type Opcode struct {
	Code  Code
	Param byte
}

func (o Opcode) String() string {
	return fmt.Sprintf("%s(%d)", o.Code, o.Param)
}

// AddressPair unpacks a byte into two nibble-sized register addresses,
// (from, to), per spec: from = b/16, to = b%16.
func AddressPair(b byte) (from, to int) {
	return int(b / 16), int(b % 16)
}

// Address unpacks a byte into a single nibble-sized register address,
// per spec: b%16.
func Address(b byte) int {
	return int(b % 16)
}

// Decode normalizes a raw byte into a valid Code by reduction modulo
// NumCodes. Used when interpreting arbitrary raw bytes (such as fuzzed
// input) as instructions; Decode never
// panics and always returns a Valid() Code, satisfying the "random code
// must never crash" requirement for any byte value.
func Decode(raw byte) Code {
	return Code(int(raw) % NumCodes)
}

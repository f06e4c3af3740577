package internal

import "fmt"

// Op identifies one of the CHIP-8 instructions.
type Op uint8

// The instruction set. Mnemonics follow Cowgod's technical reference.
const (
	OpCLS     Op = iota + 1 // 00E0
	OpRET                   // 00EE
	OpJP                    // 1nnn
	OpCALL                  // 2nnn
	OpSEByte                // 3xkk
	OpSNEByte               // 4xkk
	OpSEReg                 // 5xy0
	OpLDByte                // 6xkk
	OpADDByte               // 7xkk
	OpLDReg                 // 8xy0
	OpOR                    // 8xy1
	OpAND                   // 8xy2
	OpXOR                   // 8xy3
	OpADDReg                // 8xy4
	OpSUB                   // 8xy5
	OpSHR                   // 8xy6
	OpSUBN                  // 8xy7
	OpSHL                   // 8xyE
	OpSNEReg                // 9xy0
	OpLDI                   // Annn
	OpJPV0                  // Bnnn
	OpRND                   // Cxkk
	OpDRW                   // Dxyn
	OpSKP                   // Ex9E
	OpSKNP                  // ExA1
	OpLDVxDT                // Fx07
	OpLDVxK                 // Fx0A
	OpLDDTVx                // Fx15
	OpLDSTVx                // Fx18
	OpADDI                  // Fx1E
	OpLDF                   // Fx29
	OpLDB                   // Fx33
	OpLDIVx                 // Fx55
	OpLDVxI                 // Fx65
)

var opNames = map[Op]string{
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Instruction is a decoded instruction word with its operand fields
// already extracted.
type Instruction struct {
	Op  Op
	Raw uint16

	X   uint8  // bits 8-11, register index
	Y   uint8  // bits 4-7, register index
	N   uint8  // bits 0-3
	KK  uint8  // bits 0-7
	NNN uint16 // bits 0-11, address
}

// Decode parses a raw instruction word. Words that match no instruction
// return ErrUnknownOpcode.
func Decode(raw uint16) (Instruction, error) {
	in := Instruction{
		Raw: raw,
		X:   uint8(raw >> 8 & 0xF),
		Y:   uint8(raw >> 4 & 0xF),
		N:   uint8(raw & 0xF),
		KK:  uint8(raw),
		NNN: raw & 0x0FFF,
	}

	switch raw & 0xF000 { // the high nibble selects the family
	case 0x0000:
		switch raw {
		case 0x00E0:
			in.Op = OpCLS
		case 0x00EE:
			in.Op = OpRET
		}
	case 0x1000:
		in.Op = OpJP
	case 0x2000:
		in.Op = OpCALL
	case 0x3000:
		in.Op = OpSEByte
	case 0x4000:
		in.Op = OpSNEByte
	case 0x5000:
		if in.N == 0 {
			in.Op = OpSEReg
		}
	case 0x6000:
		in.Op = OpLDByte
	case 0x7000:
		in.Op = OpADDByte
	case 0x8000:
		switch in.N {
		case 0x0:
			in.Op = OpLDReg
		case 0x1:
			in.Op = OpOR
		case 0x2:
			in.Op = OpAND
		case 0x3:
			in.Op = OpXOR
		case 0x4:
			in.Op = OpADDReg
		case 0x5:
			in.Op = OpSUB
		case 0x6:
			in.Op = OpSHR
		case 0x7:
			in.Op = OpSUBN
		case 0xE:
			in.Op = OpSHL
		}
	case 0x9000:
		if in.N == 0 {
			in.Op = OpSNEReg
		}
	case 0xA000:
		in.Op = OpLDI
	case 0xB000:
		in.Op = OpJPV0
	case 0xC000:
		in.Op = OpRND
	case 0xD000:
		in.Op = OpDRW
	case 0xE000:
		switch in.KK {
		case 0x9E:
			in.Op = OpSKP
		case 0xA1:
			in.Op = OpSKNP
		}
	case 0xF000:
		switch in.KK {
		case 0x07:
			in.Op = OpLDVxDT
		case 0x0A:
			in.Op = OpLDVxK
		case 0x15:
			in.Op = OpLDDTVx
		case 0x18:
			in.Op = OpLDSTVx
		case 0x1E:
			in.Op = OpADDI
		case 0x29:
			in.Op = OpLDF
		case 0x33:
			in.Op = OpLDB
		case 0x55:
			in.Op = OpLDIVx
		case 0x65:
			in.Op = OpLDVxI
		}
	}

	if in.Op == 0 {
		return in, fmt.Errorf("%w: %.4X", ErrUnknownOpcode, raw)
	}
	return in, nil
}

// String returns the instruction in assembler syntax, e.g. "LD V1, $05".
func (in Instruction) String() string {
	name := in.Op.String()
	switch in.Op {
	case OpCLS, OpRET:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, in.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, in.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, in.X, in.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, in.X, in.Y)
	case OpSHR, OpSHL:
		return fmt.Sprintf("%s V%X {, V%X}", name, in.X, in.Y)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, in.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, in.X, in.Y, in.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, in.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, in.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, in.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, in.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, in.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, in.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, in.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, in.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, in.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, in.X)
	}
	return fmt.Sprintf("DW $%04X", in.Raw)
}

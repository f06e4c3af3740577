package internal

import "fmt"

// CHIP-8 memory layout
//
//	0x000-0x04F: font glyphs
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	fontStartAddr  = 0x000
	glyphSize      = 5
	maxProgramSize = totalMemory - pcStartAddr

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = pcStartAddr
	// MaxProgramSize is the largest ROM that fits in memory.
	MaxProgramSize = maxProgramSize
)

var fontset = [16 * glyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4 KB address space of the VM.
type Memory [totalMemory]uint8

func (m *Memory) init() {
	*m = Memory{}
	copy(m[fontStartAddr:], fontset[:])
}

// loadProgram zeroes the program area and copies rom into it.
func (m *Memory) loadProgram(rom []byte) {
	prog := m[pcStartAddr:]
	for i := range prog {
		prog[i] = 0
	}
	copy(prog, rom)
}

// fetch reads the big-endian instruction word at addr. Only the program
// area is executable.
func (m *Memory) fetch(addr uint16) (uint16, error) {
	if addr < pcStartAddr || int(addr)+1 >= totalMemory {
		return 0, fmt.Errorf("%w: fetch at %.4x", ErrMemoryOutOfBounds, addr)
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// span returns n bytes starting at addr for reading.
func (m *Memory) span(addr uint16, n int) ([]uint8, error) {
	if int(addr)+n > totalMemory {
		return nil, fmt.Errorf("%w: read %d bytes at %.4x", ErrMemoryOutOfBounds, n, addr)
	}
	return m[int(addr) : int(addr)+n], nil
}

// writable returns n bytes starting at addr for writing. The font and
// interpreter area below the program start is never writable.
func (m *Memory) writable(addr uint16, n int) ([]uint8, error) {
	if addr < pcStartAddr || int(addr)+n > totalMemory {
		return nil, fmt.Errorf("%w: write %d bytes at %.4x", ErrMemoryOutOfBounds, n, addr)
	}
	return m[int(addr) : int(addr)+n], nil
}

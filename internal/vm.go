package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const stackDepth = 16

// State is the execution state of the VM.
type State uint8

const (
	Running     State = iota
	AwaitingKey       // suspended by Fx0A until a key is pressed
	Halted            // stopped by an error; see C8VM.Err
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Quirks select between behaviours that differ across historical
// interpreters. The zero value matches the behaviour most modern ROMs
// expect.
type Quirks struct {
	// ShiftVY makes 8xy6 and 8xyE shift Vy into Vx instead of shifting Vx
	// in place.
	ShiftVY bool

	// IncrementIndex makes Fx55 and Fx65 leave I pointing past the last
	// register stored or loaded (I = I + x + 1).
	IncrementIndex bool

	// ResetVF makes 8xy1, 8xy2 and 8xy3 clear VF.
	ResetVF bool
}

// Option configures a C8VM.
type Option func(*C8VM)

// WithQuirks selects the quirks the VM runs with.
func WithQuirks(q Quirks) Option {
	return func(vm *C8VM) { vm.quirks = q }
}

// WithLenient makes Step skip unknown opcodes instead of halting.
func WithLenient(lenient bool) Option {
	return func(vm *C8VM) { vm.lenient = lenient }
}

// WithSeed seeds the random number generator used by Cxkk.
func WithSeed(seed int64) Option {
	return func(vm *C8VM) { vm.rng = rand.New(rand.NewSource(seed)) }
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackDepth]uint16 // A stack of 16 16-bit return addresses
	memory     Memory             // 4 KB global memory

	display Display
	keypad  Keypad

	state   State
	waitReg uint8 // destination register while AwaitingKey
	err     error // set when Halted
	cycles  uint64

	quirks  Quirks
	lenient bool
	rng     *rand.Rand
	rom     []byte
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM with an empty
// program.
func NewC8VM(opts ...Option) *C8VM {
	vm := &C8VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rng == nil {
		vm.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	vm.memory.init()
	vm.reset()
	return vm
}

// Load copies rom into program memory and resets the VM. A ROM that does
// not fit returns ErrRomTooLarge and leaves the VM untouched.
func (vm *C8VM) Load(rom []byte) error {
	if len(rom) > maxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrRomTooLarge, len(rom), maxProgramSize)
	}
	vm.rom = append(vm.rom[:0], rom...)
	vm.reset()
	return nil
}

// Reset restarts the most recently loaded ROM from scratch.
func (vm *C8VM) Reset() {
	vm.reset()
}

func (vm *C8VM) reset() {
	vm.memory.loadProgram(vm.rom)
	vm.opcode = 0
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.pc = pcStartAddr
	vm.sp = 0
	vm.stack = [stackDepth]uint16{}
	vm.display.Clear()
	vm.keypad.ReleaseAll()
	vm.state = Running
	vm.waitReg = 0
	vm.err = nil
	vm.cycles = 0
}

// Step executes one fetch-decode-execute cycle. While the VM is awaiting a
// key it only polls the keypad. Once Step has returned an error the VM is
// halted and every further call returns the same error.
func (vm *C8VM) Step() error {
	switch vm.state {
	case Halted:
		return vm.err
	case AwaitingKey:
		if code, ok := vm.keypad.PollAnyPressed(); ok {
			vm.regV[vm.waitReg] = code
			vm.state = Running
		}
		return nil
	}

	addr := vm.pc
	word, err := vm.memory.fetch(addr)
	if err != nil {
		return vm.halt(err, word, addr)
	}
	vm.opcode = word
	vm.pc += 2

	in, err := Decode(word)
	if err == nil {
		err = vm.execute(in)
	}
	if err != nil {
		return vm.halt(err, word, addr)
	}
	vm.cycles++
	return nil
}

func (vm *C8VM) halt(err error, opcode, addr uint16) error {
	if vm.lenient && errors.Is(err, ErrUnknownOpcode) {
		vm.cycles++
		return nil
	}
	vm.err = &HaltError{Err: err, Opcode: opcode, Addr: addr}
	vm.state = Halted
	return vm.err
}

// TickTimers decrements the delay and sound timers. The host calls it at
// 60Hz regardless of how fast instructions execute.
func (vm *C8VM) TickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// Display returns the frame buffer.
func (vm *C8VM) Display() *Display { return &vm.display }

// Keypad returns the key state the host updates.
func (vm *C8VM) Keypad() *Keypad { return &vm.keypad }

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 { return vm.delayTimer }

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 { return vm.soundTimer }

// SoundActive reports whether the tone should be playing.
func (vm *C8VM) SoundActive() bool { return vm.soundTimer > 0 }

// State returns the execution state.
func (vm *C8VM) State() State { return vm.state }

// Err returns the error that halted the VM, if any.
func (vm *C8VM) Err() error { return vm.err }

// Cycles returns the number of instructions executed since the last reset.
func (vm *C8VM) Cycles() uint64 { return vm.cycles }

// Quirks returns the quirks the VM runs with.
func (vm *C8VM) Quirks() Quirks { return vm.quirks }

// Snapshot is a copy of the VM registers, used for debug displays and
// state dumps.
type Snapshot struct {
	V          [16]uint8
	I          uint16
	PC         uint16
	SP         uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	Opcode     uint16 // last executed opcode
	Next       string // disassembly of the instruction at PC
	State      State
	Cycles     uint64
}

// Snapshot returns a copy of the current registers.
func (vm *C8VM) Snapshot() Snapshot {
	s := Snapshot{
		V:          vm.regV,
		I:          vm.regI,
		PC:         vm.pc,
		SP:         vm.sp,
		Stack:      append([]uint16(nil), vm.stack[:vm.sp]...),
		DelayTimer: vm.delayTimer,
		SoundTimer: vm.soundTimer,
		Opcode:     vm.opcode,
		State:      vm.state,
		Cycles:     vm.cycles,
	}
	if word, err := vm.memory.fetch(vm.pc); err == nil {
		in, _ := Decode(word)
		s.Next = in.String()
	}
	return s
}

package internal

// execute runs a decoded instruction. The program counter already points
// at the following instruction.
func (vm *C8VM) execute(in Instruction) error {
	x, y := in.X, in.Y

	switch in.Op {
	case OpCLS:
		vm.display.Clear()
	case OpRET:
		if vm.sp == 0 {
			return ErrStackUnderflow
		}
		vm.sp--
		vm.pc = vm.stack[vm.sp]
	case OpJP:
		vm.pc = in.NNN
	case OpCALL:
		if int(vm.sp) == len(vm.stack) {
			return ErrStackOverflow
		}
		vm.stack[vm.sp] = vm.pc
		vm.sp++
		vm.pc = in.NNN
	case OpSEByte:
		vm.skipIf(vm.regV[x] == in.KK)
	case OpSNEByte:
		vm.skipIf(vm.regV[x] != in.KK)
	case OpSEReg:
		vm.skipIf(vm.regV[x] == vm.regV[y])
	case OpSNEReg:
		vm.skipIf(vm.regV[x] != vm.regV[y])
	case OpLDByte:
		vm.regV[x] = in.KK
	case OpADDByte:
		vm.regV[x] += in.KK
	case OpLDReg:
		vm.regV[x] = vm.regV[y]
	case OpOR:
		vm.logic(x, vm.regV[x]|vm.regV[y])
	case OpAND:
		vm.logic(x, vm.regV[x]&vm.regV[y])
	case OpXOR:
		vm.logic(x, vm.regV[x]^vm.regV[y])
	case OpADDReg:
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.setWithFlag(x, uint8(sum), sum > 0xFF)
	case OpSUB:
		vx, vy := vm.regV[x], vm.regV[y]
		vm.setWithFlag(x, vx-vy, vx >= vy)
	case OpSUBN:
		vx, vy := vm.regV[x], vm.regV[y]
		vm.setWithFlag(x, vy-vx, vy >= vx)
	case OpSHR:
		v := vm.shiftSource(x, y)
		vm.setWithFlag(x, v>>1, v&0x01 == 0x01)
	case OpSHL:
		v := vm.shiftSource(x, y)
		vm.setWithFlag(x, v<<1, v&0x80 == 0x80)
	case OpLDI:
		vm.regI = in.NNN
	case OpJPV0:
		vm.pc = in.NNN + uint16(vm.regV[0])
	case OpRND:
		vm.regV[x] = uint8(vm.rng.Intn(256)) & in.KK
	case OpDRW:
		sprite, err := vm.memory.span(vm.regI, int(in.N))
		if err != nil {
			return err
		}
		collision := vm.display.DrawSprite(int(vm.regV[x]), int(vm.regV[y]), sprite)
		vm.regV[0xF] = flag(collision)
	case OpSKP:
		vm.skipIf(vm.keypad.IsPressed(vm.regV[x] & 0xF))
	case OpSKNP:
		vm.skipIf(!vm.keypad.IsPressed(vm.regV[x] & 0xF))
	case OpLDVxDT:
		vm.regV[x] = vm.delayTimer
	case OpLDVxK:
		if code, ok := vm.keypad.PollAnyPressed(); ok {
			vm.regV[x] = code
			break
		}
		vm.state = AwaitingKey
		vm.waitReg = x
	case OpLDDTVx:
		vm.delayTimer = vm.regV[x]
	case OpLDSTVx:
		vm.soundTimer = vm.regV[x]
	case OpADDI:
		vm.regI += uint16(vm.regV[x])
	case OpLDF:
		vm.regI = fontStartAddr + uint16(vm.regV[x]&0xF)*glyphSize
	case OpLDB:
		mem, err := vm.memory.writable(vm.regI, 3)
		if err != nil {
			return err
		}
		v := vm.regV[x]
		mem[0] = v / 100
		mem[1] = v / 10 % 10
		mem[2] = v % 10
	case OpLDIVx:
		mem, err := vm.memory.writable(vm.regI, int(x)+1)
		if err != nil {
			return err
		}
		copy(mem, vm.regV[:x+1])
		vm.advanceIndex(x)
	case OpLDVxI:
		mem, err := vm.memory.span(vm.regI, int(x)+1)
		if err != nil {
			return err
		}
		copy(vm.regV[:x+1], mem)
		vm.advanceIndex(x)
	default:
		return ErrUnknownOpcode
	}
	return nil
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

// setWithFlag writes the result before the flag, so VF holds the flag when
// x is 0xF.
func (vm *C8VM) setWithFlag(x, result uint8, f bool) {
	vm.regV[x] = result
	vm.regV[0xF] = flag(f)
}

func (vm *C8VM) logic(x, result uint8) {
	vm.regV[x] = result
	if vm.quirks.ResetVF {
		vm.regV[0xF] = 0
	}
}

func (vm *C8VM) shiftSource(x, y uint8) uint8 {
	if vm.quirks.ShiftVY {
		return vm.regV[y]
	}
	return vm.regV[x]
}

func (vm *C8VM) advanceIndex(x uint8) {
	if vm.quirks.IncrementIndex {
		vm.regI += uint16(x) + 1
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

package internal

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad holds the state of the 16 keys. The host updates it between
// cycles; instructions only read it.
type Keypad struct {
	// A 16-bit integer to hold the current key values in the form of
	// individual bits. So when 0 is pushed in the keypad, the 0'th bit will
	// be set and so on.
	key uint16
}

// SetKey records a key transition. Codes above 0xF are ignored.
func (k *Keypad) SetKey(code uint8, pressed bool) {
	if code >= KeyCount {
		return
	}
	if pressed {
		k.key |= 1 << code
	} else {
		k.key &^= 1 << code
	}
}

// IsPressed returns whether the key is currently down.
func (k *Keypad) IsPressed(code uint8) bool {
	if code >= KeyCount {
		return false
	}
	mask := uint16(1) << code
	return k.key&mask == mask
}

// PollAnyPressed returns the highest key that is currently down.
func (k *Keypad) PollAnyPressed() (uint8, bool) {
	for code := KeyCount - 1; code >= 0; code-- {
		if k.IsPressed(uint8(code)) {
			return uint8(code), true
		}
	}
	return 0, false
}

// ReleaseAll releases every key.
func (k *Keypad) ReleaseAll() {
	k.key = 0
}

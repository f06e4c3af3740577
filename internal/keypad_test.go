package internal

import "testing"

func TestKeypad(t *testing.T) {
	var k Keypad
	if _, ok := k.PollAnyPressed(); ok {
		t.Error("key pressed on new keypad")
	}
	k.SetKey(0xA, true)
	k.SetKey(0x3, true)
	k.SetKey(0x3, true)
	if !k.IsPressed(0xA) || !k.IsPressed(0x3) || k.IsPressed(0x4) {
		t.Errorf("pressed state == %016b, want keys 3 and A", k.key)
	}
	if code, ok := k.PollAnyPressed(); !ok || code != 0xA {
		t.Errorf("PollAnyPressed == %x, %v, want a, true", code, ok)
	}

	// Releasing twice must not press the key again.
	k.SetKey(0xA, false)
	k.SetKey(0xA, false)
	if k.IsPressed(0xA) {
		t.Error("key a still pressed")
	}
	if code, ok := k.PollAnyPressed(); !ok || code != 0x3 {
		t.Errorf("PollAnyPressed == %x, %v, want 3, true", code, ok)
	}

	k.SetKey(0xF, true)
	k.SetKey(0x0, true)
	if code, ok := k.PollAnyPressed(); !ok || code != 0xF {
		t.Errorf("PollAnyPressed == %x, %v, want f, true", code, ok)
	}
	k.SetKey(0xF, false)

	k.SetKey(0x10, true)
	if k.IsPressed(0x10) {
		t.Error("out of range key reported pressed")
	}

	k.ReleaseAll()
	if _, ok := k.PollAnyPressed(); ok {
		t.Error("key pressed after ReleaseAll")
	}
}

package sdl

import (
	"errors"
	"strings"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestKeymap(t *testing.T) {
	cases := []struct {
		code sdl.Scancode
		want int8
	}{
		{sdl.SCANCODE_1, 0x1},
		{sdl.SCANCODE_4, 0xC},
		{sdl.SCANCODE_Q, 0x4},
		{sdl.SCANCODE_R, 0xD},
		{sdl.SCANCODE_F, 0xE},
		{sdl.SCANCODE_X, 0x0},
		{sdl.SCANCODE_V, 0xF},
		{sdl.SCANCODE_P, -1},
		{sdl.SCANCODE_ESCAPE, -1},
	}
	for _, c := range cases {
		if got := keymap(c.code); got != c.want {
			t.Errorf("keymap(%d) == %d, want %d", c.code, got, c.want)
		}
	}
}

func TestKeymapCoversKeypad(t *testing.T) {
	seen := make(map[int8]bool)
	for i := 0; i < 512; i++ {
		if k := keymap(sdl.Scancode(i)); k != -1 {
			if seen[k] {
				t.Errorf("key %X mapped twice", k)
			}
			seen[k] = true
		}
	}
	if len(seen) != 16 {
		t.Errorf("%d keys mapped, want 16", len(seen))
	}
}

func TestCycle(t *testing.T) {
	if got := cycle(0, -1, len(palette)); got != len(palette)-1 {
		t.Errorf("cycle back from 0 == %d, want %d", got, len(palette)-1)
	}
	if got := cycle(len(palette)-1, 1, len(palette)); got != 0 {
		t.Errorf("cycle forward from last == %d, want 0", got)
	}
}

func TestSquareWave(t *testing.T) {
	b := squareWave(128, samplesPerTick)
	if len(b) != samplesPerTick {
		t.Fatalf("len == %d, want %d", len(b), samplesPerTick)
	}
	if b[0] != 128+volume || b[50] != 128-volume {
		t.Errorf("b[0], b[50] == %d, %d, want %d, %d", b[0], b[50], 128+volume, 128-volume)
	}
}

func TestSetToneKeepsQueueError(t *testing.T) {
	var queuedBytes uint32
	calls := 0
	aud := &Audio{
		tick: squareWave(128, samplesPerTick),
		queue: func(sdl.AudioDeviceID, []byte) error {
			calls++
			return errors.New("device lost")
		},
		queued: func(sdl.AudioDeviceID) uint32 { return queuedBytes },
		clear:  func(sdl.AudioDeviceID) { queuedBytes = 0 },
	}
	if aud.Err() != nil {
		t.Fatalf("Err() == %v before any tone", aud.Err())
	}
	aud.SetTone(true)
	aud.SetTone(true)
	if calls != 2 {
		t.Errorf("queued %d times, want 2", calls)
	}
	if err := aud.Err(); err == nil || !strings.Contains(err.Error(), "device lost") {
		t.Errorf("Err() == %v, want device lost", err)
	}
}

func TestSetToneLimitsQueue(t *testing.T) {
	queuedBytes := uint32(0)
	cleared := false
	aud := &Audio{
		tick: squareWave(128, samplesPerTick),
		queue: func(_ sdl.AudioDeviceID, b []byte) error {
			queuedBytes += uint32(len(b))
			return nil
		},
		queued: func(sdl.AudioDeviceID) uint32 { return queuedBytes },
		clear:  func(sdl.AudioDeviceID) { cleared = true; queuedBytes = 0 },
	}
	for i := 0; i < 10; i++ {
		aud.SetTone(true)
	}
	if limit := uint32((maxQueuedTicks + 1) * samplesPerTick); queuedBytes > limit {
		t.Errorf("queued %d bytes, want at most %d", queuedBytes, limit)
	}
	aud.SetTone(false)
	if !cleared || queuedBytes != 0 {
		t.Errorf("queue not cleared when the tone stops")
	}
	if aud.Err() != nil {
		t.Errorf("Err() == %v", aud.Err())
	}
}

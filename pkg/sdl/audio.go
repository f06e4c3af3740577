package sdl

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleFreq     = 44100
	samplesPerTick = sampleFreq / 60
	toneFreq       = 440
	volume         = 32

	// Ticks of audio allowed to sit in the device queue. Keeps the tone
	// close to the sound timer.
	maxQueuedTicks = 3
)

// Audio plays the CHIP-8 buzzer through an SDL audio device.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec
	tick []uint8
	err  error // first queueing failure

	queue  func(sdl.AudioDeviceID, []byte) error
	queued func(sdl.AudioDeviceID) uint32
	clear  func(sdl.AudioDeviceID)
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleFreq,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	var err error
	aud := &Audio{
		queue:  sdl.QueueAudio,
		queued: sdl.GetQueuedAudioSize,
		clear:  sdl.ClearQueuedAudio,
	}
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, err
	}

	aud.tick = squareWave(aud.spec.Silence, samplesPerTick)
	sdl.PauseAudioDevice(aud.id, false)
	return aud, nil
}

func squareWave(silence uint8, n int) []uint8 {
	const halfPeriod = sampleFreq / toneFreq / 2
	b := make([]uint8, n)
	for i := range b {
		if (i/halfPeriod)%2 == 0 {
			b[i] = silence + volume
		} else {
			b[i] = silence - volume
		}
	}
	return b
}

// SetTone implements host.AudioSink. While the tone is on, one tick of
// square wave is queued per call; turning it off drops anything queued.
// The first queueing failure is logged and kept for Err.
func (aud *Audio) SetTone(on bool) {
	if !on {
		aud.clear(aud.id)
		return
	}
	if aud.queued(aud.id) > uint32(maxQueuedTicks*len(aud.tick)) {
		return
	}
	if err := aud.queue(aud.id, aud.tick); err != nil && aud.err == nil {
		aud.err = fmt.Errorf("queueing audio: %w", err)
		log.Print(aud.err)
	}
}

// Err returns the first error met while queueing audio.
func (aud *Audio) Err() error { return aud.err }

// Close releases the audio device and reports any queueing error.
func (aud *Audio) Close() error {
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	return aud.err
}

// Package wavwriter records the CHIP-8 tone to a WAV file.
package wavwriter

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Output format of the recording.
const (
	SampleRate = 44100
	BitDepth   = 16

	// SamplesPerTick is the number of samples covering one 60Hz timer tick.
	SamplesPerTick = SampleRate / 60

	toneFreq  = 440
	amplitude = 8000
)

// WavWriter streams the tone to a WAV file, one timer tick at a time.
type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer // reused for every tick
	phase    int
	samples  int
	err      error // first write error, returned by EndMixing
}

// New is the preferred method of initialisation for the WavWriter type. The
// file is created immediately.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("wavwriter: no filename")
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavwriter: %w", err)
	}
	return &WavWriter{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, SampleRate, BitDepth, 1, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
			Data:           make([]int, SamplesPerTick),
			SourceBitDepth: BitDepth,
		},
	}, nil
}

// SetTone writes one timer tick of audio: a square wave when on, silence
// otherwise. Implements host.AudioSink.
func (aw *WavWriter) SetTone(on bool) {
	const halfPeriod = SampleRate / toneFreq / 2
	for i := range aw.buf.Data {
		v := 0
		if on {
			if (aw.phase/halfPeriod)%2 == 0 {
				v = amplitude
			} else {
				v = -amplitude
			}
			aw.phase++
		}
		aw.buf.Data[i] = v
	}
	if !on {
		aw.phase = 0
	}
	if aw.err != nil {
		return
	}
	if err := aw.enc.Write(aw.buf); err != nil {
		aw.err = fmt.Errorf("wavwriter: %w", err)
		log.Print(aw.err)
		return
	}
	aw.samples += len(aw.buf.Data)
}

// Samples returns the number of samples written so far.
func (aw *WavWriter) Samples() int { return aw.samples }

// EndMixing finishes the WAV header and closes the file.
func (aw *WavWriter) EndMixing() (rerr error) {
	defer func() {
		if err := aw.f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()
	if aw.err != nil {
		return aw.err
	}
	if err := aw.enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	log.Printf("wrote %d samples of audio to %s", aw.samples, aw.filename)
	return nil
}

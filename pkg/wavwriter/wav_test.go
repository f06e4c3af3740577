package wavwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestEndMixing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tone.wav")
	aw, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	aw.SetTone(true)
	aw.SetTone(true)
	aw.SetTone(false)
	if got, want := aw.Samples(), 3*SamplesPerTick; got != want {
		t.Fatalf("Samples() == %d, want %d", got, want)
	}
	if err := aw.EndMixing(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != SampleRate || dec.NumChans != 1 || dec.BitDepth != BitDepth {
		t.Errorf("format == %d Hz %d ch %d bit, want %d Hz 1 ch %d bit",
			dec.SampleRate, dec.NumChans, dec.BitDepth, SampleRate, BitDepth)
	}
	if got, want := len(buf.Data), 3*SamplesPerTick; got != want {
		t.Fatalf("decoded %d samples, want %d", got, want)
	}
	if buf.Data[0] != amplitude {
		t.Errorf("first sample == %d, want %d", buf.Data[0], amplitude)
	}
	var low bool
	for _, v := range buf.Data[:2*SamplesPerTick] {
		if v == -amplitude {
			low = true
		}
	}
	if !low {
		t.Error("tone never swings low")
	}
	for i, v := range buf.Data[2*SamplesPerTick:] {
		if v != 0 {
			t.Fatalf("sample %d of silence == %d, want 0", i, v)
		}
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "tone.wav")); err == nil {
		t.Error("New in a missing directory succeeded")
	}
}

func TestLongRecordingStreams(t *testing.T) {
	name := filepath.Join(t.TempDir(), "long.wav")
	aw, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	const ticks = 60 * 60 // one minute
	for i := 0; i < ticks; i++ {
		aw.SetTone(i%2 == 0)
	}
	if got := cap(aw.buf.Data); got != SamplesPerTick {
		t.Errorf("tick buffer capacity == %d, want %d", got, SamplesPerTick)
	}
	if err := aw.EndMixing(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(buf.Data), ticks*SamplesPerTick; got != want {
		t.Errorf("decoded %d samples, want %d", got, want)
	}
}

func TestNewWithoutFilename(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") succeeded")
	}
}

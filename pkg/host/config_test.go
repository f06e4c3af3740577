package host

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mnafees/chopper/v2/internal"
)

func TestRegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	err := fs.Parse([]string{"-ips", "1200", "-shift-vy", "-increment-index", "-lenient", "-seed", "7", "-wav", "out.wav", "rom.ch8"})
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.IPS = 1200
	want.Quirks = internal.Quirks{ShiftVY: true, IncrementIndex: true}
	want.Lenient = true
	want.Seed = 7
	want.WAVFile = "out.wav"
	if cfg != want {
		t.Errorf("config == %+v, want %+v", cfg, want)
	}
	if fs.Arg(0) != "rom.ch8" {
		t.Errorf("arg == %q, want rom.ch8", fs.Arg(0))
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config: %v", err)
	}
	cfg := DefaultConfig()
	cfg.IPS = 50
	cfg.FrameRate = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() == nil")
	}
	for _, want := range []string{"ips", "fps"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestVMOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quirks.ResetVF = true
	vm := internal.NewC8VM(cfg.VMOptions()...)
	if !vm.Quirks().ResetVF {
		t.Error("ResetVF quirk not applied")
	}
}

func TestDump(t *testing.T) {
	vm := internal.NewC8VM(internal.WithSeed(1))
	if err := vm.Load([]byte{0x6A, 0x42}); err != nil {
		t.Fatal(err)
	}
	vm.Step()
	name := filepath.Join(t.TempDir(), "state.dot")
	if err := Dump(name, vm); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "digraph") {
		t.Errorf("dump is not a graph:\n%s", b)
	}
}

package app

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/louis-kldzj/game-tools/internal/palette"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-density", "320", "-palette", "ammo8", "-no-overlay", "-seed", "9"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	o, err := cfg.Options(zap.NewNop())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if o.Density != 320 || o.Palette != palette.Ammo8 || o.Overlay {
		t.Fatalf("unexpected options %+v", o)
	}
	if cfg.ResolvedSeed() != 9 {
		t.Fatalf("seed %d", cfg.ResolvedSeed())
	}
}

func TestOptionsRejectsBadFlags(t *testing.T) {
	cfg := NewConfig()
	cfg.Palette = "mauve"
	if _, err := cfg.Options(zap.NewNop()); err == nil {
		t.Fatalf("expected unknown palette error")
	}
	cfg = NewConfig()
	cfg.Density = -2
	if _, err := cfg.Options(zap.NewNop()); err == nil {
		t.Fatalf("expected invalid density error")
	}
}

func TestOptionsFileOverridesAndBadFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.conf")
	os.WriteFile(good, []byte("stars=false\n"), 0o644)
	cfg := NewConfig()
	cfg.ConfigPath = good
	o, err := cfg.Options(zap.NewNop())
	if err != nil || o.Stars {
		t.Fatalf("options file not applied: %+v err=%v", o, err)
	}

	bad := filepath.Join(dir, "bad.conf")
	os.WriteFile(bad, []byte("stars=false\ndensity=abc\n"), 0o644)
	cfg.ConfigPath = bad
	o, err = cfg.Options(zap.NewNop())
	if err != nil || !o.Stars {
		t.Fatalf("bad file should be skipped: %+v err=%v", o, err)
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, a := got.At(1, 1).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Fatalf("pixel not preserved")
	}
}

func TestEnsureExt(t *testing.T) {
	if got := EnsureExt("shot", ".png"); got != "shot.png" {
		t.Fatalf("got %q", got)
	}
	if got := EnsureExt("shot.PNG", ".png"); got != "shot.PNG" {
		t.Fatalf("got %q", got)
	}
}

func TestBadOptionsFileIsLogged(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.conf")
	os.WriteFile(bad, []byte("density=abc\n"), 0o644)
	obs, logs := observer.New(zap.DebugLevel)
	cfg := NewConfig()
	cfg.ConfigPath = bad
	if _, err := cfg.Options(zap.New(obs)); err != nil {
		t.Fatalf("options: %v", err)
	}
	entries := logs.FilterMessage("options file ignored").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != bad {
		t.Fatalf("logged path %v, want %s", got, bad)
	}
}

func TestDebugLoggerAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cfg := NewConfig()
	cfg.Debug = true
	l, closeLog := cfg.openLogger(path)
	l.Info("frame", zap.Int("rev", 3))
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "debug logging enabled") || !strings.Contains(string(data), "frame") {
		t.Fatalf("log file missing entries:\n%s", data)
	}

	cfg.Debug = false
	if _, closeLog := cfg.openLogger(path); closeLog() != nil {
		t.Fatalf("nop closer failed")
	}
}

func TestPickResultMapsCancel(t *testing.T) {
	if _, err := pickResult("", zenity.ErrCanceled); !errors.Is(err, ErrCanceled) {
		t.Fatalf("cancel mapped to %v", err)
	}
	boom := errors.New("boom")
	if _, err := pickResult("", boom); !errors.Is(err, boom) {
		t.Fatalf("error mapped to %v", err)
	}
	if path, err := pickResult("a.conf", nil); err != nil || path != "a.conf" {
		t.Fatalf("got %q, %v", path, err)
	}
}

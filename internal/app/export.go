package app

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
)

// ErrCanceled reports a dialog closed without a choice.
var ErrCanceled = errors.New("app: dialog canceled")

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// EnsureExt appends ext to path unless it already ends with it.
func EnsureExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// PickOptionsFile asks for an options file to load.
func PickOptionsFile() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Load options"),
		zenity.FileFilters{{
			Name:     "Options",
			Patterns: []string{"*.conf", "*.txt"},
		}},
	)
	return pickResult(path, err)
}

// PickSaveFile asks where to write a file of the given kind.
func PickSaveFile(title, name, pattern string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title(title),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     name,
			Patterns: []string{pattern},
		}},
	)
	return pickResult(path, err)
}

// pickResult maps a zenity cancel onto ErrCanceled.
func pickResult(path string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCanceled
		}
		return "", err
	}
	return path, nil
}

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/louis-kldzj/game-tools/internal/palette"
)

// ErrUnknownKey reports a config entry no option answers to.
var ErrUnknownKey = errors.New("config: unknown key")

// ParseError describes one rejected config entry.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FromMap applies key/value pairs on top of base. Unlike the command-line
// flags, a file is applied all or nothing: any bad entry returns base
// unchanged together with every error found.
func FromMap(base Options, kv map[string]string) (Options, error) {
	c := base
	var errs []error
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := strings.TrimSpace(kv[k])
		if err := c.set(k, v); err != nil {
			errs = append(errs, &ParseError{Key: k, Value: v, Err: err})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return base, err
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

func (o *Options) set(key, value string) error {
	switch key {
	case keyDensity:
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		if _, err := o.setDensity(d); err != nil {
			return err
		}
		return nil
	case keyPalette:
		id, err := palette.Parse(value)
		if err != nil {
			return err
		}
		o.Palette = id
		return nil
	}
	f, ok := fieldForKey(key)
	if !ok {
		return ErrUnknownKey
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*o.field(f) = b
	return nil
}

// ToMap renders the options as persisted key/value pairs.
func (o Options) ToMap() map[string]string {
	out := map[string]string{
		keyDensity: strconv.FormatFloat(o.Density, 'f', -1, 64),
		keyPalette: o.Palette.String(),
	}
	for f := Field(0); f < numFields; f++ {
		out[f.Key()] = strconv.FormatBool(o.Get(f))
	}
	return out
}

// Parse reads key=value lines. Blank lines and lines starting with '#' are
// skipped.
func Parse(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		k, v, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: missing '='", line)
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Write renders the options in the format Parse reads, keys sorted.
func Write(w io.Writer, o Options) error {
	kv := o.ToMap()
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", k, kv[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads a config file on top of base. On any error base is returned.
func Load(path string, base Options) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, err
	}
	defer f.Close()
	kv, err := Parse(f)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	o, err := FromMap(base, kv)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Save writes the options to path.
func Save(path string, o Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

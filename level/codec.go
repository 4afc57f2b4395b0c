package level

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Decode reads one level in TOML form. The result is not validated;
// callers decide whether a malformed level is fatal or skippable.
func Decode(r io.Reader) (*Data, error) {
	var d Data
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	return &d, nil
}

// DecodeFile reads and decodes a single level file.
func DecodeFile(path string) (*Data, error) {
	var d Data
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, fmt.Errorf("decode level %s: %w", path, err)
	}
	return &d, nil
}

// Encode writes the level as TOML.
func Encode(w io.Writer, d *Data) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode level %q: %w", d.Name, err)
	}
	return nil
}

// EncodeString renders the level as a TOML document, the form used by
// the editor's copy buffer and save files.
func EncodeString(d *Data) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile atomically replaces path with the encoded level, going
// through a temp file so a crash mid-write cannot truncate a save.
func WriteFile(path string, d *Data) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write level %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write level %s: %w", path, err)
	}
	return nil
}

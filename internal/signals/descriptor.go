// SPDX-License-Identifier: MPL-2.0

package signals

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/targetprobe/targetprobe/pkg/cueutil"
	"github.com/targetprobe/targetprobe/pkg/platform"
)

//go:embed descriptor_schema.cue
var descriptorSchema []byte

type (
	// TargetDescriptor is a decoded cross-compilation target descriptor.
	TargetDescriptor struct {
		// Path is the file the descriptor was loaded from.
		Path        string
		Name        string
		Description string
		// Signals merges the defines list with the signals map; the map wins
		// on conflicts.
		Signals platform.SignalSet
	}

	// descriptorFile is the on-disk shape shared by CUE and TOML.
	descriptorFile struct {
		Name        string            `json:"name,omitempty" toml:"name,omitempty"`
		Description string            `json:"description,omitempty" toml:"description,omitempty"`
		Defines     []string          `json:"defines,omitempty" toml:"defines,omitempty"`
		Signals     map[string]string `json:"signals,omitempty" toml:"signals,omitempty"`
	}
)

// Descriptor returns a Reader that loads the descriptor at path on every
// read, so edits are picked up when a build configuration is reconfigured.
func Descriptor(path string) Reader {
	return ReaderFunc(func(context.Context) (platform.SignalSet, error) {
		d, err := LoadDescriptor(path)
		if err != nil {
			return platform.SignalSet{}, err
		}
		return d.Signals, nil
	})
}

// LoadDescriptor reads a .cue or .toml target descriptor. CUE files are
// validated against the embedded schema; TOML files are decoded strictly and
// reject unknown keys.
func LoadDescriptor(path string) (*TargetDescriptor, error) {
	var (
		file *descriptorFile
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		file, err = decodeCUEDescriptor(path)
	case ".toml":
		file, err = decodeTOMLDescriptor(path)
	default:
		return nil, &UnsupportedDescriptorError{Path: path}
	}
	if err != nil {
		return nil, err
	}

	set, err := file.signalSet(path)
	if err != nil {
		return nil, err
	}

	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &TargetDescriptor{
		Path:        path,
		Name:        name,
		Description: file.Description,
		Signals:     set,
	}, nil
}

func decodeCUEDescriptor(path string) (*descriptorFile, error) {
	result, err := cueutil.ParseFile[descriptorFile](descriptorSchema, path, "#Descriptor")
	if err != nil {
		return nil, fmt.Errorf("load target descriptor: %w", err)
	}
	return result.Value, nil
}

func decodeTOMLDescriptor(path string) (*descriptorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load target descriptor: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, fmt.Errorf("load target descriptor: %w", err)
	}

	var file descriptorFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("load target descriptor: %s: %w", path, err)
	}
	return &file, nil
}

// signalSet validates every name. The CUE schema already did so for CUE
// files; TOML files rely on this check alone.
func (f *descriptorFile) signalSet(path string) (platform.SignalSet, error) {
	values := make(map[platform.Signal]string, len(f.Defines)+len(f.Signals))
	for i, def := range f.Defines {
		name, value, err := platform.ParseSignal(def)
		if err != nil {
			return platform.SignalSet{}, fmt.Errorf("%w: %s: defines[%d]: %w", ErrInvalidDescriptor, path, i, err)
		}
		values[name] = value
	}
	for raw, value := range f.Signals {
		name, _, err := platform.ParseSignal(raw)
		if err != nil || strings.Contains(raw, "=") {
			return platform.SignalSet{}, fmt.Errorf("%w: %s: signals.%s: not a macro name", ErrInvalidDescriptor, path, raw)
		}
		values[name] = value
	}
	return platform.NewSignalSet(values), nil
}

// EncodeDescriptorTOML renders set as a TOML descriptor that LoadDescriptor
// reads back to an equal set. `targetprobe signals --format toml` uses it to
// snapshot a probed toolchain.
func EncodeDescriptorTOML(name string, set platform.SignalSet) ([]byte, error) {
	file := descriptorFile{Name: name, Signals: make(map[string]string, set.Len())}
	for _, sig := range set.Names() {
		v, _ := set.Value(sig)
		file.Signals[string(sig)] = v
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

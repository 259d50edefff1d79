package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidKeymap is returned for keymap files that are not valid JSON or
// are missing the bindings array.
var ErrInvalidKeymap = errors.New("invalid keymap file")

// Keymap is a named collection of binding specs loaded from configuration.
type Keymap struct {
	Name     string
	Bindings []BindingSpec
}

// BindingSpec is one configured binding: a trigger in notation form plus the
// name of the action it fires. Actions are resolved against a host-supplied
// action table at apply time.
type BindingSpec struct {
	Keys        string
	Action      string
	Description string
}

// Loader loads keymaps from JSON configuration files.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	return l.LoadBytes(data)
}

// LoadReader loads a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	return l.LoadBytes(data)
}

// LoadBytes loads a keymap from raw JSON. Unknown fields are ignored;
// binding entries missing keys or an action are rejected.
func (l *Loader) LoadBytes(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidKeymap)
	}

	bindings := gjson.GetBytes(data, "bindings")
	if !bindings.IsArray() {
		return nil, fmt.Errorf("%w: missing bindings array", ErrInvalidKeymap)
	}

	km := &Keymap{
		Name:     gjson.GetBytes(data, "name").String(),
		Bindings: make([]BindingSpec, 0, len(bindings.Array())),
	}

	var badEntry error
	bindings.ForEach(func(_, entry gjson.Result) bool {
		spec := BindingSpec{
			Keys:        entry.Get("keys").String(),
			Action:      entry.Get("action").String(),
			Description: entry.Get("description").String(),
		}
		if spec.Keys == "" || spec.Action == "" {
			badEntry = fmt.Errorf("%w: binding entry needs keys and action: %s",
				ErrInvalidKeymap, entry.Raw)
			return false
		}
		km.Bindings = append(km.Bindings, spec)
		return true
	})
	if badEntry != nil {
		return nil, badEntry
	}

	return km, nil
}

// LoadAll loads all keymaps found in the search paths.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
			keymaps = append(keymaps, km)
		}
	}

	return keymaps, nil
}

// Apply registers every binding in the keymap, resolving action names
// against the given action table. The first unresolvable action or invalid
// notation aborts the apply; bindings registered before the failure remain
// registered, the registry being append-only.
func (km *Keymap) Apply(reg *Registry, actions map[string]func()) error {
	for _, spec := range km.Bindings {
		handler, ok := actions[spec.Action]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, spec.Action)
		}
		if err := reg.Bind(spec.Keys, handler, spec.Description); err != nil {
			return err
		}
	}
	return nil
}

// Marshal renders the keymap as JSON.
func (km *Keymap) Marshal() ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if km.Name != "" {
		if doc, err = sjson.SetBytes(doc, "name", km.Name); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
	}

	// Materialize the array even when empty.
	if doc, err = sjson.SetRawBytes(doc, "bindings", []byte(`[]`)); err != nil {
		return nil, fmt.Errorf("marshaling keymap: %w", err)
	}

	for i, spec := range km.Bindings {
		base := "bindings." + strconv.Itoa(i)
		if doc, err = sjson.SetBytes(doc, base+".keys", spec.Keys); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
		if doc, err = sjson.SetBytes(doc, base+".action", spec.Action); err != nil {
			return nil, fmt.Errorf("marshaling keymap: %w", err)
		}
		if spec.Description != "" {
			if doc, err = sjson.SetBytes(doc, base+".description", spec.Description); err != nil {
				return nil, fmt.Errorf("marshaling keymap: %w", err)
			}
		}
	}

	return doc, nil
}

// SaveFile writes the keymap to a JSON file.
func (km *Keymap) SaveFile(path string) error {
	data, err := km.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}

package keyring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jonboulle/clockwork"

	"github.com/arcanaland/pontifex/internal/deck"
)

const keyFileExt = ".toml"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")
)

// Keyring is a directory of key files
type Keyring struct {
	Path  string
	clock clockwork.Clock
}

func New(path string, clock clockwork.Clock) *Keyring {
	return &Keyring{Path: path, clock: clock}
}

// Init creates the keyring directory.
func (k *Keyring) Init() error {
	if err := os.MkdirAll(k.Path, 0700); err != nil {
		return fmt.Errorf("error creating keyring: %w", err)
	}
	return nil
}

func (k *Keyring) Exists() bool {
	info, err := os.Stat(k.Path)
	return err == nil && info.IsDir()
}

// FileName returns the file name for a key name, e.g. "Field Key" -> field-key.toml
func FileName(name string) string {
	return slug.Make(name) + keyFileExt
}

// Save stores key material under name.
func (k *Keyring) Save(name, source, description string, material deck.KeyMaterial) (*KeyFile, error) {
	if slug.Make(name) == "" {
		return nil, fmt.Errorf("invalid key name %q", name)
	}
	if _, err := deck.New(material); err != nil {
		return nil, err
	}

	path := filepath.Join(k.Path, FileName(name))
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, name)
	}

	kf := &KeyFile{
		Key: KeySection{
			ID:            uuid.NewString(),
			Name:          name,
			SchemaVersion: SchemaVersion,
			Source:        source,
			Description:   description,
			CreatedDate:   k.clock.Now().UTC(),
		},
		Cards: material.Codes(),
	}
	if err := kf.write(path); err != nil {
		return nil, err
	}
	return kf, nil
}

// Resolve finds a key by name in the keyring, or treats the argument as a path.
func (k *Keyring) Resolve(nameOrPath string) (string, error) {
	// First, try to find the key in the keyring
	if slug.Make(nameOrPath) != "" {
		path := filepath.Join(k.Path, FileName(nameOrPath))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// If not found in the keyring, treat as a path
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
		return nameOrPath, nil
	}

	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, nameOrPath)
}

// Load resolves and decodes a key.
func (k *Keyring) Load(nameOrPath string) (*KeyFile, error) {
	path, err := k.Resolve(nameOrPath)
	if err != nil {
		return nil, err
	}
	return LoadKeyFile(path)
}

// Entry is a key listed in the keyring
type Entry struct {
	Slug string
	File *KeyFile
}

// List returns the keys in the keyring sorted by slug. Files that fail to parse are skipped.
func (k *Keyring) List() ([]Entry, error) {
	entries, err := os.ReadDir(k.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading keyring: %w", err)
	}

	var keys []Entry
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != keyFileExt {
			continue
		}
		kf, err := LoadKeyFile(filepath.Join(k.Path, entry.Name()))
		if err != nil {
			// Not a valid key file, skip
			continue
		}
		keys = append(keys, Entry{Slug: strings.TrimSuffix(entry.Name(), keyFileExt), File: kf})
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Slug < keys[j].Slug })
	return keys, nil
}

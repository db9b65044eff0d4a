package keyring

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
)

const SchemaVersion = "1.0"

// Key sources recorded in key files
const (
	SourceExplicit   = "explicit"
	SourcePassphrase = "passphrase"
	SourceGenerated  = "generated"
)

// KeyFile is the on-disk form of a stored key
type KeyFile struct {
	Key   KeySection `toml:"key"`
	Cards []string   `toml:"cards"`

	// Path the file was loaded from, empty for unsaved keys
	Path string `toml:"-"`
}

type KeySection struct {
	ID            string    `toml:"id"`
	Name          string    `toml:"name"`
	SchemaVersion string    `toml:"schema_version"`
	Source        string    `toml:"source"`
	Description   string    `toml:"description"`
	CreatedDate   time.Time `toml:"created_date"`
}

// LoadKeyFile decodes a key file without checking its cards.
func LoadKeyFile(path string) (*KeyFile, error) {
	kf, _, err := DecodeKeyFile(path)
	return kf, err
}

// DecodeKeyFile is LoadKeyFile that also returns the TOML metadata,
// e.g. to report keys the file holds that KeyFile does not know.
func DecodeKeyFile(path string) (*KeyFile, toml.MetaData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, toml.MetaData{}, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}

	var kf KeyFile
	md, err := toml.DecodeFile(path, &kf)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("error parsing key file %s: %w", path, err)
	}
	kf.Path = path
	return &kf, md, nil
}

// Material parses the card list into key material.
func (kf *KeyFile) Material() (deck.KeyMaterial, error) {
	cards, err := card.ParseAll(kf.Cards)
	if err != nil {
		return nil, err
	}
	return deck.KeyMaterial(cards), nil
}

// Deck parses and validates the card list.
func (kf *KeyFile) Deck() (deck.Deck, error) {
	cards, err := kf.Material()
	if err != nil {
		return deck.Deck{}, err
	}
	return deck.New(cards)
}

func (kf *KeyFile) write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("error creating key directory: %w", err)
	}

	// key files are secrets
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrKeyExists, path)
	} else if err != nil {
		return fmt.Errorf("error creating key file: %w", err)
	}

	// remove partial files so the name can be saved again
	if err := encodeKeyFile(file, kf); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("error encoding key file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("error writing key file: %w", err)
	}

	kf.Path = path
	return nil
}

var encodeKeyFile = func(w io.Writer, kf *KeyFile) error {
	return toml.NewEncoder(w).Encode(kf)
}

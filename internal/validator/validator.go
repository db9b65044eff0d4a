package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/pontifex/internal/card"
	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keyring"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	KeyPath string
	Results ValidationResults
}

func NewValidator(keyPath string) *Validator {
	return &Validator{
		KeyPath: keyPath,
		Results: ValidationResults{},
	}
}

// Validate checks a key file. The returned error is reserved for files that cannot be read at all;
// problems with the content are reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	kf, err := v.loadKeyFile()
	if err != nil {
		return v.Results, err
	}

	v.validateKeySection(kf)
	v.validateCards(kf)
	v.validatePermissions()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) loadKeyFile() (*keyring.KeyFile, error) {
	kf, md, err := keyring.DecodeKeyFile(v.KeyPath)
	if err != nil {
		return nil, err
	}

	for _, key := range md.Undecoded() {
		v.warnf("unknown field %s", key.String())
	}
	return kf, nil
}

func (v *Validator) validateKeySection(kf *keyring.KeyFile) {
	if kf.Key.ID == "" {
		v.errorf("key.id is required")
	}

	if kf.Key.Name == "" {
		v.errorf("key.name is required")
	}

	if kf.Key.SchemaVersion == "" {
		v.errorf("key.schema_version is required")
	} else if kf.Key.SchemaVersion != keyring.SchemaVersion {
		v.errorf("unsupported schema_version: %s (supported: %s)", kf.Key.SchemaVersion, keyring.SchemaVersion)
	}

	switch kf.Key.Source {
	case keyring.SourceExplicit, keyring.SourcePassphrase:
	case keyring.SourceGenerated:
		v.warnf("key was generated by a computer; consider a deck shuffled by hand")
	case "":
		v.errorf("key.source is required")
	default:
		v.errorf("unknown key.source: %s", kf.Key.Source)
	}

	if kf.Key.Description == "" {
		v.warnf("key.description is empty")
	}

	if kf.Key.CreatedDate.IsZero() {
		v.warnf("key.created_date is missing")
	}
}

// validateCards checks the card list is a full deck, reporting every problem rather than the first
func (v *Validator) validateCards(kf *keyring.KeyFile) {
	if len(kf.Cards) != deck.Size {
		v.errorf("expected %d cards, found %d", deck.Size, len(kf.Cards))
	}

	seen := make(map[card.Card]int)
	for i, code := range kf.Cards {
		c, err := card.Parse(code)
		if err != nil {
			v.errorf("card #%d: unknown card %q", i+1, code)
			continue
		}
		if first, ok := seen[c]; ok {
			v.errorf("card #%d: %s already appears at #%d", i+1, c, first)
			continue
		}
		seen[c] = i + 1
	}

	var missing []string
	for c := card.First; c <= card.Last; c++ {
		if _, ok := seen[c]; !ok {
			missing = append(missing, c.Code())
		}
	}
	if len(missing) > 0 {
		v.errorf("missing cards: %s", strings.Join(missing, ", "))
	}
}

func (v *Validator) validatePermissions() {
	info, err := os.Stat(v.KeyPath)
	if err != nil {
		return
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		v.warnf("key file is readable by other users (mode %04o), consider chmod 600", perm)
	}
}

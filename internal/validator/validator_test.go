package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/pontifex/internal/deck"
	"github.com/arcanaland/pontifex/internal/keyring"
)

func writeKeyFile(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func orderedCards() string {
	codes := deck.Ordered().Cards().Codes()
	return `["` + strings.Join(codes, `", "`) + `"]`
}

func TestValidate_SavedKeyIsValid(t *testing.T) {
	k := keyring.New(t.TempDir(), clockwork.NewFakeClock())
	kf, err := k.Save("valid", keyring.SourcePassphrase, "a key", deck.Ordered().Cards())
	require.NoError(t, err)

	results, err := NewValidator(kf.Path).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestValidate_Problems(t *testing.T) {
	header := "[key]\nid = \"x\"\nname = \"n\"\nschema_version = \"1.0\"\nsource = \"explicit\"\n" +
		"description = \"d\"\ncreated_date = 2026-01-02T03:04:05Z\n"

	tests := []struct {
		name         string
		content      string
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "missing key section",
			content:    "cards = " + orderedCards() + "\n",
			wantErrors: []string{"key.id is required", "key.name is required", "key.schema_version is required", "key.source is required"},
		},
		{
			name:       "unsupported schema",
			content:    "cards = " + orderedCards() + "\n" + strings.Replace(header, `"1.0"`, `"2.0"`, 1),
			wantErrors: []string{"unsupported schema_version: 2.0"},
		},
		{
			name:       "unknown source",
			content:    "cards = " + orderedCards() + "\n" + strings.Replace(header, `"explicit"`, `"dice"`, 1),
			wantErrors: []string{"unknown key.source: dice"},
		},
		{
			name:         "generated key",
			content:      "cards = " + orderedCards() + "\n" + strings.Replace(header, `"explicit"`, `"generated"`, 1),
			wantWarnings: []string{"generated by a computer"},
		},
		{
			name:       "short deck",
			content:    "cards = [\"AC\", \"2C\"]\n" + header,
			wantErrors: []string{"expected 54 cards, found 2", "missing cards: 3C, 4C"},
		},
		{
			name:       "duplicate and unknown",
			content:    "cards = " + strings.Replace(strings.Replace(orderedCards(), `"2C"`, `"AC"`, 1), `"3C"`, `"ZZ"`, 1) + "\n" + header,
			wantErrors: []string{"card #2: AC already appears at #1", "card #3: unknown card \"ZZ\"", "missing cards: 2C, 3C"},
		},
		{
			name:         "unknown field",
			content:      "color = \"red\"\ncards = " + orderedCards() + "\n" + header,
			wantWarnings: []string{"unknown field color"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeKeyFile(t, tt.content, 0600)
			results, err := NewValidator(path).Validate()
			require.NoError(t, err)

			assertContainsAll(t, results.Errors, tt.wantErrors)
			assertContainsAll(t, results.Warnings, tt.wantWarnings)
			if len(tt.wantErrors) == 0 {
				assert.Empty(t, results.Errors)
			}
		})
	}
}

func TestValidate_Permissions(t *testing.T) {
	k := keyring.New(t.TempDir(), clockwork.NewFakeClock())
	kf, err := k.Save("loose", keyring.SourceExplicit, "a key", deck.Ordered().Cards())
	require.NoError(t, err)
	require.NoError(t, os.Chmod(kf.Path, 0644))

	results, err := NewValidator(kf.Path).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assertContainsAll(t, results.Warnings, []string{"readable by other users"})
}

func TestValidate_Unreadable(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "missing.toml")).Validate()
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)

	path := writeKeyFile(t, "cards = [", 0600)
	_, err = NewValidator(path).Validate()
	assert.Error(t, err)
}

func assertContainsAll(t *testing.T, got []string, want []string) {
	t.Helper()
	joined := strings.Join(got, "\n")
	for _, w := range want {
		assert.Contains(t, joined, w)
	}
}

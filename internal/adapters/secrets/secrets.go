// Package secrets loads developer secrets from a JSON tree in the home
// directory and resolves dotted paths into it.
//
// The file lives in two places: the current directory copy is the source of
// truth (never checked into version control) and the home directory copy is
// the runtime location. Opening the store syncs the source of truth to the
// home directory when present, then loads from home.
package secrets

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileName is the secret file name looked up in both locations.
const FileName = "home_secret.json"

// Store holds the loaded secret tree.
type Store struct {
	data map[string]any
}

// Open loads the secret store from $HOME, syncing ./home_secret.json into
// $HOME first when it exists.
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve home directory")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}
	return OpenAt(filepath.Join(cwd, FileName), filepath.Join(home, FileName))
}

// OpenAt loads the store from homePath, first copying herePath over it when
// herePath exists. Split out from Open for testability.
func OpenAt(herePath, homePath string) (*Store, error) {
	if data, err := os.ReadFile(herePath); err == nil { //nolint:gosec // fixed filename
		if err := os.WriteFile(homePath, data, 0o600); err != nil {
			return nil, zerr.Wrap(err, "failed to sync secret file to home directory")
		}
	}

	data, err := os.ReadFile(homePath) //nolint:gosec // fixed filename
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrSecretFileMissing, "path", homePath)
		}
		return nil, zerr.Wrap(err, "failed to read secret file")
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse secret file"), "path", homePath)
	}
	return &Store{data: tree}, nil
}

// Value resolves a dotted path like
// "providers.github.accounts.ci.secrets.token.value" into the tree.
func (s *Store) Value(path string) (any, error) {
	var value any = s.data
	for _, part := range strings.Split(path, ".") {
		node, ok := value.(map[string]any)
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrSecretNotFound, "path", path), "key", part)
		}
		value, ok = node[part]
		if !ok {
			return nil, zerr.With(zerr.With(domain.ErrSecretNotFound, "path", path), "key", part)
		}
	}
	return value, nil
}

// String resolves a dotted path and requires the result to be a string.
func (s *Store) String(path string) (string, error) {
	v, err := s.Value(path)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", zerr.With(zerr.New("secret is not a string"), "path", path)
	}
	return str, nil
}

// Token is a placeholder for a value that is not known when the token is
// defined; the lookup happens when Value is called.
type Token struct {
	store *Store
	path  string
}

// Token creates a lazy handle for the given dotted path.
func (s *Store) Token(path string) Token {
	return Token{store: s, path: path}
}

// Value resolves the token.
func (t Token) Value() (any, error) {
	return t.store.Value(t.path)
}

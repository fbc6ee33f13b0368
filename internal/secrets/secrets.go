// Package secrets stores API credentials in a local JSON file with
// environment-variable fallbacks.
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Known secret names.
const (
	KeyHevyAPI      = "hevy_api_key"
	KeyAnthropicAPI = "anthropic_api_key"
)

// envFallbacks maps a secret name to the environment variable consulted
// when the file has no entry.
var envFallbacks = map[string]string{
	KeyHevyAPI:      "HEVY_API_KEY",
	KeyAnthropicAPI: "ANTHROPIC_API_KEY",
}

// ErrUnknownKey is returned for names outside the known secret set.
var ErrUnknownKey = errors.New("unknown secret key")

// Store persists secrets as a JSON object in a mode-0600 file. Reads
// fall back to the environment when a name is absent from the file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a secret store backed by the given file path. The
// file is created lazily on first Set.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get resolves a secret: file first, then environment. An empty string
// means the secret is not configured.
func (s *Store) Get(name string) (string, error) {
	if _, ok := envFallbacks[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}

	s.mu.Lock()
	values, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if v := values[name]; v != "" {
		return v, nil
	}
	return os.Getenv(envFallbacks[name]), nil
}

// Set writes a secret to the file.
func (s *Store) Set(name, value string) error {
	if _, ok := envFallbacks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[name] = value
	return s.save(values)
}

// Delete removes a secret from the file. Deleting an absent secret is
// not an error.
func (s *Store) Delete(name string) error {
	if _, ok := envFallbacks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[name]; !ok {
		return nil
	}
	delete(values, name)
	return s.save(values)
}

// Exists reports whether the secret resolves to a non-empty value from
// either the file or the environment.
func (s *Store) Exists(name string) bool {
	v, err := s.Get(name)
	return err == nil && v != ""
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding secrets: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating secrets dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing secrets file: %w", err)
	}
	return nil
}

var hevyKeyPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidHevyKey reports whether the key looks like a Hevy credential
// (UUID form). Validation is advisory; imports proceed either way.
func ValidHevyKey(key string) bool {
	return hevyKeyPattern.MatchString(strings.ToLower(key))
}

// ValidAnthropicKey reports whether the key looks like a model API
// credential.
func ValidAnthropicKey(key string) bool {
	return strings.HasPrefix(key, "sk-ant-") && len(key) > 20
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth provides the shared-secret gate a serving layer places in
// front of the extraction and generation pipelines. The core pipelines never
// see credentials; a boundary handler checks the presented key through an
// Authenticator and only then invokes the core.
package auth

import (
	"crypto/subtle"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIKeyFile is the secrets-directory file holding the shared API key.
const APIKeyFile = "api-key"

// Authenticator decides whether a presented credential may use the service.
type Authenticator interface {
	Authenticate(presented string) bool
}

// StaticKey authenticates against a single shared secret using a
// constant-time comparison. An empty key rejects everything.
type StaticKey struct {
	key string
}

// NewStaticKey returns a StaticKey authenticator for key.
func NewStaticKey(key string) StaticKey {
	return StaticKey{key: key}
}

// Authenticate reports whether presented matches the shared key.
func (s StaticKey) Authenticate(presented string) bool {
	if s.key == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.key), []byte(presented)) == 1
}

// LoadSecrets reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; LoadSecrets
// returns an empty map. Unreadable files produce a warning on stderr but do
// not abort.
func LoadSecrets(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// FromSecretsDir builds a StaticKey from the api-key file in dir, falling
// back to an authenticator that rejects everything when the file is absent.
func FromSecretsDir(dir string) (StaticKey, error) {
	secrets, err := LoadSecrets(dir)
	if err != nil {
		return StaticKey{}, err
	}
	return NewStaticKey(secrets[APIKeyFile]), nil
}

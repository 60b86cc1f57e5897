// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticKeyAuthenticate(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		presented string
		want      bool
	}{
		{"matching key", "s3cret", "s3cret", true},
		{"wrong key", "s3cret", "guess", false},
		{"empty presented", "s3cret", "", false},
		{"empty configured key", "", "anything", false},
		{"both empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewStaticKey(tt.key)
			assert.Equal(t, tt.want, a.Authenticate(tt.presented))
		})
	}
}

func TestLoadSecrets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api-key"), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("  value  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("  \n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o700))

	secrets, err := LoadSecrets(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"api-key": "abc123",
		"other":   "value",
	}, secrets)
}

func TestLoadSecretsMissingDir(t *testing.T) {
	secrets, err := LoadSecrets(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestFromSecretsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, APIKeyFile), []byte("abc123\n"), 0o600))

	a, err := FromSecretsDir(dir)
	require.NoError(t, err)
	assert.True(t, a.Authenticate("abc123"))
	assert.False(t, a.Authenticate("wrong"))
}

func TestFromSecretsDirWithoutKeyRejectsAll(t *testing.T) {
	a, err := FromSecretsDir(t.TempDir())
	require.NoError(t, err)
	assert.False(t, a.Authenticate("anything"))
}

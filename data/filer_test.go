// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSFilerCreateFile(t *testing.T) {
	dir := t.TempDir()
	filer := &FSFiler{BasePath: dir}

	path, err := filer.CreateFile("result.json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "result.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(b))
}

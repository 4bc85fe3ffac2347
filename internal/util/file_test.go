package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "duty")

	// WHEN
	err := WriteIntToFileAtomic(593, path)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 593, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "empty")
	assert.NoError(t, os.WriteFile(path, []byte{}, 0644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.EqualError(t, err, "file is empty: "+path)
}

func TestExpandHomePath(t *testing.T) {
	// WHEN
	plain, err := ExpandHomePath("/tmp/duty")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/duty", plain)

	// WHEN
	expanded, err := ExpandHomePath("~/duty")

	// THEN
	assert.NoError(t, err)
	assert.NotContains(t, expanded, "~")
	assert.Equal(t, "duty", filepath.Base(expanded))
}

package worker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSpoolFile(t *testing.T, dir, name string, payload ProductPayload) {
	t.Helper()
	data, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestFileSourceFetchPayloads(t *testing.T) {
	dir := t.TempDir()
	writeSpoolFile(t, dir, "p1.json", testPayload("p1"))
	writeSpoolFile(t, dir, "p2.json", testPayload("p2"))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	source := NewFileSource("spool", "refresh_prices", dir)
	assert.Equal(t, "spool", source.GetName())
	assert.Equal(t, "refresh_prices", source.GetTask())

	payloads, err := source.FetchPayloads()
	assert.NoError(t, err)
	assert.Len(t, payloads, 2)

	// Consumed files are removed; the non-payload file stays
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "notes.txt", entries[0].Name())
}

func TestFileSourceSkipsUndecodableFile(t *testing.T) {
	dir := t.TempDir()
	writeSpoolFile(t, dir, "good.json", testPayload("p1"))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0o644))

	source := NewFileSource("spool", "refresh_prices", dir)
	payloads, err := source.FetchPayloads()
	assert.NoError(t, err)
	assert.Len(t, payloads, 1)
	assert.Equal(t, "p1", payloads[0].ProductID)

	// The broken file is left in place for inspection
	_, statErr := os.Stat(filepath.Join(dir, "bad.json"))
	assert.NoError(t, statErr)
}

func TestFileSourceMissingDirectory(t *testing.T) {
	source := NewFileSource("spool", "refresh_prices", "/nonexistent/spool/dir")
	_, err := source.FetchPayloads()
	assert.Error(t, err)
}

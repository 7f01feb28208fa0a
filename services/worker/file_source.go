package worker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	apperrors "pricemunch/priceworker/pkg/errors"
)

// FileSource reads pending payloads from a spool directory. Each *.json
// file holds one ProductPayload written by the external fetching
// collaborator; files are consumed on successful read.
type FileSource struct {
	name string
	task string
	dir  string
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a source over a spool directory
func NewFileSource(name, task, dir string) *FileSource {
	return &FileSource{name: name, task: task, dir: dir}
}

// GetName returns the source name used in logs
func (s *FileSource) GetName() string {
	return s.name
}

// GetTask returns the schedule task name this source fulfills
func (s *FileSource) GetTask() string {
	return s.task
}

// FetchPayloads reads and removes all spooled payload files. A single
// undecodable file is skipped and left in place; it never blocks the
// remaining files.
func (s *FileSource) FetchPayloads() ([]ProductPayload, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.NewParsing(s.name, "failed to read payload spool directory", err)
	}

	var payloads []ProductPayload
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var payload ProductPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			continue
		}

		payloads = append(payloads, payload)
		os.Remove(path)
	}
	return payloads, nil
}

// Package aliasstore persists the raw→canonical department alias map as a
// flat JSON object.
//
// The alias file commonly lives on a shared network path and may be edited
// or deleted by hand between runs. Corrupt or missing alias data must never
// block the rest of the application: loading falls back to an empty map and
// saving recreates the file from the in-memory state.
package aliasstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"lab-journal-service/pkg/errors"
	"lab-journal-service/pkg/logger"
)

// Store reads and writes one alias file. Writers must be serialized
// externally; Save assumes exclusive access to the target path for the
// duration of the write.
type Store struct {
	path   string
	logger logger.Logger
}

// NewStore creates a Store for the given alias file path
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: logger.GetGlobalLogger().WithComponent("alias_store"),
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted alias map. A missing or unparseable file, or an
// empty path, yields an empty map — never an error.
func (s *Store) Load() map[string]string {
	return Load(s.path)
}

// Save persists the alias map, creating parent directories as needed. The
// write is atomic: a concurrent reader sees either the old or the new file,
// never a partial one.
func (s *Store) Save(aliases map[string]string) error {
	if err := Save(s.path, aliases); err != nil {
		s.logger.WithError(err).WithField("file_path", s.path).Error("Failed to save aliases")
		return err
	}
	s.logger.WithFields(logger.Fields{
		"file_path": s.path,
		"entries":   len(aliases),
	}).Debug("Saved aliases")
	return nil
}

// Merge adds confirmed entries to the persisted map and saves the result,
// returning the merged map. Entries with empty keys or values are skipped.
func (s *Store) Merge(confirmed map[string]string) (map[string]string, error) {
	merged := s.Load()
	for raw, canonical := range confirmed {
		if raw == "" || canonical == "" {
			continue
		}
		merged[raw] = canonical
	}

	if err := s.Save(merged); err != nil {
		return merged, err
	}
	return merged, nil
}

// Load reads a flat string-to-string JSON object from path. Missing or
// corrupt files yield an empty map; values that are not strings are dropped
// silently.
func Load(path string) map[string]string {
	out := make(map[string]string)
	if path == "" {
		return out
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).WithField("file_path", path).Warn("Cannot read alias file, starting empty")
		}
		return out
	}

	// Manual edits can leave arbitrary JSON value types behind; only
	// string-to-string pairs survive.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.WithError(err).WithField("file_path", path).Warn("Alias file is not valid JSON, starting empty")
		return out
	}

	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Save writes the alias map to path atomically (temp file + rename). If the
// backing file was deleted externally it is recreated.
func Save(path string, aliases map[string]string) error {
	if path == "" {
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, nil).
			WithSuggestion("configure a non-empty alias file path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.FileError(errors.CodeDirectoryError, dir, err)
		}
	}

	safe := make(map[string]string, len(aliases))
	for k, v := range aliases {
		if k == "" || v == "" {
			continue
		}
		safe[k] = v
	}

	data, err := json.MarshalIndent(safe, "", "  ")
	if err != nil {
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.ResolutionError(errors.CodeAliasWriteFailed, path, err)
	}
	return nil
}

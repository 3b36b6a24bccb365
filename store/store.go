package store

import (
	"path/filepath"

	"github.com/hamidzr/tmplstore/constant"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Store interface {
	Save(content string) error
	Load() (string, error)
}

// ConfigStore persists the config templates document in the first usable
// candidate data directory. It holds no state between calls: every Save
// overwrites the whole file and every Load re-reads it.
type ConfigStore struct {
	fs  afero.Fs
	env Environment
}

var _ Store = (*ConfigStore)(nil)

// NewConfigStore builds a store over the given filesystem and environment.
func NewConfigStore(fs afero.Fs, env Environment) *ConfigStore {
	return &ConfigStore{fs: fs, env: env}
}

// NewFileStore builds a store backed by the OS filesystem.
func NewFileStore(env Environment) *ConfigStore {
	return NewConfigStore(afero.NewOsFs(), env)
}

// DataDir picks the directory Save would write into without creating it:
// the first candidate that exists, or whose parent exists.
func (s *ConfigStore) DataDir() (string, error) {
	candidates, err := ResolveCandidates(s.env)
	if err != nil {
		return "", err
	}
	for i, dir := range candidates {
		log := logrus.WithFields(logrus.Fields{"index": i + 1, "path": dir})
		log.Debug("checking candidate")
		if exists(s.fs, dir) {
			log.Debug("using existing directory")
			return dir, nil
		}
		if parent, ok := parentDir(dir); ok && exists(s.fs, parent) {
			log.Debug("parent exists, will create")
			return dir, nil
		}
	}
	return "", resolutionError()
}

// Save writes content verbatim to <data-dir>/config-templates.json,
// creating the data directory when needed.
func (s *ConfigStore) Save(content string) error {
	dir, err := s.DataDir()
	if err != nil {
		return err
	}

	if !exists(s.fs, dir) {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return ioError(dir, err, "failed to create directory %s")
		}
		logrus.WithField("path", dir).Info("created data directory")
	}

	filePath := filepath.Join(dir, constant.TemplatesFileName)
	if err := afero.WriteFile(s.fs, filePath, []byte(content), 0o644); err != nil {
		return ioError(filePath, err, "failed to write file at %s")
	}
	logrus.WithFields(logrus.Fields{"path": filePath, "bytes": len(content)}).Debug("saved templates")
	return nil
}

// Load returns the first templates file found across the candidates, or
// the empty templates document when there is none. A file that exists but
// cannot be read is an error; later candidates are not tried.
func (s *ConfigStore) Load() (string, error) {
	filePath, found, err := s.locate()
	if err != nil {
		return "", err
	}
	if !found {
		logrus.Debug("no templates file found, returning empty templates")
		return constant.EmptyTemplates, nil
	}

	data, err := afero.ReadFile(s.fs, filePath)
	if err != nil {
		return "", ioError(filePath, err, "failed to read file at %s")
	}
	logrus.WithFields(logrus.Fields{"path": filePath, "bytes": len(data)}).Debug("loaded templates")
	return string(data), nil
}

// locate returns the first existing templates file across the candidates.
func (s *ConfigStore) locate() (string, bool, error) {
	candidates, err := ResolveCandidates(s.env)
	if err != nil {
		return "", false, err
	}
	for i, dir := range candidates {
		filePath := filepath.Join(dir, constant.TemplatesFileName)
		log := logrus.WithFields(logrus.Fields{"index": i + 1, "path": filePath})
		if exists(s.fs, filePath) {
			log.Debug("found templates file")
			return filePath, true, nil
		}
		log.Trace("templates file not found")
	}
	return "", false, nil
}

// CandidateState describes one candidate as seen by DataDir.
type CandidateState struct {
	Path         string
	Exists       bool
	ParentExists bool
	HasFile      bool
}

// Inspect reports the state of every candidate, in order. It never mutates
// the filesystem.
func (s *ConfigStore) Inspect() ([]CandidateState, error) {
	candidates, err := ResolveCandidates(s.env)
	if err != nil {
		return nil, err
	}
	states := make([]CandidateState, 0, len(candidates))
	for _, dir := range candidates {
		state := CandidateState{Path: dir, Exists: exists(s.fs, dir)}
		if parent, ok := parentDir(dir); ok {
			state.ParentExists = exists(s.fs, parent)
		}
		state.HasFile = exists(s.fs, filepath.Join(dir, constant.TemplatesFileName))
		states = append(states, state)
	}
	return states, nil
}

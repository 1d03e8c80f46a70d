package summary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"ngc-metadata/packages/compiler/src/logging"
	"ngc-metadata/packages/compiler/src/metadata"
)

// SchemaVersion is written into every summary; bump it when the record layout changes
const SchemaVersion uint16 = 1

// Format selects the on-disk encoding of summaries
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

func (f Format) ext() string {
	if f == FormatMsgpack {
		return ".mp"
	}
	return ".json"
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatMsgpack:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown summary format %q, expected json or msgpack", name)
}

// envelope is the stored form of one directive
type envelope struct {
	Schema    uint16         `json:"schema" msgpack:"schema"`
	Directive map[string]any `json:"directive" msgpack:"directive"`
}

// Key identifies a summary by the module and name of the directive type.
// NoModuleID marks a type without a module id, which is distinct from an empty one.
type Key struct {
	ModuleID   string
	Name       string
	NoModuleID bool
}

func (k Key) String() string {
	if k.NoModuleID {
		return k.Name
	}
	return k.ModuleID + "#" + k.Name
}

// KeyOf returns the summary key of a directive. Directives without a type name cannot be stored.
func KeyOf(d *metadata.CompileDirectiveMetadata) (Key, error) {
	t := d.Type()
	if t == nil || t.Name() == nil {
		return Key{}, errors.New("directive has no type name")
	}
	key := Key{Name: *t.Name(), NoModuleID: true}
	if moduleID := t.ModuleID(); moduleID != nil {
		key.ModuleID = *moduleID
		key.NoModuleID = false
	}
	return key, nil
}

// Store keeps directive summaries on disk, one file per directive.
// Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	dir    string
	format Format
	logger *zap.Logger
}

// Open prepares a store rooted at dir
func Open(dir string, format Format, logger *zap.Logger) (*Store, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create summary directory: %w", err)
	}
	return &Store{dir: dir, format: format, logger: logging.OrNop(logger)}, nil
}

// Dir returns the root directory of the store
func (s *Store) Dir() string { return s.dir }

// Module directories are "m-" plus the escaped module id, or noModuleDir for types without one,
// so distinct keys never share a file.
const noModuleDir = "-"

func moduleDir(key Key) string {
	if key.NoModuleID {
		return noModuleDir
	}
	return "m-" + url.PathEscape(key.ModuleID)
}

func (s *Store) pathFor(key Key) string {
	return filepath.Join(s.dir, moduleDir(key), url.PathEscape(key.Name)+s.format.ext())
}

// Put writes the summary of d, replacing any previous one atomically
func (s *Store) Put(d *metadata.CompileDirectiveMetadata) (Key, error) {
	key, err := KeyOf(d)
	if err != nil {
		return Key{}, err
	}
	data, err := s.encode(envelope{Schema: SchemaVersion, Directive: d.ToStructured()})
	if err != nil {
		return Key{}, fmt.Errorf("failed to encode summary %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return Key{}, err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return Key{}, err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove temp file", zap.String("path", f.Name()), zap.Error(err))
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return Key{}, err
	}
	if err := f.Close(); err != nil {
		return Key{}, err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return Key{}, err
	}
	s.logger.Debug("summary written", zap.Stringer("key", key), zap.String("path", p))
	return key, nil
}

// Get reads the summary stored under key. found is false when there is none.
func (s *Store) Get(key Key) (d *metadata.CompileDirectiveMetadata, found bool, err error) {
	s.mu.RLock()
	data, err := os.ReadFile(s.pathFor(key))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	env, err := s.decode(data)
	if err != nil {
		return nil, true, fmt.Errorf("failed to decode summary %s: %w", key, err)
	}
	if env.Schema != SchemaVersion {
		return nil, true, fmt.Errorf("summary %s has schema %d, expected %d", key, env.Schema, SchemaVersion)
	}
	d, err = metadata.CompileDirectiveMetadataFromStructured(env.Directive)
	if err != nil {
		return nil, true, fmt.Errorf("summary %s: %w", key, err)
	}
	stored, err := KeyOf(d)
	if err != nil {
		return nil, true, fmt.Errorf("summary %s: %w", key, err)
	}
	if stored != key {
		return nil, true, fmt.Errorf("summary %s holds directive %s", key, stored)
	}
	return d, true, nil
}

// List returns the stored file paths relative to the store root, sorted
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, s.format.ext()) {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *Store) encode(env envelope) ([]byte, error) {
	if s.format == FormatMsgpack {
		return msgpack.Marshal(&env)
	}
	return json.MarshalIndent(&env, "", "  ")
}

func (s *Store) decode(data []byte) (envelope, error) {
	var env envelope
	var err error
	if s.format == FormatMsgpack {
		err = msgpack.Unmarshal(data, &env)
	} else {
		err = json.Unmarshal(data, &env)
	}
	return env, err
}

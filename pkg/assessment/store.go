package assessment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang/snappy"
)

// Sessions with this suffix are snappy-compressed JSON; plain .json files
// are stored uncompressed.
const CompressedExt = ".json.sz"

// Store saves and loads sessions under a base directory. Loaded sessions
// are struct-validated before use.
type Store struct {
	dir      string
	validate *validator.Validate
}

// NewStore creates a session store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &Store{
		dir:      dir,
		validate: validator.New(),
	}, nil
}

// Save writes the session to the named file inside the store directory.
// Names ending in .json.sz are snappy-compressed.
func (st *Store) Save(session *Session, name string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if strings.HasSuffix(name, CompressedExt) {
		data = snappy.Encode(nil, data)
	}

	path := filepath.Join(st.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Load reads, decompresses and validates a session file.
func (st *Store) Load(name string) (*Session, error) {
	path := filepath.Join(st.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	if strings.HasSuffix(name, CompressedExt) {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompressing session file %s: %w", name, err)
		}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session file %s: %w", name, err)
	}
	if err := st.validate.Struct(&session); err != nil {
		return nil, fmt.Errorf("invalid session in %s: %w", name, err)
	}
	return &session, nil
}

// List returns the session file names in the store, sorted.
func (st *Store) List() ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, CompressedExt) {
			names = append(names, name)
		}
	}
	return names, nil
}

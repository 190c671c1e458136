package winstate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/winstate/internal/store"
)

const (
	DefaultFileName = "window-state.json"
	DefaultStoreKey = "window-state"
)

// Persister loads and saves a single record. Load returns (nil, nil) when
// nothing has been saved yet.
type Persister interface {
	Load() (*Record, error)
	Save(rec *Record) error
}

// Clearer is implemented by persisters that can forget the saved record, so
// the next Load reports nothing saved.
type Clearer interface {
	Clear() error
}

// FilePersister stores the record as JSON at Dir/File.
type FilePersister struct {
	Dir  string
	File string
}

// NewFilePersister returns a FilePersister, defaulting the file name.
func NewFilePersister(dir, file string) *FilePersister {
	if strings.TrimSpace(file) == "" {
		file = DefaultFileName
	}
	return &FilePersister{Dir: dir, File: file}
}

// Path returns the full path of the state file.
func (p *FilePersister) Path() string {
	return filepath.Join(p.Dir, p.File)
}

func (p *FilePersister) Load() (*Record, error) {
	data, err := os.ReadFile(p.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read window state %s: %w", p.Path(), err)
	}
	return DecodeRecord(data)
}

func (p *FilePersister) Save(rec *Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p.Path()); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	if err := os.WriteFile(p.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write window state %s: %w", p.Path(), err)
	}
	return nil
}

// Clear removes the state file. A missing file is not an error.
func (p *FilePersister) Clear() error {
	if err := os.Remove(p.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove window state %s: %w", p.Path(), err)
	}
	return nil
}

// StorePersister stores the record as JSON under Key in a key-value store.
type StorePersister struct {
	Store store.Store
	Key   string
}

// NewStorePersister returns a StorePersister, defaulting the key.
func NewStorePersister(s store.Store, key string) *StorePersister {
	if strings.TrimSpace(key) == "" {
		key = DefaultStoreKey
	}
	return &StorePersister{Store: s, Key: key}
}

func (p *StorePersister) Load() (*Record, error) {
	data, err := p.Store.Get(context.Background(), p.Key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load window state %q: %w", p.Key, err)
	}
	return DecodeRecord(data)
}

func (p *StorePersister) Save(rec *Record) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := p.Store.Set(context.Background(), p.Key, data); err != nil {
		return fmt.Errorf("failed to save window state %q: %w", p.Key, err)
	}
	return nil
}

func (p *StorePersister) Clear() error {
	if err := p.Store.Delete(context.Background(), p.Key); err != nil {
		return fmt.Errorf("failed to clear window state %q: %w", p.Key, err)
	}
	return nil
}

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/manav03panchal/alarmbook/internal/model"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the state store.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// StateDB wraps a Badger database holding UI state between launches.
// Alarm rows never go here.
type StateDB struct {
	db   *badger.DB
	path string
}

// StateOptions configures the state store.
type StateOptions struct {
	// Path is the state directory. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultStatePath returns the default state directory under the XDG state home.
func DefaultStatePath() string {
	return filepath.Join(xdg.StateHome, AppName, "state")
}

// OpenState opens or creates the state store.
func OpenState(opts StateOptions) (*StateDB, error) {
	var badgerOpts badger.Options

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Badger logs to stderr by default, which would draw over the UI.
	badgerOpts = badgerOpts.WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if opts.InMemory {
		path = ""
	}
	return &StateDB{db: db, path: path}, nil
}

// Close closes the state store.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// Path returns the state directory, empty for in-memory stores.
func (s *StateDB) Path() string {
	return s.path
}

// Get retrieves a value by key and unmarshals it into v.
func (s *StateDB) Get(key string, v model.Model) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, v); err != nil {
				return err
			}
			v.SetKey(key)
			return nil
		})
	})
}

// Set stores a model under its key.
func (s *StateDB) Set(v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(v.GetKey()), data)
	})
}

// Delete removes a key.
func (s *StateDB) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// ViewStateRepo provides operations for the ViewState singleton.
type ViewStateRepo struct {
	db *StateDB
}

// NewViewStateRepo creates a new view state repository.
func NewViewStateRepo(db *StateDB) *ViewStateRepo {
	return &ViewStateRepo{db: db}
}

// Get returns the saved view state, or the default view when none was saved.
func (r *ViewStateRepo) Get() (*model.ViewState, error) {
	state := &model.ViewState{}
	err := r.db.Get(model.KeyViewState, state)
	if err == nil {
		return state, nil
	}
	if IsErrKeyNotFound(err) {
		return model.NewViewState(), nil
	}
	return nil, err
}

// Save stores the view state.
func (r *ViewStateRepo) Save(state *model.ViewState) error {
	state.Key = model.KeyViewState
	return r.db.Set(state)
}

// Reset discards the saved view state.
func (r *ViewStateRepo) Reset() error {
	err := r.db.Delete(model.KeyViewState)
	if IsErrKeyNotFound(err) {
		return nil
	}
	return err
}

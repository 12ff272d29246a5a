// Package tokenstore persists the GitHub access token between sessions in a
// local BadgerDB database.
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/quantmind-br/repo2txt-go/internal/domain"
	"github.com/quantmind-br/repo2txt-go/internal/utils"
)

// Key is the fixed storage key of the access token
const Key = "githubAccessToken"

// Ensure BadgerStore implements domain.TokenStore
var _ domain.TokenStore = (*BadgerStore)(nil)

// Options contains token store configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    *utils.Logger
}

// DefaultDirectory returns ~/.repo2txt/state
func DefaultDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".repo2txt", "state"), nil
}

// BadgerStore is a token store backed by BadgerDB
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens the token database
func NewBadgerStore(opts Options) (*BadgerStore, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			dir, err := DefaultDirectory()
			if err != nil {
				return nil, err
			}
			opts.Directory = dir
		}
		opts.Directory = utils.ExpandPath(opts.Directory)

		if err := os.MkdirAll(opts.Directory, 0700); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}

		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	badgerOpts = badgerOpts.WithNumVersionsToKeep(1)
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(&badgerLogger{log: opts.Logger.WithComponent("tokenstore")})
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Load returns the stored token, or "" when none is stored
func (s *BadgerStore) Load() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		token = string(value)
		return nil
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Save stores token. An empty token removes the stored one.
func (s *BadgerStore) Save(token string) error {
	if token == "" {
		return s.Clear()
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key), []byte(token))
	})
}

// Clear removes the stored token
func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(Key))
	})
}

// Close releases store resources
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's logging through zerolog. Info and debug
// chatter is demoted to trace.
type badgerLogger struct {
	log *utils.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Mask hides all but the last four characters of a token
func Mask(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

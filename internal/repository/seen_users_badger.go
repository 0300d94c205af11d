package repository

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"newbie_greeter/internal/interfaces"
)

var seenUsersKey = []byte("seen_users")

// SeenUserBadger stores the seen list under one key, encoded the same way as
// the JSON file.
type SeenUserBadger struct {
	db *badger.DB
}

func NewSeenUserBadger(db *badger.DB) *SeenUserBadger {
	return &SeenUserBadger{db: db}
}

func (s *SeenUserBadger) Load() ([]string, interfaces.LoadStatus, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(seenUsersKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []string{}, interfaces.LoadMissing, nil
	}
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, fmt.Errorf("read seen users: %w", err)
	}

	users, err := decodeSeenUsers(data)
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, nil
	}
	return users, interfaces.LoadOK, nil
}

func (s *SeenUserBadger) Save(users []string) error {
	data, err := encodeSeenUsers(users)
	if err != nil {
		return fmt.Errorf("encode seen users: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(seenUsersKey, data)
	})
}

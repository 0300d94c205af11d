package repository

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"newbie_greeter/internal/interfaces"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreBadger   = "badger"
)

// OpenSeenUserStore builds the store of the given kind. The returned close
// function releases what the store itself opened; pool is owned by the caller.
func OpenSeenUserStore(kind, filePath, badgerPath string, pool *pgxpool.Pool) (interfaces.SeenUserStore, func() error, error) {
	noop := func() error { return nil }

	switch kind {
	case StoreFile, "":
		return NewSeenUserFile(filePath), noop, nil
	case StorePostgres:
		if pool == nil {
			return nil, noop, errors.New("postgres store needs a database connection")
		}
		return NewSeenUserRepository(pool), noop, nil
	case StoreBadger:
		db, err := badger.Open(badger.DefaultOptions(badgerPath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return nil, noop, fmt.Errorf("open badger at %s: %w", badgerPath, err)
		}
		return NewSeenUserBadger(db), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown seen user store %q", kind)
	}
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newbie_greeter/internal/interfaces"
)

// SeenUserRepository keeps the seen list in the seen_users table, ordered by
// insertion position.
type SeenUserRepository struct {
	db *pgxpool.Pool
}

func NewSeenUserRepository(db *pgxpool.Pool) *SeenUserRepository {
	return &SeenUserRepository{db: db}
}

func (r *SeenUserRepository) Load() ([]string, interfaces.LoadStatus, error) {
	rows, err := r.db.Query(context.Background(), "SELECT username FROM seen_users ORDER BY position")
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, fmt.Errorf("query seen users: %w", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, fmt.Errorf("scan seen users: %w", err)
	}
	if len(users) == 0 {
		return []string{}, interfaces.LoadMissing, nil
	}
	return users, interfaces.LoadOK, nil
}

// Save replaces the table content with users, in order, in one transaction.
func (r *SeenUserRepository) Save(users []string) error {
	ctx := context.Background()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM seen_users"); err != nil {
		return fmt.Errorf("clear seen users: %w", err)
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"seen_users"},
		[]string{"username"},
		pgx.CopyFromSlice(len(users), func(i int) ([]any, error) {
			return []any{users[i]}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert seen users: %w", err)
	}
	return tx.Commit(ctx)
}

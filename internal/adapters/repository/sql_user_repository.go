package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/mergington/high-school/activities-service/internal/config"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

const uniqueViolation = pq.ErrorCode("23505")

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	email    TEXT PRIMARY KEY,
	password TEXT NOT NULL,
	role     TEXT NOT NULL CHECK (role IN ('admin', 'staff', 'student')),
	name     TEXT NOT NULL
)`

// SQLUserRepository is the PostgreSQL Credential Store.
type SQLUserRepository struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

var _ ports.UserRepository = (*SQLUserRepository)(nil)

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{
		db: db,
		cb: config.NewCircuitBreaker(config.BreakerPostgresUsers),
	}
}

// EnsureSchema creates the users table and inserts seed accounts that are
// not present yet.
func (r *SQLUserRepository) EnsureSchema(ctx context.Context, seed []domain.User) error {
	if _, err := r.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	for _, u := range seed {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO users (email, password, role, name) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (email) DO NOTHING`,
			u.Email, u.Password, string(u.Role), u.Name,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

func (r *SQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := run(r.cb, func() error {
		err := r.db.QueryRowContext(ctx,
			"SELECT email, password, role, name FROM users WHERE email = $1",
			email,
		).Scan(&user.Email, &user.Password, &user.Role, &user.Name)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("select user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SQLUserRepository) Create(ctx context.Context, user domain.User) error {
	return run(r.cb, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO users (email, password, role, name) VALUES ($1, $2, $3, $4)",
			user.Email, user.Password, string(user.Role), user.Name,
		)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

// Delete locks the row, runs check on it and deletes it in one transaction.
func (r *SQLUserRepository) Delete(ctx context.Context, email string, check func(*domain.User) error) error {
	return run(r.cb, func() error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback()

		var user domain.User
		err = tx.QueryRowContext(ctx,
			"SELECT email, password, role, name FROM users WHERE email = $1 FOR UPDATE",
			email,
		).Scan(&user.Email, &user.Password, &user.Role, &user.Name)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("select user: %w", err)
		}

		if check != nil {
			if err := check(&user); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE email = $1", email); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return tx.Commit()
	})
}

func (r *SQLUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := run(r.cb, func() error {
		rows, err := r.db.QueryContext(ctx, "SELECT email, password, role, name FROM users ORDER BY email")
		if err != nil {
			return fmt.Errorf("select users: %w", err)
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			var u domain.User
			if err := rows.Scan(&u.Email, &u.Password, &u.Role, &u.Name); err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

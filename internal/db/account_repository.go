package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/grebnov/neoncity/internal/model"
)

// AccountRepository stores account credentials hashed with bcrypt.
type AccountRepository struct {
	pool       *pgxpool.Pool
	autoCreate bool
}

// NewAccountRepository creates the repository. When autoCreate is true,
// authenticating an unknown login registers it with the supplied password.
func NewAccountRepository(pool *pgxpool.Pool, autoCreate bool) *AccountRepository {
	return &AccountRepository{pool: pool, autoCreate: autoCreate}
}

// Get returns an account by login.
// Returns nil, nil if the account does not exist.
func (r *AccountRepository) Get(ctx context.Context, login string) (*model.Account, error) {
	login = strings.ToLower(login)
	var acc model.Account
	err := r.pool.QueryRow(ctx,
		`SELECT login, password_hash, created_at, last_active
		 FROM accounts WHERE login = $1`, login,
	).Scan(&acc.Login, &acc.PasswordHash, &acc.CreatedAt, &acc.LastActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %q: %w", login, err)
	}
	return &acc, nil
}

// Create registers a new account. Concurrent creates of the same login are
// safe: ON CONFLICT DO NOTHING keeps the first row.
func (r *AccountRepository) Create(ctx context.Context, login, password string) error {
	login = strings.ToLower(login)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password for %q: %w", login, err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO accounts (login, password_hash, created_at, last_active)
		 VALUES ($1, $2, $3, $3)
		 ON CONFLICT (login) DO NOTHING`,
		login, string(hash), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", login, err)
	}
	return nil
}

// Authenticate checks credentials against the stored bcrypt hash. Unknown
// logins are registered first when auto-create is enabled, otherwise they
// fail. A wrong password returns false without error.
func (r *AccountRepository) Authenticate(ctx context.Context, login, password string) (bool, error) {
	login = strings.ToLower(login)
	if login == "" || password == "" {
		return false, nil
	}

	acc, err := r.Get(ctx, login)
	if err != nil {
		return false, err
	}
	if acc == nil {
		if !r.autoCreate {
			return false, nil
		}
		if err := r.Create(ctx, login, password); err != nil {
			return false, err
		}
		slog.Info("auto-created account", "login", login)
		acc, err = r.Get(ctx, login)
		if err != nil {
			return false, err
		}
		if acc == nil {
			return false, fmt.Errorf("account %q missing after insert", login)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	if err := r.Touch(ctx, login); err != nil {
		slog.Warn("updating last active", "login", login, "error", err)
	}
	return true, nil
}

// Touch updates last_active after a successful login.
func (r *AccountRepository) Touch(ctx context.Context, login string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE accounts SET last_active = $1 WHERE login = $2`,
		time.Now(), strings.ToLower(login),
	)
	if err != nil {
		return fmt.Errorf("updating last active for %q: %w", login, err)
	}
	return nil
}

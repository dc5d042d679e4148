package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

const accountColumns = `id, login, password_hash, role, verified, created_at`

func (r *accountRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Account, error) {
	const query = `INSERT INTO accounts (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	acc := model.Account{Login: login, PasswordHash: passwordHash, Role: role}
	err := r.storage.conn(ctx).QueryRow(ctx, query, login, passwordHash, string(role)).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &acc, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE login=$1`
	return scanAccount(r.storage.conn(ctx).QueryRow(ctx, query, login))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.storage.conn(ctx).QueryRow(ctx, query, id))
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		acc  model.Account
		role string
	)
	if err := row.Scan(&acc.ID, &acc.Login, &acc.PasswordHash, &role, &acc.Verified, &acc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	acc.Role = model.Role(role)
	return &acc, nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"twitch_discord_bot/internal/models"
)

func (dbr *DBRepository) GetNotExpiredToken(ctx context.Context) (token *string, err error) {

	query := `
		select 
			tt."token" 
		from twitch_tokens tt
		where tt.is_expired = false
		order by tt.created_at 
		desc
		limit 1;
	`

	err = dbr.db.GetContext(ctx, &token, query)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return
}

func (dbr *DBRepository) ListTokens(ctx context.Context) (data []models.StoredToken, err error) {

	query := `
		select 
			tt.id, tt."token", tt.is_expired, tt.created_at 
		from twitch_tokens tt
		order by tt.created_at desc, tt.id desc;
	`

	err = dbr.db.SelectContext(ctx, &data, query)

	return
}

// ReplaceToken stores newToken and marks oldToken expired in one transaction.
func (dbr *DBRepository) ReplaceToken(ctx context.Context, oldToken *string, newToken string) (err error) {

	tx, err := dbr.BeginTransaction(ctx)
	if err != nil {
		return errors.Wrap(err, "BeginTransaction")
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	if oldToken != nil {
		err = dbr.SetExpiredToken(ctx, tx, *oldToken)
		if err != nil && !errors.Is(err, models.ErrTokenNotFound) {
			return errors.Wrap(err, "SetExpiredToken")
		}
	}

	err = dbr.AddToken(ctx, tx, newToken)
	if err != nil {
		return errors.Wrap(err, "AddToken")
	}

	return nil
}

func (dbr *DBRepository) AddToken(ctx context.Context, tx *sqlx.Tx, token string) (err error) {

	query := `
		insert into twitch_tokens ("token") values ($1);
	`

	res, err := tx.ExecContext(ctx, query, token)
	if err != nil {
		return err
	}

	_, err = res.RowsAffected()
	if err != nil {
		return err
	}

	return
}

func (dbr *DBRepository) SetExpiredToken(ctx context.Context, tx *sqlx.Tx, token string) (err error) {

	query := `
		update twitch_tokens 
		set is_expired = true
		where "token" = $1;
	`

	res, err := tx.ExecContext(ctx, query, token)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n < 1 {
		return models.ErrTokenNotFound
	}

	return
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fulfillment/internal/app/logger"
	"fulfillment/internal/app/model"
	"fulfillment/internal/app/storage"
)

// storage.OverdraftRepository interface implementation
var _ storage.OverdraftRepository = (*OverdraftRepository)(nil)

type OverdraftRepository struct {
	db *sql.DB
}

func NewOverdraftRepository(db *sql.DB) (*OverdraftRepository, error) {
	s := &OverdraftRepository{
		db: db,
	}
	return s, nil
}

// GetOverdraftInstructions implementation of interface storage.OverdraftRepository
func (r *OverdraftRepository) GetOverdraftInstructions(ctx context.Context, accountNumber string) ([]*model.OverdraftInstruction, error) {
	l := logger.Ctx(ctx).With().
		Str("method", "GetOverdraftInstructions").
		Str("account_number", accountNumber).
		Logger()
	l.Debug().Send()

	const SQL = `
		SELECT o.overdraft_account_no, oda.lifecycle_status_cd AS od_lifecycle_status, o.lifecycle_status_cd, o.effective_start_dt, o.effective_end_dt
		FROM overdraft_instruction o, account oda
		WHERE o.account_no = $1
		AND o.overdraft_account_no = oda.account_no
`
	res := make([]*model.OverdraftInstruction, 0)
	rows, err := r.db.QueryContext(ctx, SQL, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		m := &model.OverdraftInstruction{}
		var end sql.NullTime
		if err := rows.Scan(
			&m.OverdraftAccount.AccountNumber,
			&m.OverdraftAccount.LifecycleStatus,
			&m.LifecycleStatus,
			&m.EffectiveStart,
			&end,
		); err != nil {
			l.Debug().Err(err).Send()
			return nil, fmt.Errorf("scan: %w", err)
		}
		if end.Valid {
			m.EffectiveEnd = &end.Time
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	l.Debug().Int("instructions", len(res)).Send()
	return res, nil
}

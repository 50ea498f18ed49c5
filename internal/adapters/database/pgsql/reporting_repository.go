package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/models"
	"github.com/ledgerhouse/bookkeeper/internal/utils/money"
)

// PgxReportingRepository runs the aggregate queries behind balances and
// reports. Sums are computed over value_num::numeric / value_denom so
// PostgreSQL never touches binary floats.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates a new reporting repository.
func NewPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SumSplitsByAccount returns each account's direct split total for
// transactions posted within the optional bounds.
func (r *PgxReportingRepository) SumSplitsByAccount(ctx context.Context, startDate, endDate *time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT s.account_guid, SUM(s.value_num::numeric / s.value_denom)
		FROM splits s
		JOIN transactions t ON t.guid = s.tx_guid
		WHERE ($1::timestamptz IS NULL OR t.post_date >= $1)
		  AND ($2::timestamptz IS NULL OR t.post_date <= $2)
		GROUP BY s.account_guid;
	`
	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits by account: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var guid string
		var sum decimal.Decimal
		if err := rows.Scan(&guid, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan split sum row: %w", err)
		}
		sums[guid] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split sum rows: %w", err)
	}
	return sums, nil
}

// SumSplitFlows returns the separate debit and credit totals across the given
// accounts for the period. Outflows come back as stored, negative or zero.
func (r *PgxReportingRepository) SumSplitFlows(ctx context.Context, accountGUIDs []string, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if len(accountGUIDs) == 0 {
		return decimal.Zero, decimal.Zero, nil
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN s.value_num > 0 THEN s.value_num::numeric / s.value_denom ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN s.value_num < 0 THEN s.value_num::numeric / s.value_denom ELSE 0 END), 0)
		FROM splits s
		JOIN transactions t ON t.guid = s.tx_guid
		WHERE s.account_guid = ANY($1)
		  AND t.post_date >= $2
		  AND t.post_date <= $3;
	`
	var inflows, outflows decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountGUIDs, startDate, endDate).Scan(&inflows, &outflows); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum split flows: %w", err)
	}
	return inflows, outflows, nil
}

// CountTransactions counts all transactions.
func (r *PgxReportingRepository) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListRecentTransactions retrieves the most recently entered transactions
// with their splits.
func (r *PgxReportingRepository) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT guid, post_date, enter_date, description
		FROM transactions
		ORDER BY enter_date DESC
		LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	guids := []string{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.GUID, &m.PostDate, &m.EnterDate, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, domain.Transaction{
			GUID:        m.GUID,
			PostDate:    m.PostDate,
			EnterDate:   m.EnterDate,
			Description: m.Description,
		})
		guids = append(guids, m.GUID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	if len(guids) == 0 {
		return txns, nil
	}

	splitQuery := `
		SELECT guid, tx_guid, account_guid, memo, value_num, value_denom, reconcile_state
		FROM splits
		WHERE tx_guid = ANY($1)
		ORDER BY tx_guid, guid;
	`
	splitRows, err := r.pool.Query(ctx, splitQuery, guids)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent splits: %w", err)
	}
	defer splitRows.Close()

	splitsByTx := make(map[string][]domain.Split, len(guids))
	for splitRows.Next() {
		var m models.Split
		if err := splitRows.Scan(&m.GUID, &m.TxGUID, &m.AccountGUID, &m.Memo, &m.ValueNum, &m.ValueDenom, &m.ReconcileState); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splitsByTx[m.TxGUID] = append(splitsByTx[m.TxGUID], domain.Split{
			GUID:           m.GUID,
			TxGUID:         m.TxGUID,
			AccountGUID:    m.AccountGUID,
			Memo:           m.Memo,
			Value:          money.Fraction{Num: m.ValueNum, Denom: m.ValueDenom},
			ReconcileState: m.ReconcileState,
		})
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", err)
	}

	for i := range txns {
		txns[i].Splits = splitsByTx[txns[i].GUID]
	}
	return txns, nil
}

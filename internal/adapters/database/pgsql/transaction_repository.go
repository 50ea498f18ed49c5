package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/models"
	"github.com/ledgerhouse/bookkeeper/internal/utils/money"
)

// PgxTransactionRepository stores journal transactions and splits in
// PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelSplit(d domain.Split) models.Split {
	return models.Split{
		GUID:           d.GUID,
		TxGUID:         d.TxGUID,
		AccountGUID:    d.AccountGUID,
		Memo:           d.Memo,
		ValueNum:       d.Value.Num,
		ValueDenom:     d.Value.Denom,
		ReconcileState: d.ReconcileState,
	}
}

func toDomainSplit(m models.Split) domain.Split {
	return domain.Split{
		GUID:           m.GUID,
		TxGUID:         m.TxGUID,
		AccountGUID:    m.AccountGUID,
		Memo:           m.Memo,
		Value:          money.Fraction{Num: m.ValueNum, Denom: m.ValueDenom},
		ReconcileState: m.ReconcileState,
	}
}

// SaveTransaction persists the transaction and all splits in one database
// transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertTxn := `
		INSERT INTO transactions (guid, post_date, enter_date, description)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, insertTxn, txn.GUID, txn.PostDate, txn.EnterDate, txn.Description); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.GUID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.GUID, err)
	}

	insertSplit := `
		INSERT INTO splits (guid, tx_guid, account_guid, memo, value_num, value_denom, reconcile_state)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, s := range txn.Splits {
		m := toModelSplit(s)
		batch.Queue(insertSplit, m.GUID, m.TxGUID, m.AccountGUID, m.Memo, m.ValueNum, m.ValueDenom, m.ReconcileState)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert split %d of transaction %s: %w", i, txn.GUID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close split insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its splits.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, guid string) (*domain.Transaction, error) {
	query := `SELECT guid, post_date, enter_date, description FROM transactions WHERE guid = $1;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, guid).Scan(&m.GUID, &m.PostDate, &m.EnterDate, &m.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", guid, err)
	}

	txn := domain.Transaction{
		GUID:        m.GUID,
		PostDate:    m.PostDate,
		EnterDate:   m.EnterDate,
		Description: m.Description,
	}

	splitsByTx, err := r.loadSplits(ctx, []string{guid})
	if err != nil {
		return nil, err
	}
	txn.Splits = splitsByTx[guid]
	return &txn, nil
}

// loadSplits bulk-loads the splits for a set of transactions.
func (r *PgxTransactionRepository) loadSplits(ctx context.Context, txGUIDs []string) (map[string][]domain.Split, error) {
	if len(txGUIDs) == 0 {
		return map[string][]domain.Split{}, nil
	}

	query := `
		SELECT guid, tx_guid, account_guid, memo, value_num, value_denom, reconcile_state
		FROM splits
		WHERE tx_guid = ANY($1)
		ORDER BY tx_guid, guid;
	`
	rows, err := r.Pool.Query(ctx, query, txGUIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Split, len(txGUIDs))
	for rows.Next() {
		var m models.Split
		if err := rows.Scan(&m.GUID, &m.TxGUID, &m.AccountGUID, &m.Memo, &m.ValueNum, &m.ValueDenom, &m.ReconcileState); err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		result[m.TxGUID] = append(result[m.TxGUID], toDomainSplit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", err)
	}
	return result, nil
}

// listTransactions runs a transaction header query and attaches splits.
func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
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

	splitsByTx, err := r.loadSplits(ctx, guids)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		txns[i].Splits = splitsByTx[txns[i].GUID]
	}
	return txns, nil
}

// ListTransactions retrieves transactions newest post date first, inclusively
// bounded by either date when supplied.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, startDate, endDate *time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT guid, post_date, enter_date, description
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR post_date >= $1)
		  AND ($2::timestamptz IS NULL OR post_date <= $2)
		ORDER BY post_date DESC, enter_date DESC;
	`
	return r.listTransactions(ctx, query, startDate, endDate)
}

// ListTransactionsByAccounts retrieves transactions with at least one split
// in any of the given accounts.
func (r *PgxTransactionRepository) ListTransactionsByAccounts(ctx context.Context, accountGUIDs []string) ([]domain.Transaction, error) {
	if len(accountGUIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	query := `
		SELECT DISTINCT t.guid, t.post_date, t.enter_date, t.description
		FROM transactions t
		JOIN splits s ON s.tx_guid = t.guid
		WHERE s.account_guid = ANY($1)
		ORDER BY t.post_date DESC, t.enter_date DESC;
	`
	return r.listTransactions(ctx, query, accountGUIDs)
}

// CountTransactionsByAccount counts distinct transactions with a split posted
// directly to the account.
func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountGUID string) (int, error) {
	query := `SELECT COUNT(DISTINCT tx_guid) FROM splits WHERE account_guid = $1;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, accountGUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountGUID, err)
	}
	return count, nil
}

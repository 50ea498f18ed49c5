package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/models"
)

// PgxPurchaseRepository stores purchase orders and their entries in
// PostgreSQL.
type PgxPurchaseRepository struct {
	BaseRepository
}

// NewPgxPurchaseRepository creates a new repository for purchase order data.
func NewPgxPurchaseRepository(pool *pgxpool.Pool) *PgxPurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseRepository)(nil)

func toDomainOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		GUID:              m.GUID,
		Number:            m.Number,
		VendorGUID:        m.VendorGUID,
		Status:            domain.OrderStatus(m.Status),
		DateOpened:        m.DateOpened,
		CreditAccountGUID: m.CreditAccountGUID,
	}
}

func toDomainEntry(m models.OrderEntry) domain.OrderEntry {
	return domain.OrderEntry{
		GUID:               m.GUID,
		OrderGUID:          m.OrderGUID,
		Description:        m.Description,
		Quantity:           m.Quantity,
		Price:              m.Price,
		ExpenseAccountGUID: m.ExpenseAccountGUID,
	}
}

// SaveOrder persists a new order and its entries atomically.
func (r *PgxPurchaseRepository) SaveOrder(ctx context.Context, order domain.PurchaseOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	insertOrder := `
		INSERT INTO purchase_orders (guid, number, vendor_guid, status, date_opened, credit_account_guid)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	var creditGUID sql.NullString
	if order.CreditAccountGUID != "" {
		creditGUID = sql.NullString{String: order.CreditAccountGUID, Valid: true}
	}
	_, err = tx.Exec(ctx, insertOrder,
		order.GUID,
		order.Number,
		order.VendorGUID,
		string(order.Status),
		order.DateOpened,
		creditGUID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: order number %s already exists", apperrors.ErrDuplicate, order.Number)
		}
		return fmt.Errorf("failed to insert order %s: %w", order.GUID, err)
	}

	insertEntry := `
		INSERT INTO order_entries (guid, order_guid, description, quantity, price, expense_account_guid)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, e := range order.Entries {
		batch.Queue(insertEntry, e.GUID, e.OrderGUID, e.Description, e.Quantity, e.Price, e.ExpenseAccountGUID)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert entry %d of order %s: %w", i, order.GUID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close entry insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// scanOrder scans one order header row.
func scanOrder(row pgx.Row) (domain.PurchaseOrder, error) {
	var m models.PurchaseOrder
	var creditGUID sql.NullString
	err := row.Scan(&m.GUID, &m.Number, &m.VendorGUID, &m.Status, &m.DateOpened, &creditGUID)
	if err != nil {
		return domain.PurchaseOrder{}, err
	}
	if creditGUID.Valid {
		m.CreditAccountGUID = creditGUID.String
	}
	return toDomainOrder(m), nil
}

// FindOrderByID retrieves an order with its entries.
func (r *PgxPurchaseRepository) FindOrderByID(ctx context.Context, guid string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT guid, number, vendor_guid, status, date_opened, credit_account_guid
		FROM purchase_orders
		WHERE guid = $1;
	`
	order, err := scanOrder(r.Pool.QueryRow(ctx, query, guid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", guid, err)
	}

	entriesByOrder, err := r.loadEntries(ctx, []string{guid})
	if err != nil {
		return nil, err
	}
	order.Entries = entriesByOrder[guid]
	return &order, nil
}

// loadEntries bulk-loads entries for a set of orders.
func (r *PgxPurchaseRepository) loadEntries(ctx context.Context, orderGUIDs []string) (map[string][]domain.OrderEntry, error) {
	if len(orderGUIDs) == 0 {
		return map[string][]domain.OrderEntry{}, nil
	}

	query := `
		SELECT guid, order_guid, description, quantity, price, expense_account_guid
		FROM order_entries
		WHERE order_guid = ANY($1)
		ORDER BY order_guid, guid;
	`
	rows, err := r.Pool.Query(ctx, query, orderGUIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order entries: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderEntry, len(orderGUIDs))
	for rows.Next() {
		var m models.OrderEntry
		if err := rows.Scan(&m.GUID, &m.OrderGUID, &m.Description, &m.Quantity, &m.Price, &m.ExpenseAccountGUID); err != nil {
			return nil, fmt.Errorf("failed to scan order entry row: %w", err)
		}
		result[m.OrderGUID] = append(result[m.OrderGUID], toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order entry rows: %w", err)
	}
	return result, nil
}

// ListOrders retrieves one page of orders, newest opened first, and the total
// count.
func (r *PgxPurchaseRepository) ListOrders(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT guid, number, vendor_guid, status, date_opened, credit_account_guid
		FROM purchase_orders
		ORDER BY date_opened DESC, number DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.PurchaseOrder{}
	guids := []string{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
		guids = append(guids, order.GUID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating order rows: %w", err)
	}

	entriesByOrder, err := r.loadEntries(ctx, guids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Entries = entriesByOrder[orders[i].GUID]
	}
	return orders, total, nil
}

// CountOrdersOpenedInYear counts orders opened in a calendar year.
func (r *PgxPurchaseRepository) CountOrdersOpenedInYear(ctx context.Context, year int) (int, error) {
	query := `SELECT COUNT(*) FROM purchase_orders WHERE date_part('year', date_opened) = $1;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders for year %d: %w", year, err)
	}
	return count, nil
}

// CountOrdersByStatus counts orders in the given status.
func (r *PgxPurchaseRepository) CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int, error) {
	query := `SELECT COUNT(*) FROM purchase_orders WHERE status = $1;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders by status %s: %w", status, err)
	}
	return count, nil
}

// ApproveOrder writes the generated journal transaction and flips the order
// to APPROVED in one database transaction. The status flip is conditional on
// the order still being OPEN so a concurrent approval cannot post the entry
// twice; losing the race returns apperrors.ErrDuplicate with nothing written.
func (r *PgxPurchaseRepository) ApproveOrder(ctx context.Context, orderGUID string, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	flip := `
		UPDATE purchase_orders
		SET status = $2, credit_account_guid = $3
		WHERE guid = $1 AND status = $4;
	`
	creditGUID := sql.NullString{}
	if len(txn.Splits) > 0 {
		last := txn.Splits[len(txn.Splits)-1]
		creditGUID = sql.NullString{String: last.AccountGUID, Valid: true}
	}
	cmdTag, err := tx.Exec(ctx, flip, orderGUID, string(domain.OrderApproved), creditGUID, string(domain.OrderOpen))
	if err != nil {
		return fmt.Errorf("failed to update order %s status: %w", orderGUID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is not open", apperrors.ErrDuplicate, orderGUID)
	}

	insertTxn := `
		INSERT INTO transactions (guid, post_date, enter_date, description)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, insertTxn, txn.GUID, txn.PostDate, txn.EnterDate, txn.Description); err != nil {
		return fmt.Errorf("failed to insert approval transaction %s: %w", txn.GUID, err)
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
			return fmt.Errorf("failed to insert approval split %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close approval split batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

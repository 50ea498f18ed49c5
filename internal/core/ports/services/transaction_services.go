package services

import (
	"context"
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// TransactionSvcFacade defines the journal operations consumed by handlers.
type TransactionSvcFacade interface {
	// PostTransaction validates the balanced-entry invariant and persists
	// the transaction with all of its splits atomically.
	PostTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its splits.
	GetTransactionByID(ctx context.Context, guid string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest first, optionally
	// bounded by post date.
	ListTransactions(ctx context.Context, startDate, endDate *time.Time) ([]domain.Transaction, error)

	// ListAccountTransactions retrieves transactions touching the account or
	// any of its descendants.
	ListAccountTransactions(ctx context.Context, accountGUID string) ([]domain.Transaction, error)

	// QuickEntry builds and posts a balanced two-split transaction from a
	// single signed amount against an opposite account.
	QuickEntry(ctx context.Context, accountGUID string, req dto.QuickEntryRequest) (*domain.Transaction, error)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
	"github.com/ledgerhouse/bookkeeper/internal/utils/accounting"
)

// transactionService implements journal posting and retrieval.
type transactionService struct {
	BaseService
	repo       portsrepo.TransactionRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountSvcFacade) *transactionService {
	return &transactionService{repo: repo, accountSvc: accountSvc}
}

// PostTransaction validates and persists a balanced journal transaction.
func (s *transactionService) PostTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	postDate, err := parseDate(req.PostDate)
	if err != nil {
		return nil, err
	}

	if len(req.Splits) < 2 {
		return nil, fmt.Errorf("%w: a transaction requires at least two splits", apperrors.ErrValidation)
	}

	amounts := make([]decimal.Decimal, 0, len(req.Splits))
	accountGUIDs := make([]string, 0, len(req.Splits))
	for _, sp := range req.Splits {
		amounts = append(amounts, sp.Amount)
		accountGUIDs = append(accountGUIDs, sp.AccountGUID)
	}

	if residual, ok := accounting.CheckBalanced(amounts); !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, residual.String())
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountGUIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve split accounts: %w", err)
	}
	for _, guid := range accountGUIDs {
		if _, ok := accounts[guid]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, guid)
		}
	}

	txn := domain.Transaction{
		GUID:        uuid.NewString(),
		PostDate:    postDate,
		EnterDate:   time.Now(),
		Description: req.Description,
	}
	for _, sp := range req.Splits {
		split := domain.Split{
			GUID:           uuid.NewString(),
			TxGUID:         txn.GUID,
			AccountGUID:    sp.AccountGUID,
			Memo:           sp.Memo,
			ReconcileState: domain.NotReconciled,
		}
		if err := split.SetAmount(sp.Amount); err != nil {
			return nil, fmt.Errorf("%w: amount %s: %v", apperrors.ErrValidation, sp.Amount, err)
		}
		txn.Splits = append(txn.Splits, split)
	}

	if err := s.repo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("guid", txn.GUID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "transaction posted",
		slog.String("guid", txn.GUID),
		slog.Int("splits", len(txn.Splits)),
	)
	return &txn, nil
}

// GetTransactionByID retrieves a transaction with its splits.
func (s *transactionService) GetTransactionByID(ctx context.Context, guid string) (*domain.Transaction, error) {
	return s.repo.FindTransactionByID(ctx, guid)
}

// ListTransactions retrieves transactions, optionally bounded by post date.
func (s *transactionService) ListTransactions(ctx context.Context, startDate, endDate *time.Time) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, startDate, endDate)
}

// ListAccountTransactions retrieves transactions touching the account or any
// of its descendants.
func (s *transactionService) ListAccountTransactions(ctx context.Context, accountGUID string) ([]domain.Transaction, error) {
	guids, err := s.accountSvc.Descendants(ctx, accountGUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByAccounts(ctx, guids)
}

// QuickEntry posts a two-split transaction from a single signed amount. The
// amount expresses the change to the primary account; the opposite account
// receives the offsetting split.
func (s *transactionService) QuickEntry(ctx context.Context, accountGUID string, req dto.QuickEntryRequest) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
	}
	if accountGUID == req.OppositeAccount {
		return nil, fmt.Errorf("%w: opposite account must differ from the primary account", apperrors.ErrValidation)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, accountGUID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, req.OppositeAccount); err != nil {
		return nil, err
	}

	stored, err := accounting.StoredAmountForChange(account.AccountType, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	return s.PostTransaction(ctx, dto.CreateTransactionRequest{
		PostDate:    req.PostDate,
		Description: req.Description,
		Splits: []dto.CreateSplitRequest{
			{AccountGUID: accountGUID, Amount: stored},
			{AccountGUID: req.OppositeAccount, Amount: stored.Neg()},
		},
	})
}

// parseDate parses a YYYY-MM-DD date, wrapping failures as validation errors.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
	}
	return t, nil
}

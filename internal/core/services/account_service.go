package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// accountService implements account management on top of the account
// repository.
type accountService struct {
	BaseService
	repo   portsrepo.AccountRepositoryFacade
	txRepo portsrepo.TransactionReader

	// codeMu serializes code assignment. Codes are derived from a
	// count-then-use sequence, so two concurrent creates under the same
	// parent would otherwise race to the same code.
	codeMu sync.Mutex
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txRepo portsrepo.TransactionReader) *accountService {
	return &accountService{repo: repo, txRepo: txRepo}
}

// CreateAccount validates the request, assigns a code when none was given,
// and persists the account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	var parent *domain.Account
	if req.ParentGUID != nil && *req.ParentGUID != "" {
		p, err := s.repo.FindAccountByID(ctx, *req.ParentGUID)
		if err != nil {
			s.LogError(ctx, err, "failed to resolve parent account", slog.String("parent_guid", *req.ParentGUID))
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
		if p.AccountType != accountType {
			// Mixed-type subtrees are allowed; the type family is advisory.
			s.LogWarn(ctx, "child account type differs from parent",
				slog.String("parent_type", string(p.AccountType)),
				slog.String("child_type", string(accountType)),
			)
		}
		parent = p
	}

	now := time.Now()
	account := domain.Account{
		GUID:        uuid.NewString(),
		Name:        req.Name,
		AccountType: accountType,
		Placeholder: req.Placeholder,
		Code:        req.Code,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if parent != nil {
		account.ParentGUID = parent.GUID
	}

	s.codeMu.Lock()
	defer s.codeMu.Unlock()

	if account.Code == "" {
		code, err := s.nextCode(ctx, accountType, parent)
		if err != nil {
			s.LogError(ctx, err, "failed to assign account code")
			return nil, err
		}
		account.Code = code
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save account", slog.String("name", account.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "account created", slog.String("guid", account.GUID), slog.String("code", account.Code))
	return &account, nil
}

// nextCode derives the next sequential code: roots get the type prefix plus a
// two digit sequence, children append a three digit sequence to the parent
// code. Callers must hold codeMu.
func (s *accountService) nextCode(ctx context.Context, accountType domain.AccountType, parent *domain.Account) (string, error) {
	if parent == nil {
		count, err := s.repo.CountRootAccountsByType(ctx, accountType)
		if err != nil {
			return "", fmt.Errorf("failed to count root accounts: %w", err)
		}
		return fmt.Sprintf("%s%02d", accountType.CodePrefix(), count+1), nil
	}
	count, err := s.repo.CountChildAccounts(ctx, parent.GUID)
	if err != nil {
		return "", fmt.Errorf("failed to count child accounts: %w", err)
	}
	return fmt.Sprintf("%s%03d", parent.Code, count+1), nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, guid string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, guid)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by GUID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, guids []string) (map[string]domain.Account, error) {
	return s.repo.FindAccountsByIDs(ctx, guids)
}

// ListAccounts retrieves all accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// UpdateAccountName renames an account. Type, parent and code are immutable.
func (s *accountService) UpdateAccountName(ctx context.Context, guid, name string) (*domain.Account, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	account, err := s.repo.FindAccountByID(ctx, guid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.UpdateAccountName(ctx, guid, name, now); err != nil {
		s.LogError(ctx, err, "failed to rename account", slog.String("guid", guid))
		return nil, fmt.Errorf("failed to rename account: %w", err)
	}

	account.Name = name
	account.LastUpdatedAt = now
	return account, nil
}

// DeleteAccount removes an account unless it still anchors children or has
// splits posted to it.
func (s *accountService) DeleteAccount(ctx context.Context, guid string) error {
	if _, err := s.repo.FindAccountByID(ctx, guid); err != nil {
		return err
	}

	children, err := s.repo.CountChildAccounts(ctx, guid)
	if err != nil {
		return fmt.Errorf("failed to count child accounts: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("%w: account has %d child accounts", apperrors.ErrValidation, children)
	}

	splits, err := s.repo.CountSplitsByAccount(ctx, guid)
	if err != nil {
		return fmt.Errorf("failed to count account splits: %w", err)
	}
	if splits > 0 {
		return fmt.Errorf("%w: account has %d posted splits", apperrors.ErrValidation, splits)
	}

	if err := s.repo.DeleteAccount(ctx, guid); err != nil {
		s.LogError(ctx, err, "failed to delete account", slog.String("guid", guid))
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "account deleted", slog.String("guid", guid))
	return nil
}

// Descendants returns the GUID of the account and every account below it.
func (s *accountService) Descendants(ctx context.Context, guid string) ([]string, error) {
	if _, err := s.repo.FindAccountByID(ctx, guid); err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	childrenOf := make(map[string][]string, len(accounts))
	for i := range accounts {
		if accounts[i].ParentGUID != "" {
			childrenOf[accounts[i].ParentGUID] = append(childrenOf[accounts[i].ParentGUID], accounts[i].GUID)
		}
	}

	result := []string{guid}
	queue := []string{guid}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range childrenOf[current] {
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result, nil
}

// TransactionCount counts distinct transactions posted directly to the
// account.
func (s *accountService) TransactionCount(ctx context.Context, guid string) (int, error) {
	if _, err := s.repo.FindAccountByID(ctx, guid); err != nil {
		return 0, err
	}
	return s.txRepo.CountTransactionsByAccount(ctx, guid)
}

// FindOrCreateByNameAndType returns the first account matching the name and
// type, creating a root account when none exists. Used to resolve the default
// payable account during order approval.
func (s *accountService) FindOrCreateByNameAndType(ctx context.Context, name string, accountType domain.AccountType) (*domain.Account, error) {
	matches, err := s.repo.FindAccountsByNameAndType(ctx, name, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts by name: %w", err)
	}
	if len(matches) > 0 {
		return &matches[0], nil
	}

	typeName := string(accountType)
	return s.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        name,
		AccountType: typeName,
	})
}

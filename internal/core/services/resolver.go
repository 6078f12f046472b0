package services

import (
	"strings"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountResolver resolves account lookups against a point-in-time snapshot
// plus the accounts synthesized earlier in the same batch. Creations are
// queued locally and only persisted when the batch commits; if the commit
// fails they are discarded with the rest of the working state.
type accountResolver struct {
	userID       string
	currencyCode string
	now          time.Time

	// accounts preserves snapshot order; in-batch creations are appended so
	// later drafts can see and reuse them (read-your-own-writes).
	accounts []*domain.Account
	byIDIdx  map[string]*domain.Account
	created  []*domain.Account
}

func newAccountResolver(userID, currencyCode string, snapshot []domain.Account, now time.Time) *accountResolver {
	r := &accountResolver{
		userID:       userID,
		currencyCode: currencyCode,
		now:          now,
		accounts:     make([]*domain.Account, 0, len(snapshot)),
		byIDIdx:      make(map[string]*domain.Account, len(snapshot)),
	}
	for i := range snapshot {
		acc := snapshot[i] // working copy, never the caller's slice element
		r.accounts = append(r.accounts, &acc)
		r.byIDIdx[acc.AccountID] = &acc
	}
	return r
}

// byID returns the working copy of an account, or nil if unknown.
func (r *accountResolver) byID(accountID string) *domain.Account {
	return r.byIDIdx[accountID]
}

// findByName returns the first account matching (name, group)
// case-insensitively, in snapshot order.
func (r *accountResolver) findByName(name string, group domain.AccountGroup) *domain.Account {
	for _, acc := range r.accounts {
		if acc.Group == group && strings.EqualFold(acc.Name, name) {
			return acc
		}
	}
	return nil
}

// findByCategory returns the first account within (group, category), in
// snapshot order, or nil. Ties are broken by first match.
func (r *accountResolver) findByCategory(group domain.AccountGroup, category string) *domain.Account {
	for _, acc := range r.accounts {
		if acc.Group == group && strings.EqualFold(acc.Category, category) {
			return acc
		}
	}
	return nil
}

// resolve returns the account matching (name, group), synthesizing a new
// zero-balance ACTIVE account when no match exists.
func (r *accountResolver) resolve(name string, group domain.AccountGroup, category string) *domain.Account {
	if acc := r.findByName(name, group); acc != nil {
		return acc
	}
	return r.create(name, group, category)
}

// resolveOrCategory prefers an exact name match, then any account in the
// category, then creates one.
func (r *accountResolver) resolveOrCategory(name string, group domain.AccountGroup, category string) *domain.Account {
	if name != "" {
		if acc := r.findByName(name, group); acc != nil {
			return acc
		}
	}
	if acc := r.findByCategory(group, category); acc != nil {
		return acc
	}
	if name == "" {
		name = category
	}
	return r.create(name, group, category)
}

// defaultCash returns the user's default cash wallet, creating it on first
// use. Creation is idempotent across batches because the next snapshot will
// contain the persisted account.
func (r *accountResolver) defaultCash() *domain.Account {
	return r.resolve(domain.DefaultCashAccountName, domain.GroupAssets, domain.CategoryCash)
}

// defaultFund returns the user's default spending fund, creating it on first use.
func (r *accountResolver) defaultFund() *domain.Account {
	return r.resolve(domain.DefaultFundAccountName, domain.GroupCapital, domain.CategoryEquityFund)
}

func (r *accountResolver) create(name string, group domain.AccountGroup, category string) *domain.Account {
	acc := &domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        r.userID,
		Name:          name,
		Group:         group,
		Category:      category,
		CurrencyCode:  r.currencyCode,
		Status:        domain.AccountActive,
		Balance:       decimal.Zero,
		RealizedPnL:   decimal.Zero,
		UnrealizedPnL: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.now,
			CreatedBy:     r.userID,
			LastUpdatedAt: r.now,
			LastUpdatedBy: r.userID,
		},
	}
	r.accounts = append(r.accounts, acc)
	r.byIDIdx[acc.AccountID] = acc
	r.created = append(r.created, acc)
	return acc
}

// newAccounts returns the accounts synthesized during this batch, in creation
// order, for inclusion in the atomic write.
func (r *accountResolver) newAccounts() []domain.Account {
	out := make([]domain.Account, len(r.created))
	for i, acc := range r.created {
		out[i] = *acc
	}
	return out
}

// snapshotAccounts returns the working copies of every account, including
// in-batch creations, with any balance mutations applied so far.
func (r *accountResolver) snapshotAccounts() []domain.Account {
	out := make([]domain.Account, len(r.accounts))
	for i, acc := range r.accounts {
		out[i] = *acc
	}
	return out
}

package service

import (
	"strings"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/repository"

	"github.com/shopspring/decimal"
)

// EntryStore is the persistence collaborator for entries.
type EntryStore interface {
	Save(e *models.Entry) error
	Delete(e *models.Entry) error
	FindByID(id uint) (*models.Entry, error)
	Search(f repository.EntryFilter) ([]models.Entry, error)
	SumByUserAndCategory(userID uint, category models.Category) (decimal.NullDecimal, error)
}

// EntryService holds the entry business rules: field validation before
// any persistence, lifecycle operations and the balance aggregation.
type EntryService struct {
	entries EntryStore
}

func NewEntryService(entries EntryStore) *EntryService {
	return &EntryService{entries: entries}
}

// Validate checks the entry field invariants in a fixed order. The first
// violated rule determines the reported message; rules are never
// aggregated. On success it is a silent gate.
func (s *EntryService) Validate(e *models.Entry) error {
	if strings.TrimSpace(e.Description) == "" {
		return NewBusinessError("Informe um lançamento válido!")
	}
	if e.Month < 1 || e.Month > 12 {
		return NewBusinessError("Informe um mês válido!")
	}
	// four decimal digits
	if e.Year < 1000 || e.Year > 9999 {
		return NewBusinessError("Informe um ano válido!")
	}
	if e.UserID == 0 {
		return NewBusinessError("Informe um usuário existente!")
	}
	if e.Value.Sign() <= 0 {
		return NewBusinessError("Informe um valor válido!")
	}
	if e.Category == "" {
		return NewBusinessError("Informe um tipo de lançamento!")
	}
	return nil
}

// Create validates and persists a new entry. The status is always forced
// to PENDENTE, whatever the caller supplied.
func (s *EntryService) Create(e *models.Entry) (*models.Entry, error) {
	if err := s.Validate(e); err != nil {
		return nil, err
	}
	e.Status = models.StatusPending
	if err := s.entries.Save(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update re-validates and persists an existing entry. The caller-supplied
// status is preserved. Entries without an ID are rejected before the
// store is touched.
func (s *EntryService) Update(e *models.Entry) (*models.Entry, error) {
	if e.ID == 0 {
		return nil, ErrMissingEntryID
	}
	if err := s.Validate(e); err != nil {
		return nil, err
	}
	if err := s.entries.Save(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an existing entry. Same missing-ID contract as Update.
func (s *EntryService) Delete(e *models.Entry) error {
	if e.ID == 0 {
		return ErrMissingEntryID
	}
	return s.entries.Delete(e)
}

// UpdateStatus sets the new status and runs a full Update, so the entry
// is re-validated and the new status is kept as-is.
func (s *EntryService) UpdateStatus(e *models.Entry, status models.Status) (*models.Entry, error) {
	e.Status = status
	return s.Update(e)
}

// FindByID returns the entry or nil when it does not exist.
func (s *EntryService) FindByID(id uint) (*models.Entry, error) {
	return s.entries.FindByID(id)
}

// Search lists entries matching the filter.
func (s *EntryService) Search(f repository.EntryFilter) ([]models.Entry, error) {
	return s.entries.Search(f)
}

// Balance computes income minus expense for a user. A side with no
// matching entries contributes exactly zero.
func (s *EntryService) Balance(userID uint) (decimal.Decimal, error) {
	income, err := s.entries.SumByUserAndCategory(userID, models.CategoryIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.entries.SumByUserAndCategory(userID, models.CategoryExpense)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	if income.Valid {
		total = income.Decimal
	}
	if expense.Valid {
		total = total.Sub(expense.Decimal)
	}
	return total, nil
}

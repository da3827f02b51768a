package repository

import (
	"errors"
	"strings"

	"github.com/AjeffSoft/minhasfinancas/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryFilter is an explicit search template. Nil/empty fields are
// wildcards; UserID is always applied.
type EntryFilter struct {
	DescriptionContains string
	Month               *int
	Year                *int
	UserID              uint
}

// EntryRepository is the gorm-backed store for entries.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Save inserts the entry when it has no ID yet and updates it otherwise.
func (r *EntryRepository) Save(e *models.Entry) error {
	return r.db.Save(e).Error
}

// Delete removes the entry row.
func (r *EntryRepository) Delete(e *models.Entry) error {
	return r.db.Delete(e).Error
}

// FindByID returns the entry or nil when no row exists.
func (r *EntryRepository) FindByID(id uint) (*models.Entry, error) {
	var e models.Entry
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Search lists the entries matching the filter. Text matching is
// case-insensitive substring containment; order is unspecified.
func (r *EntryRepository) Search(f EntryFilter) ([]models.Entry, error) {
	q := r.db.Model(&models.Entry{}).Where("user_id = ?", f.UserID)
	if f.DescriptionContains != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(f.DescriptionContains)+"%")
	}
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}

	var entries []models.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByUserAndCategory aggregates the value of a user's entries in one
// category. When no rows match, SUM yields NULL and the result is not
// Valid; the caller decides what zero means.
func (r *EntryRepository) SumByUserAndCategory(userID uint, category models.Category) (decimal.NullDecimal, error) {
	var sum decimal.NullDecimal
	row := r.db.Model(&models.Entry{}).
		Where("user_id = ? AND category = ?", userID, category).
		Select("SUM(value)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.NullDecimal{}, err
	}
	return sum, nil
}

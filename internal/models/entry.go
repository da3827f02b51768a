package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an entry as income or expense.
type Category string

// Status is the lifecycle tag of an entry, independent of category.
type Status string

const (
	CategoryIncome  Category = "RECEITA"
	CategoryExpense Category = "DESPESA"
)

const (
	StatusPending   Status = "PENDENTE"
	StatusSettled   Status = "EFETIVADO"
	StatusCancelled Status = "CANCELADO"
)

// ParseCategory converts a wire tag into a Category. Unknown tags fail
// explicitly instead of producing a zero value.
func ParseCategory(tag string) (Category, error) {
	switch Category(tag) {
	case CategoryIncome, CategoryExpense:
		return Category(tag), nil
	}
	return "", fmt.Errorf("unknown category tag %q", tag)
}

// ParseStatus converts a wire tag into a Status.
func ParseStatus(tag string) (Status, error) {
	switch Status(tag) {
	case StatusPending, StatusSettled, StatusCancelled:
		return Status(tag), nil
	}
	return "", fmt.Errorf("unknown status tag %q", tag)
}

// Entry represents a single income or expense record owned by a user.
// Value is an exact decimal stored in a DECIMAL column so money never
// rides binary floating point.
type Entry struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Description      string          `gorm:"size:255;not null" json:"descricao"`
	Month            int             `gorm:"not null" json:"mes"`
	Year             int             `gorm:"not null" json:"ano"`
	Value            decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"valor"`
	Category         Category        `gorm:"size:16;index;not null" json:"tipo"`
	Status           Status          `gorm:"size:16;index;not null" json:"status"`
	UserID           uint            `gorm:"index;not null" json:"usuario"`
	User             User            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	RegistrationDate time.Time       `gorm:"autoCreateTime" json:"dataCadastro"`
}

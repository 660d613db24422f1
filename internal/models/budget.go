package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory groups budget items of an event.
//
// SpentAmount is derived from the items and must only be written by the ledger.
type BudgetCategory struct {
	DefaultModel
	EventID         uuid.UUID       `json:"eventId" gorm:"uniqueIndex:budget_category_event_name"`
	Event           Event           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name            string          `json:"name" gorm:"uniqueIndex:budget_category_event_name" example:"Catering"`
	Color           string          `json:"color" example:"#f59e0b"`
	Icon            string          `json:"icon" example:"utensils"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" gorm:"type:DECIMAL(20,8)" example:"12000"`
	SpentAmount     decimal.Decimal `json:"spentAmount" gorm:"type:DECIMAL(20,8)" example:"8350.5"`
}

func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// BudgetItem is a single expense or income line of a category.
type BudgetItem struct {
	DefaultModel
	EventID       uuid.UUID           `json:"eventId" gorm:"index"`
	CategoryID    uuid.UUID           `json:"categoryId" gorm:"index"`
	Category      BudgetCategory      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description   string              `json:"description" example:"Staff: Rossi Mario"`
	EstimatedCost decimal.Decimal     `json:"estimatedCost" gorm:"type:DECIMAL(20,8)" example:"500"`
	ActualCost    decimal.NullDecimal `json:"actualCost" gorm:"type:DECIMAL(20,8)" swaggertype:"primitive,string" example:"500"` // Null means not yet incurred
	Status        BudgetItemStatus    `json:"status" example:"approved"`
	Vendor        string              `json:"vendor" example:"Rossi Mario"`
	PaymentDate   *time.Time          `json:"paymentDate"`
	Notes         string              `json:"notes"`
}

func (i *BudgetItem) BeforeSave(_ *gorm.DB) error {
	i.Description = strings.TrimSpace(i.Description)
	i.Vendor = strings.TrimSpace(i.Vendor)
	i.PaymentDate = utc(i.PaymentDate)

	if i.Status == "" {
		i.Status = BudgetItemPlanned
	}

	return nil
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sponsor is a company sponsoring an event.
//
// Like StaffAssignment, BudgetItemID is an exclusive weak reference
// maintained by the budget synchronizer.
type Sponsor struct {
	DefaultModel
	EventID           uuid.UUID            `json:"eventId" gorm:"index"`
	Event             Event                `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CompanyName       string               `json:"companyName" example:"Acme S.p.A."`
	ContactName       string               `json:"contactName" example:"Giulia Bianchi"`
	Level             string               `json:"level" example:"gold"`
	SponsorshipAmount decimal.Decimal      `json:"sponsorshipAmount" gorm:"type:DECIMAL(20,8)" example:"1000"`
	PaymentStatus     SponsorPaymentStatus `json:"paymentStatus" example:"partial"`
	PaymentDate       *time.Time           `json:"paymentDate"`
	BudgetItemID      *uuid.UUID           `json:"budgetItemId"`
}

func (s *Sponsor) BeforeSave(_ *gorm.DB) error {
	s.CompanyName = strings.TrimSpace(s.CompanyName)
	s.ContactName = strings.TrimSpace(s.ContactName)
	s.PaymentDate = utc(s.PaymentDate)

	if s.PaymentStatus == "" {
		s.PaymentStatus = SponsorPaymentPending
	}

	if s.BudgetItemID != nil && *s.BudgetItemID == uuid.Nil {
		s.BudgetItemID = nil
	}

	return nil
}

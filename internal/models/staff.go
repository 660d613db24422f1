package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Staff is a person that can be assigned to events.
type Staff struct {
	DefaultModel
	FirstName string `json:"firstName" example:"Mario"`
	LastName  string `json:"lastName" example:"Rossi"`
	Email     string `json:"email" gorm:"uniqueIndex" example:"mario.rossi@example.com"`
	Phone     string `json:"phone"`
	Role      string `json:"role" example:"hostess"`
}

// DisplayName is "last first", the way staff are listed everywhere.
func (s Staff) DisplayName() string {
	return strings.TrimSpace(s.LastName + " " + s.FirstName)
}

func (s *Staff) BeforeSave(_ *gorm.DB) error {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))

	return nil
}

// StaffAssignment books a staff member for a time window of an event.
//
// BudgetItemID is an exclusive weak reference to the one budget item
// created on behalf of the assignment. The assignment does not own the
// item through the database: the pointer is maintained by the budget
// synchronizer.
type StaffAssignment struct {
	DefaultModel
	EventID          uuid.UUID           `json:"eventId" gorm:"index"`
	Event            Event               `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	StaffID          uuid.UUID           `json:"staffId" gorm:"index"`
	Staff            Staff               `json:"-"`
	StartTime        time.Time           `json:"startTime"`
	EndTime          time.Time           `json:"endTime"`
	AssignmentStatus AssignmentStatus    `json:"assignmentStatus" example:"confirmed"`
	PaymentAmount    decimal.NullDecimal `json:"paymentAmount" gorm:"type:DECIMAL(20,8)" swaggertype:"primitive,string" example:"500"`
	PaymentTerms     PaymentTerms        `json:"paymentTerms" example:"30_days"`
	PaymentDueDate   *time.Time          `json:"paymentDueDate"`
	PaymentDate      *time.Time          `json:"paymentDate"`
	PaymentStatus    PaymentStatus       `json:"paymentStatus" example:"pending"`
	InvoiceNumber    string              `json:"invoiceNumber"`
	InvoiceDate      *time.Time          `json:"invoiceDate"`
	Notes            string              `json:"notes"`
	BudgetItemID     *uuid.UUID          `json:"budgetItemId"`
}

func (a *StaffAssignment) BeforeSave(_ *gorm.DB) error {
	a.StartTime = a.StartTime.In(time.UTC)
	a.EndTime = a.EndTime.In(time.UTC)
	a.PaymentDueDate = utc(a.PaymentDueDate)
	a.PaymentDate = utc(a.PaymentDate)
	a.InvoiceDate = utc(a.InvoiceDate)
	a.InvoiceNumber = strings.TrimSpace(a.InvoiceNumber)

	if a.BudgetItemID != nil && *a.BudgetItemID == uuid.Nil {
		a.BudgetItemID = nil
	}

	return nil
}

func (a *StaffAssignment) AfterFind(tx *gorm.DB) error {
	err := a.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	a.StartTime = a.StartTime.In(time.UTC)
	a.EndTime = a.EndTime.In(time.UTC)
	a.PaymentDueDate = utc(a.PaymentDueDate)
	a.PaymentDate = utc(a.PaymentDate)
	a.InvoiceDate = utc(a.InvoiceDate)

	return nil
}

package budgetsync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SponsorInput is the data of a sponsor.
//
// Without BudgetCategoryID, sponsorships are booked on the income
// category of the event.
type SponsorInput struct {
	EventID           uuid.UUID                   `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	CompanyName       string                      `json:"companyName" validate:"required,max=255" example:"Acme S.p.A."`
	ContactName       string                      `json:"contactName" validate:"max=255" example:"Giulia Bianchi"`
	Level             string                      `json:"level" validate:"max=50" example:"gold"`
	SponsorshipAmount decimal.Decimal             `json:"sponsorshipAmount" validate:"nonnegative" example:"1000"`
	PaymentStatus     models.SponsorPaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending partial paid" example:"partial"`
	PaymentDate       *time.Time                  `json:"paymentDate"`
	BudgetCategoryID  *uuid.UUID                  `json:"budgetCategoryId"`
}

func (in SponsorInput) apply(s *models.Sponsor) {
	s.EventID = in.EventID
	s.CompanyName = in.CompanyName
	s.ContactName = in.ContactName
	s.Level = in.Level
	s.SponsorshipAmount = in.SponsorshipAmount
	s.PaymentStatus = in.PaymentStatus
	s.PaymentDate = in.PaymentDate

	if s.PaymentStatus == "" {
		s.PaymentStatus = models.SponsorPaymentPending
	}
}

// SponsorPatch is a partial update of a sponsor. Fields that are nil keep
// their current value.
type SponsorPatch struct {
	CompanyName       *string                      `json:"companyName"`
	ContactName       *string                      `json:"contactName"`
	Level             *string                      `json:"level"`
	SponsorshipAmount *decimal.Decimal             `json:"sponsorshipAmount"`
	PaymentStatus     *models.SponsorPaymentStatus `json:"paymentStatus"`
	PaymentDate       *time.Time                   `json:"paymentDate"`
	BudgetCategoryID  *uuid.UUID                   `json:"budgetCategoryId"`
}

func (p SponsorPatch) merge(s models.Sponsor) SponsorInput {
	in := SponsorInput{
		EventID:           s.EventID,
		CompanyName:       s.CompanyName,
		ContactName:       s.ContactName,
		Level:             s.Level,
		SponsorshipAmount: s.SponsorshipAmount,
		PaymentStatus:     s.PaymentStatus,
		PaymentDate:       s.PaymentDate,
		BudgetCategoryID:  p.BudgetCategoryID,
	}

	if p.CompanyName != nil {
		in.CompanyName = *p.CompanyName
	}
	if p.ContactName != nil {
		in.ContactName = *p.ContactName
	}
	if p.Level != nil {
		in.Level = *p.Level
	}
	if p.SponsorshipAmount != nil {
		in.SponsorshipAmount = *p.SponsorshipAmount
	}
	if p.PaymentStatus != nil {
		in.PaymentStatus = *p.PaymentStatus
	}
	if p.PaymentDate != nil {
		in.PaymentDate = p.PaymentDate
	}

	return in
}

func sponsorPaths(s models.Sponsor) []string {
	return []string{
		revalidate.EventSponsors(s.EventID),
		revalidate.EventBudget(s.EventID),
	}
}

func (s *Synchronizer) syncSponsor(tx *gorm.DB, sponsor *models.Sponsor, category *uuid.UUID, operation string) {
	pointer := sponsor.BudgetItemID

	ok := s.budgetSide(tx, ownerSponsor, operation, sponsor.ID, func(tx *gorm.DB) error {
		return s.sync(tx, linked{
			pointer:   &pointer,
			eventID:   sponsor.EventID,
			selected:  category,
			income:    true,
			hasAmount: sponsorHasAmount(*sponsor),
			apply: func(item *models.BudgetItem) {
				applySponsor(item, *sponsor)
			},
		})
	})

	if ok || pointer == nil {
		sponsor.BudgetItemID = pointer
	}
}

// CreateSponsor creates a sponsor and, if it has an amount, its budget item.
func (s *Synchronizer) CreateSponsor(ctx context.Context, in SponsorInput) action.Result {
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	sponsor := models.Sponsor{DefaultModel: models.DefaultModel{ID: uuid.New()}}
	in.apply(&sponsor)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select("id").First(&models.Event{}, "id = ?", sponsor.EventID).Error
		if err != nil {
			return err
		}

		s.syncSponsor(tx, &sponsor, in.BudgetCategoryID, "create")
		return tx.Omit(clause.Associations).Create(&sponsor).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, sponsorPaths(sponsor)...)
	return action.Ok("Sponsor created", sponsor)
}

// UpdateSponsor applies a patch to a sponsor and mirrors the result to
// its budget item.
func (s *Synchronizer) UpdateSponsor(ctx context.Context, id uuid.UUID, patch SponsorPatch) action.Result {
	var sponsor models.Sponsor
	var invalid map[string][]string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&sponsor, "id = ?", id).Error
		if err != nil {
			return err
		}

		in := patch.merge(sponsor)
		invalid = action.Validate(in)
		if invalid != nil {
			return action.ErrValidation
		}
		in.apply(&sponsor)

		s.syncSponsor(tx, &sponsor, in.BudgetCategoryID, "update")
		return tx.Omit(clause.Associations).Save(&sponsor).Error
	})
	if invalid != nil {
		return action.Invalid(invalid)
	}
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, sponsorPaths(sponsor)...)
	return action.Ok("Sponsor updated", sponsor)
}

// DeleteSponsor deletes a sponsor together with its budget item. If the
// item cannot be deleted, the sponsor is deleted anyway.
func (s *Synchronizer) DeleteSponsor(ctx context.Context, id uuid.UUID) action.Result {
	var sponsor models.Sponsor

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&sponsor, "id = ?", id).Error
		if err != nil {
			return err
		}

		if sponsor.BudgetItemID != nil {
			item := *sponsor.BudgetItemID
			s.budgetSide(tx, ownerSponsor, "delete", sponsor.ID, func(tx *gorm.DB) error {
				return s.unlink(tx, item)
			})
		}

		return tx.Delete(&sponsor).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, sponsorPaths(sponsor)...)
	return action.Ok("Sponsor deleted", nil)
}

package budgetsync

import (
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/shopspring/decimal"
)

// The functions in here map an owning record onto its budget item. They
// only depend on their arguments so that synchronizing the same owner
// twice yields the same item.

func assignmentDescription(staff models.Staff) string {
	return "Staff: " + staff.DisplayName()
}

func sponsorDescription(sponsor models.Sponsor) string {
	return "Sponsorship: " + sponsor.CompanyName
}

// assignmentHasAmount reports whether the assignment has budget impact.
func assignmentHasAmount(a models.StaffAssignment) bool {
	return a.PaymentAmount.Valid && !a.PaymentAmount.Decimal.IsZero()
}

func sponsorHasAmount(sponsor models.Sponsor) bool {
	return !sponsor.SponsorshipAmount.IsZero()
}

// applyAssignment sets the fields of a budget item for a staff assignment.
//
// Staff cost is committed on assignment, so the actual cost always equals
// the estimated cost.
func applyAssignment(item *models.BudgetItem, a models.StaffAssignment, staff models.Staff) {
	amount := decimal.Zero
	if a.PaymentAmount.Valid {
		amount = a.PaymentAmount.Decimal
	}

	item.Description = assignmentDescription(staff)
	item.Vendor = staff.DisplayName()
	item.EstimatedCost = amount
	item.ActualCost = decimal.NewNullDecimal(amount)
	item.PaymentDate = a.PaymentDate

	item.Status = models.BudgetItemApproved
	if a.PaymentStatus == models.PaymentPaid {
		item.Status = models.BudgetItemPaid
	}
}

// applySponsor sets the fields of a budget item for a sponsor.
func applySponsor(item *models.BudgetItem, sponsor models.Sponsor) {
	item.Description = sponsorDescription(sponsor)
	item.Vendor = sponsor.CompanyName
	item.EstimatedCost = sponsor.SponsorshipAmount
	item.ActualCost = decimal.NewNullDecimal(sponsorActualCost(sponsor.SponsorshipAmount, sponsor.PaymentStatus))
	item.PaymentDate = sponsor.PaymentDate
	item.Status = sponsorItemStatus(sponsor.PaymentStatus)
}

// sponsorActualCost approximates the received amount. A partial payment
// counts as half of the amount.
func sponsorActualCost(amount decimal.Decimal, status models.SponsorPaymentStatus) decimal.Decimal {
	switch status {
	case models.SponsorPaymentPaid:
		return amount
	case models.SponsorPaymentPartial:
		return amount.Div(decimal.NewFromInt(2))
	}

	return decimal.Zero
}

func sponsorItemStatus(status models.SponsorPaymentStatus) models.BudgetItemStatus {
	switch status {
	case models.SponsorPaymentPaid:
		return models.BudgetItemPaid
	case models.SponsorPaymentPartial:
		return models.BudgetItemApproved
	}

	return models.BudgetItemPlanned
}

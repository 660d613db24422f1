package budgetsync_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/budgetsync"
	"github.com/nuno80/agenzia-eventi/internal/ledger"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createSponsor(s *budgetsync.Synchronizer, in budgetsync.SponsorInput) models.Sponsor {
	r := s.CreateSponsor(context.Background(), in)
	suite.Require().True(r.Success, "Creating the sponsor failed: %s %v", r.Message, r.Errors)
	return r.Data.(models.Sponsor)
}

func (suite *TestSuiteStandard) reloadSponsor(id uuid.UUID) models.Sponsor {
	var sponsor models.Sponsor
	suite.Require().Nil(models.DB.First(&sponsor, "id = ?", id).Error)
	return sponsor
}

func (suite *TestSuiteStandard) TestSponsorPartialPayment() {
	s := suite.synchronizer()
	event := suite.createTestEvent()

	sponsor := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:           event.ID,
		CompanyName:       "Acme S.p.A.",
		SponsorshipAmount: decimal.NewFromInt(1000),
		PaymentStatus:     models.SponsorPaymentPartial,
	})
	suite.Require().NotNil(sponsor.BudgetItemID)

	item := suite.reloadItem(*sponsor.BudgetItemID)
	suite.assertDecimal("1000", item.EstimatedCost)
	suite.assertDecimal("500", item.ActualCost.Decimal)
	suite.Assert().Equal("Sponsorship: Acme S.p.A.", item.Description)
	suite.Assert().Equal("Acme S.p.A.", item.Vendor)
	suite.Assert().Equal(models.BudgetItemApproved, item.Status)

	// Without a selected category, the income category is used
	category := suite.reloadCategory(item.CategoryID)
	suite.Assert().Equal(ledger.IncomeCategoryName, category.Name)
	suite.Assert().Equal(event.ID, category.EventID)
	suite.assertDecimal("500", category.SpentAmount)
}

func (suite *TestSuiteStandard) TestSponsorLifecycle() {
	s := suite.synchronizer()
	event := suite.createTestEvent()

	sponsor := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:           event.ID,
		CompanyName:       "Acme S.p.A.",
		SponsorshipAmount: decimal.NewFromInt(2000),
	})
	suite.Require().NotNil(sponsor.BudgetItemID)
	suite.Assert().Equal(models.SponsorPaymentPending, sponsor.PaymentStatus)

	item := suite.reloadItem(*sponsor.BudgetItemID)
	suite.Assert().Equal(models.BudgetItemPlanned, item.Status)
	suite.assertDecimal("0", item.ActualCost.Decimal)

	// A second sponsor reuses the income category
	other := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:           event.ID,
		CompanyName:       "Bianchi S.r.l.",
		SponsorshipAmount: decimal.NewFromInt(300),
		PaymentStatus:     models.SponsorPaymentPaid,
	})
	suite.Assert().Equal(item.CategoryID, suite.reloadItem(*other.BudgetItemID).CategoryID)
	suite.assertDecimal("300", suite.reloadCategory(item.CategoryID).SpentAmount)

	paid := models.SponsorPaymentPaid
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	name := "Acme Group S.p.A."
	r := s.UpdateSponsor(context.Background(), sponsor.ID, budgetsync.SponsorPatch{PaymentStatus: &paid, PaymentDate: &date, CompanyName: &name})
	suite.Require().True(r.Success, r.Message)

	item = suite.reloadItem(*sponsor.BudgetItemID)
	suite.Assert().Equal(models.BudgetItemPaid, item.Status)
	suite.Assert().Equal("Sponsorship: Acme Group S.p.A.", item.Description)
	suite.assertDecimal("2000", item.ActualCost.Decimal)
	suite.assertTime(date, item.PaymentDate)
	suite.assertDecimal("2300", suite.reloadCategory(item.CategoryID).SpentAmount)

	r = s.DeleteSponsor(context.Background(), sponsor.ID)
	suite.Require().True(r.Success, r.Message)

	err := models.DB.First(&models.BudgetItem{}, "id = ?", item.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.assertDecimal("300", suite.reloadCategory(item.CategoryID).SpentAmount)
}

func (suite *TestSuiteStandard) TestSponsorSelectedCategory() {
	s := suite.synchronizer()
	event := suite.createTestEvent()
	category := suite.createTestCategory(event.ID, "Partners")

	sponsor := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:           event.ID,
		CompanyName:       "Acme S.p.A.",
		SponsorshipAmount: decimal.NewFromInt(1000),
		PaymentStatus:     models.SponsorPaymentPaid,
		BudgetCategoryID:  &category.ID,
	})

	suite.Assert().Equal(category.ID, suite.reloadItem(*sponsor.BudgetItemID).CategoryID)
	suite.assertDecimal("1000", suite.reloadCategory(category.ID).SpentAmount)

	var count int64
	models.DB.Model(&models.BudgetCategory{}).Where("name = ?", ledger.IncomeCategoryName).Count(&count)
	suite.Assert().Equal(int64(0), count, "The income category must only be created when needed")
}

func (suite *TestSuiteStandard) TestSponsorWithoutAmount() {
	s := suite.synchronizer()
	event := suite.createTestEvent()

	sponsor := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:     event.ID,
		CompanyName: "Media partner",
	})
	suite.Assert().Nil(sponsor.BudgetItemID)
	suite.Assert().Equal(int64(0), suite.countItems())

	// Setting an amount later links the sponsor
	value := decimal.NewFromInt(750)
	r := s.UpdateSponsor(context.Background(), sponsor.ID, budgetsync.SponsorPatch{SponsorshipAmount: &value})
	suite.Require().True(r.Success, r.Message)
	suite.Assert().NotNil(suite.reloadSponsor(sponsor.ID).BudgetItemID)
	suite.Assert().Equal(int64(1), suite.countItems())
}

func (suite *TestSuiteStandard) TestSponsorValidation() {
	s := suite.synchronizer()

	r := s.CreateSponsor(context.Background(), budgetsync.SponsorInput{
		EventID:           suite.createTestEvent().ID,
		SponsorshipAmount: decimal.NewFromInt(-1),
		PaymentStatus:     "overpaid",
	})
	suite.Assert().False(r.Success)
	suite.Assert().Equal([]string{"companyName is required"}, r.Errors["companyName"])
	suite.Assert().Contains(r.Errors, "sponsorshipAmount")
	suite.Assert().Contains(r.Errors, "paymentStatus")

	r = s.CreateSponsor(context.Background(), budgetsync.SponsorInput{EventID: uuid.New(), CompanyName: "Acme"})
	suite.Assert().ErrorIs(r.Err(), models.ErrResourceNotFound)

	r = s.UpdateSponsor(context.Background(), uuid.New(), budgetsync.SponsorPatch{})
	suite.Assert().ErrorIs(r.Err(), models.ErrResourceNotFound)
	suite.Assert().Equal("there is no sponsor matching your query", r.Message)
}

func (suite *TestSuiteStandard) TestSponsorLinkFailure() {
	event := suite.createTestEvent()
	s := suite.synchronizer(budgetsync.WithLedger(failingLedger{create: true}))

	sponsor := suite.createSponsor(s, budgetsync.SponsorInput{
		EventID:           event.ID,
		CompanyName:       "Acme S.p.A.",
		SponsorshipAmount: decimal.NewFromInt(1000),
	})

	suite.Assert().Nil(sponsor.BudgetItemID)
	suite.Assert().Equal("Acme S.p.A.", suite.reloadSponsor(sponsor.ID).CompanyName)
	suite.Assert().Equal(int64(0), suite.countItems())
}

func (suite *TestSuiteStandard) TestSponsorRevalidates() {
	s := suite.synchronizer()
	event := suite.createTestEvent()

	suite.createSponsor(s, budgetsync.SponsorInput{EventID: event.ID, CompanyName: "Acme"})
	suite.Assert().Equal([]string{revalidate.EventSponsors(event.ID), revalidate.EventBudget(event.ID)}, suite.recorder.Paths())
}

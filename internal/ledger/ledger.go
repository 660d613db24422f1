// Package ledger reads and writes budget categories and budget items.
//
// The spent amount of a category is only ever written by RecomputeSpent,
// which sums all items of the category from scratch.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeCategoryName is the category that sponsorships are booked on
// when no category was selected.
const IncomeCategoryName = "Income"

// Accessor implements row level access for the budget tables. All
// methods take the database handle to use, which can be a transaction.
type Accessor struct{}

// Category returns the budget category with the given ID.
func (Accessor) Category(tx *gorm.DB, id uuid.UUID) (models.BudgetCategory, error) {
	var category models.BudgetCategory
	err := tx.First(&category, "id = ?", id).Error
	return category, err
}

// Item returns the budget item with the given ID.
func (Accessor) Item(tx *gorm.DB, id uuid.UUID) (models.BudgetItem, error) {
	var item models.BudgetItem
	err := tx.First(&item, "id = ?", id).Error
	return item, err
}

// Items returns all items of a category, ordered by creation.
func (Accessor) Items(tx *gorm.DB, categoryID uuid.UUID) ([]models.BudgetItem, error) {
	var items []models.BudgetItem
	err := tx.Where(&models.BudgetItem{CategoryID: categoryID}).Order("created_at ASC").Find(&items).Error
	return items, err
}

// IncomeCategory returns the income category of the event, creating it
// if it does not exist yet.
func (Accessor) IncomeCategory(tx *gorm.DB, eventID uuid.UUID) (models.BudgetCategory, error) {
	category := models.BudgetCategory{
		EventID: eventID,
		Name:    IncomeCategoryName,
		Color:   "#16a34a",
		Icon:    "coins",
	}

	err := tx.
		Where(&models.BudgetCategory{EventID: eventID, Name: IncomeCategoryName}).
		Attrs(category).
		FirstOrCreate(&category).Error
	if err != nil {
		return models.BudgetCategory{}, fmt.Errorf("resolving income category: %w", err)
	}

	return category, nil
}

// CreateItem inserts a new budget item.
func (Accessor) CreateItem(tx *gorm.DB, item *models.BudgetItem) error {
	return tx.Create(item).Error
}

// UpdateItem writes all fields of an existing budget item.
func (Accessor) UpdateItem(tx *gorm.DB, item *models.BudgetItem) error {
	if item.ID == uuid.Nil {
		return fmt.Errorf("%w budget item without ID", models.ErrResourceNotFound)
	}

	return tx.Save(item).Error
}

// DeleteItem deletes a budget item and returns it. The caller is
// responsible for recomputing the spent amount of its category.
func (a Accessor) DeleteItem(tx *gorm.DB, id uuid.UUID) (models.BudgetItem, error) {
	item, err := a.Item(tx, id)
	if err != nil {
		return models.BudgetItem{}, err
	}

	err = tx.Delete(&item).Error
	if err != nil {
		return models.BudgetItem{}, err
	}

	return item, nil
}

// RecomputeSpent sets the spent amount of a category to the sum of the
// actual cost of all its items. Items without actual cost count as zero.
func (Accessor) RecomputeSpent(tx *gorm.DB, categoryID uuid.UUID) (decimal.Decimal, error) {
	var costs []decimal.NullDecimal
	err := tx.Model(&models.BudgetItem{}).
		Where(&models.BudgetItem{CategoryID: categoryID}).
		Pluck("actual_cost", &costs).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading item costs: %w", err)
	}

	sum := decimal.Zero
	for _, c := range costs {
		if c.Valid {
			sum = sum.Add(c.Decimal)
		}
	}

	res := tx.Model(&models.BudgetCategory{}).
		Where("id = ?", categoryID).
		Update("spent_amount", sum)
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("writing spent amount: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return decimal.Zero, fmt.Errorf("%w budget category matching your query", models.ErrResourceNotFound)
	}

	return sum, nil
}

// DeleteCategory deletes a category together with all its items.
//
// Weak references from staff assignments and sponsors to the deleted
// items are cleared. No aggregate is recomputed, the category is gone.
func (Accessor) DeleteCategory(tx *gorm.DB, id uuid.UUID) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		var category models.BudgetCategory
		err := tx.First(&category, "id = ?", id).Error
		if err != nil {
			return err
		}

		items := tx.Model(&models.BudgetItem{}).Select("id").Where("category_id = ?", id)

		err = tx.Model(&models.StaffAssignment{}).
			Where("budget_item_id IN (?)", items).
			UpdateColumn("budget_item_id", nil).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.Sponsor{}).
			Where("budget_item_id IN (?)", items).
			UpdateColumn("budget_item_id", nil).Error
		if err != nil {
			return err
		}

		// Items are removed by the foreign key cascade. Delete them
		// explicitly too for databases that have foreign keys disabled.
		err = tx.Where("category_id = ?", id).Delete(&models.BudgetItem{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}

// Package budgetsync keeps staff assignments and sponsors in sync with the
// budget.
//
// A staff assignment or a sponsor owns at most one budget item, referenced
// by its BudgetItemID. Every create, update and delete of the owner is
// mirrored to that item and the spent amount of the item's category is
// recomputed afterwards.
//
// Each operation runs in a single transaction. The budget side runs in
// nested savepoints: if it fails, only the savepoint is rolled back and the
// owner is still written, leaving it unlinked or stale until the next update.
package budgetsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/ledger"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is the subset of budget table access the Synchronizer needs.
type Ledger interface {
	Category(tx *gorm.DB, id uuid.UUID) (models.BudgetCategory, error)
	IncomeCategory(tx *gorm.DB, eventID uuid.UUID) (models.BudgetCategory, error)
	Item(tx *gorm.DB, id uuid.UUID) (models.BudgetItem, error)
	CreateItem(tx *gorm.DB, item *models.BudgetItem) error
	UpdateItem(tx *gorm.DB, item *models.BudgetItem) error
	DeleteItem(tx *gorm.DB, id uuid.UUID) (models.BudgetItem, error)
	RecomputeSpent(tx *gorm.DB, categoryID uuid.UUID) (decimal.Decimal, error)
}

// Synchronizer implements all mutations on staff assignments and sponsors.
type Synchronizer struct {
	db       *gorm.DB
	ledger   Ledger
	notifier revalidate.Notifier
	now      func() time.Time
}

type Option func(*Synchronizer)

// WithLedger replaces the default ledger.Accessor.
func WithLedger(l Ledger) Option {
	return func(s *Synchronizer) {
		s.ledger = l
	}
}

// WithNotifier sets the notifier signaled after every successful mutation.
func WithNotifier(n revalidate.Notifier) Option {
	return func(s *Synchronizer) {
		s.notifier = n
	}
}

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		s.now = now
	}
}

func New(db *gorm.DB, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		db:       db,
		ledger:   ledger.Accessor{},
		notifier: revalidate.LogNotifier{},
		now:      time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

var (
	linkFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budget_link_failures_total",
			Help: "How many budget item mutations failed while the owning record was written, partitioned by owner and operation.",
		},
		[]string{"owner", "operation"},
	)

	recomputeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "budget_recompute_failures_total",
			Help: "How many recomputations of a category spent amount failed.",
		},
	)
)

// Collectors returns the Prometheus collectors of the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{linkFailures, recomputeFailures}
}

const (
	ownerAssignment = "assignment"
	ownerSponsor    = "sponsor"
)

// errWrongEvent is returned when a category is selected that belongs to
// another event than the owning record.
var errWrongEvent = fmt.Errorf("%w: the budget category belongs to a different event", models.ErrReferenceInvalid)

// budgetSide runs fn in a savepoint. A failure is logged and counted, and
// never returned: the owning record is written regardless.
func (s *Synchronizer) budgetSide(tx *gorm.DB, owner, operation string, id uuid.UUID, fn func(tx *gorm.DB) error) bool {
	err := tx.Transaction(fn)
	if err == nil {
		return true
	}

	linkFailures.WithLabelValues(owner, operation).Inc()
	log.Warn().Err(err).Str("owner", owner).Str("operation", operation).Str("id", id.String()).Msg("budget item could not be synchronized")
	return false
}

// recompute recomputes the spent amount of a category in a savepoint. A
// failure leaves the aggregate stale until the next mutation touches it.
func (s *Synchronizer) recompute(tx *gorm.DB, categoryID uuid.UUID) {
	err := tx.Transaction(func(tx *gorm.DB) error {
		_, err := s.ledger.RecomputeSpent(tx, categoryID)
		return err
	})
	if err != nil {
		recomputeFailures.Inc()
		log.Warn().Err(err).Str("category", categoryID.String()).Msg("spent amount could not be recomputed")
	}
}

// category resolves the category selected for an owner of the event.
func (s *Synchronizer) category(tx *gorm.DB, eventID, categoryID uuid.UUID) (models.BudgetCategory, error) {
	category, err := s.ledger.Category(tx, categoryID)
	if err != nil {
		return models.BudgetCategory{}, err
	}

	if category.EventID != eventID {
		return models.BudgetCategory{}, errWrongEvent
	}

	return category, nil
}

// linked describes the budget side of an owner.
type linked struct {
	// pointer is the BudgetItemID of the owner, updated in place.
	pointer **uuid.UUID

	eventID uuid.UUID

	// selected is the category chosen for the owner. nil keeps the
	// category of an already linked item.
	selected *uuid.UUID

	// income links the owner to the income category of the event when
	// nothing is selected.
	income bool

	// hasAmount is false when the owner has no budget impact.
	hasAmount bool

	// apply sets the mapped fields on the item.
	apply func(item *models.BudgetItem)
}

func (s *Synchronizer) resolve(tx *gorm.DB, l linked, creating bool) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	var err error

	switch {
	case l.selected != nil:
		category, err = s.category(tx, l.eventID, *l.selected)
	case creating && l.income:
		category, err = s.ledger.IncomeCategory(tx, l.eventID)
	default:
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &category, nil
}

// sync creates or updates the budget item linked to an owner.
//
// The existence of the linked item is re-read before deciding between
// create and update. A pointer to an item that no longer exists is dropped.
func (s *Synchronizer) sync(tx *gorm.DB, l linked) error {
	if *l.pointer != nil {
		item, err := s.ledger.Item(tx, **l.pointer)
		switch {
		case err == nil:
			return s.updateLinked(tx, l, item)
		case errors.Is(err, models.ErrResourceNotFound):
			log.Warn().Str("item", (*l.pointer).String()).Msg("dropping reference to missing budget item")
			*l.pointer = nil
		default:
			return err
		}
	}

	if !l.hasAmount {
		return nil
	}

	category, err := s.resolve(tx, l, true)
	if err != nil || category == nil {
		return err
	}

	item := models.BudgetItem{
		EventID:    l.eventID,
		CategoryID: category.ID,
	}
	l.apply(&item)

	err = s.ledger.CreateItem(tx, &item)
	if err != nil {
		return err
	}

	s.recompute(tx, item.CategoryID)
	*l.pointer = &item.ID
	return nil
}

func (s *Synchronizer) updateLinked(tx *gorm.DB, l linked, item models.BudgetItem) error {
	previous := item.CategoryID

	category, err := s.resolve(tx, l, false)
	if err != nil {
		return err
	}
	if category != nil {
		item.CategoryID = category.ID
	}

	l.apply(&item)

	err = s.ledger.UpdateItem(tx, &item)
	if err != nil {
		return err
	}

	s.recompute(tx, item.CategoryID)
	if previous != item.CategoryID {
		s.recompute(tx, previous)
	}

	return nil
}

// unlink deletes the budget item of an owner and recomputes its category.
func (s *Synchronizer) unlink(tx *gorm.DB, id uuid.UUID) error {
	item, err := s.ledger.DeleteItem(tx, id)
	if err != nil {
		return err
	}

	s.recompute(tx, item.CategoryID)
	return nil
}

func (s *Synchronizer) revalidate(ctx context.Context, paths ...string) {
	s.notifier.Revalidate(ctx, paths...)
}

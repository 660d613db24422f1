package agenda

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"golang.org/x/exp/slices"
)

var (
	ErrSessionNotInTimeline = errors.New("the session is not part of the timeline")
	ErrNoForm               = errors.New("no session form is open")
)

// SessionStore is what the Timeline needs from the session persistence.
type SessionStore interface {
	ListSessions(ctx context.Context, eventID uuid.UUID) ([]models.AgendaSession, error)
	CreateSession(ctx context.Context, in SessionInput) action.Result
	UpdateSession(ctx context.Context, id uuid.UUID, patch SessionPatch) action.Result
}

// Day is the bucket of sessions starting on the same calendar date.
type Day struct {
	Date     time.Time              `json:"date" example:"2026-05-12T00:00:00Z"` // Midnight in the timeline's location
	Sessions []models.AgendaSession `json:"sessions"`
}

// Overlay follows the dragged session while a drag is in progress.
type Overlay struct {
	Session models.AgendaSession
	Over    uuid.UUID // Session currently under the pointer, uuid.Nil if none
}

type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

// Form is the state of the create/edit dialog.
type Form struct {
	Mode      FormMode
	SessionID uuid.UUID // Only set in FormEdit
	Values    SessionInput
}

type drag struct {
	active uuid.UUID
	over   uuid.UUID
}

// Timeline holds the sessions of an event as displayed to one user.
//
// The order of the sessions can be rearranged by dragging or with the
// keyboard. The order is never persisted: Reload always restores start
// time order. A Timeline is not safe for concurrent use.
type Timeline struct {
	store    SessionStore
	eventID  uuid.UUID
	location *time.Location

	sessions []models.AgendaSession
	drag     *drag
	form     *Form
}

type TimelineOption func(*Timeline)

// WithLocation sets the location whose calendar dates the sessions are
// grouped by. The default is UTC.
func WithLocation(loc *time.Location) TimelineOption {
	return func(t *Timeline) {
		t.location = loc
	}
}

// NewTimeline creates a timeline for the event and loads its sessions.
func NewTimeline(ctx context.Context, store SessionStore, eventID uuid.UUID, opts ...TimelineOption) (*Timeline, error) {
	t := &Timeline{
		store:    store,
		eventID:  eventID,
		location: time.UTC,
	}

	for _, o := range opts {
		o(t)
	}

	err := t.Reload(ctx)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Reload replaces the sessions with the stored ones, discarding any
// rearrangement and an ongoing drag.
func (t *Timeline) Reload(ctx context.Context) error {
	sessions, err := t.store.ListSessions(ctx, t.eventID)
	if err != nil {
		return err
	}

	t.sessions = sessions
	t.drag = nil
	return nil
}

// Sessions returns the sessions in their current order.
func (t *Timeline) Sessions() []models.AgendaSession {
	return slices.Clone(t.sessions)
}

// Days groups the sessions by the date of their start time. Days are in
// ascending order, sessions within a day keep their current order.
func (t *Timeline) Days() []Day {
	var days []Day
	index := make(map[time.Time]int)

	for _, s := range t.sessions {
		start := s.StartTime.In(t.location)
		date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.location)

		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i
			days = append(days, Day{Date: date})
		}
		days[i].Sessions = append(days[i].Sessions, s)
	}

	slices.SortStableFunc(days, func(a, b Day) int {
		return a.Date.Compare(b.Date)
	})

	return days
}

func (t *Timeline) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(t.sessions, func(s models.AgendaSession) bool {
		return s.ID == id
	})
}

// move removes the session at from and reinserts it at to.
func (t *Timeline) move(from, to int) {
	s := t.sessions[from]
	t.sessions = slices.Delete(t.sessions, from, from+1)
	t.sessions = slices.Insert(t.sessions, to, s)
}

// BeginDrag starts dragging a session. A drag already in progress is
// replaced.
func (t *Timeline) BeginDrag(id uuid.UUID) error {
	if t.indexOf(id) < 0 {
		return ErrSessionNotInTimeline
	}

	t.drag = &drag{active: id}
	return nil
}

// DragOver records the session currently under the dragged one. Unknown
// IDs clear the target.
func (t *Timeline) DragOver(id uuid.UUID) {
	if t.drag == nil {
		return
	}

	if t.indexOf(id) < 0 {
		id = uuid.Nil
	}
	t.drag.over = id
}

// Overlay returns the overlay of the ongoing drag, ok is false without one.
func (t *Timeline) Overlay() (overlay Overlay, ok bool) {
	if t.drag == nil {
		return Overlay{}, false
	}

	i := t.indexOf(t.drag.active)
	if i < 0 {
		return Overlay{}, false
	}

	return Overlay{Session: t.sessions[i], Over: t.drag.over}, true
}

// Drop ends the drag by moving the dragged session to the position of the
// target. The dates of the sessions do not change, even if the session is
// moved to a different day.
//
// Dropping without a valid target leaves the order unchanged. Drop
// reports whether the order changed.
func (t *Timeline) Drop(target uuid.UUID) bool {
	if t.drag == nil {
		return false
	}

	active := t.drag.active
	t.drag = nil

	from, to := t.indexOf(active), t.indexOf(target)
	if from < 0 || to < 0 || from == to {
		return false
	}

	t.move(from, to)
	return true
}

// CancelDrag ends the drag without changing the order.
func (t *Timeline) CancelDrag() {
	t.drag = nil
}

// MoveUp moves a session one position towards the start.
func (t *Timeline) MoveUp(id uuid.UUID) bool {
	i := t.indexOf(id)
	if i <= 0 {
		return false
	}

	t.move(i, i-1)
	return true
}

// MoveDown moves a session one position towards the end.
func (t *Timeline) MoveDown(id uuid.UUID) bool {
	i := t.indexOf(id)
	if i < 0 || i == len(t.sessions)-1 {
		return false
	}

	t.move(i, i+1)
	return true
}

// OpenCreate opens an empty form for a new session starting at start.
func (t *Timeline) OpenCreate(start time.Time) Form {
	t.form = &Form{
		Mode: FormCreate,
		Values: SessionInput{
			EventID:     t.eventID,
			SessionType: models.SessionTalk,
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Status:      models.SessionScheduled,
		},
	}

	return *t.form
}

// OpenEdit opens the form pre-populated with the current values of a session.
func (t *Timeline) OpenEdit(id uuid.UUID) (Form, error) {
	i := t.indexOf(id)
	if i < 0 {
		return Form{}, ErrSessionNotInTimeline
	}

	t.form = &Form{
		Mode:      FormEdit,
		SessionID: id,
		Values:    inputOf(t.sessions[i]),
	}

	return *t.form, nil
}

// Form returns the open form, ok is false if none is open.
func (t *Timeline) Form() (form Form, ok bool) {
	if t.form == nil {
		return Form{}, false
	}
	return *t.form, true
}

// Submit saves the values of the open form. On success, the form is
// closed. The timeline is not updated, the caller is expected to Reload.
func (t *Timeline) Submit(ctx context.Context, values SessionInput) action.Result {
	if t.form == nil {
		return action.Fail(ErrNoForm)
	}

	// Sessions cannot move between events
	values.EventID = t.eventID

	var r action.Result
	switch t.form.Mode {
	case FormEdit:
		r = t.store.UpdateSession(ctx, t.form.SessionID, patchOf(values))
	default:
		r = t.store.CreateSession(ctx, values)
	}

	if r.Success {
		t.form = nil
	} else {
		t.form.Values = values
	}

	return r
}

// CloseForm discards the open form.
func (t *Timeline) CloseForm() {
	t.form = nil
}

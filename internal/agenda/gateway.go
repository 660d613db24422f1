// Package agenda implements the agenda of an event: persistence of single
// sessions and the timeline that displays and rearranges them.
package agenda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errSpeakerOfOtherEvent = fmt.Errorf("%w: the speaker does not belong to the event", models.ErrReferenceInvalid)

// SessionInput is the data of an agenda session.
type SessionInput struct {
	EventID      uuid.UUID            `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Title        string               `json:"title" validate:"required,min=3,max=255" example:"Opening keynote"`
	Description  string               `json:"description" validate:"max=5000"`
	SessionType  models.SessionType   `json:"sessionType" validate:"required,oneof=keynote talk workshop panel break networking other" example:"keynote"`
	StartTime    time.Time            `json:"startTime" validate:"required" example:"2026-05-12T09:30:00Z"`
	EndTime      time.Time            `json:"endTime" validate:"required,gtfield=StartTime" example:"2026-05-12T10:15:00Z"`
	Room         string               `json:"room" validate:"max=255" example:"Sala Verdi"`
	SpeakerID    *uuid.UUID           `json:"speakerId"`
	MaxAttendees *int                 `json:"maxAttendees" validate:"omitempty,gt=0" example:"120"`
	Status       models.SessionStatus `json:"status" validate:"omitempty,oneof=draft scheduled confirmed cancelled completed" example:"scheduled"`
}

func (in *SessionInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Room = strings.TrimSpace(in.Room)

	if in.SpeakerID != nil && *in.SpeakerID == uuid.Nil {
		in.SpeakerID = nil
	}
}

func (in SessionInput) apply(s *models.AgendaSession) {
	s.EventID = in.EventID
	s.Title = in.Title
	s.Description = in.Description
	s.SessionType = in.SessionType
	s.StartTime = in.StartTime
	s.EndTime = in.EndTime
	s.Room = in.Room
	s.SpeakerID = in.SpeakerID
	s.MaxAttendees = in.MaxAttendees
	s.Status = in.Status
}

// inputOf returns the input that produces the session.
func inputOf(s models.AgendaSession) SessionInput {
	return SessionInput{
		EventID:      s.EventID,
		Title:        s.Title,
		Description:  s.Description,
		SessionType:  s.SessionType,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Room:         s.Room,
		SpeakerID:    s.SpeakerID,
		MaxAttendees: s.MaxAttendees,
		Status:       s.Status,
	}
}

// SessionPatch is a partial update of a session. Fields that are nil keep
// their current value. A nil uuid.UUID as SpeakerID removes the speaker,
// 0 as MaxAttendees removes the limit.
type SessionPatch struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	SessionType  *models.SessionType   `json:"sessionType"`
	StartTime    *time.Time            `json:"startTime"`
	EndTime      *time.Time            `json:"endTime"`
	Room         *string               `json:"room"`
	SpeakerID    *uuid.UUID            `json:"speakerId"`
	MaxAttendees *int                  `json:"maxAttendees"`
	Status       *models.SessionStatus `json:"status"`
}

func (p SessionPatch) merge(s models.AgendaSession) SessionInput {
	in := inputOf(s)

	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.SessionType != nil {
		in.SessionType = *p.SessionType
	}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.Room != nil {
		in.Room = *p.Room
	}
	if p.SpeakerID != nil {
		in.SpeakerID = p.SpeakerID
	}
	if p.MaxAttendees != nil {
		in.MaxAttendees = p.MaxAttendees
		if *p.MaxAttendees == 0 {
			in.MaxAttendees = nil
		}
	}
	if p.Status != nil {
		in.Status = *p.Status
	}

	return in
}

// patchOf returns a patch setting every field to the value of in.
func patchOf(in SessionInput) SessionPatch {
	speaker := uuid.Nil
	if in.SpeakerID != nil {
		speaker = *in.SpeakerID
	}

	limit := 0
	if in.MaxAttendees != nil {
		limit = *in.MaxAttendees
	}

	return SessionPatch{
		Title:        &in.Title,
		Description:  &in.Description,
		SessionType:  &in.SessionType,
		StartTime:    &in.StartTime,
		EndTime:      &in.EndTime,
		Room:         &in.Room,
		SpeakerID:    &speaker,
		MaxAttendees: &limit,
		Status:       &in.Status,
	}
}

// Gateway persists single agenda sessions.
type Gateway struct {
	db       *gorm.DB
	notifier revalidate.Notifier
}

func NewGateway(db *gorm.DB, notifier revalidate.Notifier) *Gateway {
	if notifier == nil {
		notifier = revalidate.LogNotifier{}
	}

	return &Gateway{db: db, notifier: notifier}
}

// ListSessions returns all sessions of an event in start time order.
func (g *Gateway) ListSessions(ctx context.Context, eventID uuid.UUID) ([]models.AgendaSession, error) {
	var sessions []models.AgendaSession
	err := g.db.WithContext(ctx).
		Where(&models.AgendaSession{EventID: eventID}).
		Order("start_time ASC, end_time ASC, title ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetSession returns a single session.
func (g *Gateway) GetSession(ctx context.Context, id uuid.UUID) (models.AgendaSession, error) {
	var session models.AgendaSession
	err := g.db.WithContext(ctx).First(&session, "id = ?", id).Error
	return session, err
}

// checkReferences verifies that the event exists and the speaker, if any,
// speaks at it.
func checkReferences(tx *gorm.DB, in SessionInput) error {
	err := tx.Select("id").First(&models.Event{}, "id = ?", in.EventID).Error
	if err != nil {
		return err
	}

	if in.SpeakerID == nil {
		return nil
	}

	var speaker models.Speaker
	err = tx.First(&speaker, "id = ?", *in.SpeakerID).Error
	if err != nil {
		return err
	}

	if speaker.EventID != in.EventID {
		return errSpeakerOfOtherEvent
	}

	return nil
}

// CreateSession creates a session.
func (g *Gateway) CreateSession(ctx context.Context, in SessionInput) action.Result {
	in.normalize()
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	var session models.AgendaSession
	in.apply(&session)

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := checkReferences(tx, in)
		if err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Create(&session).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	g.notifier.Revalidate(ctx, revalidate.EventAgenda(session.EventID))
	return action.Ok("Session created", session)
}

// UpdateSession applies a patch to a session.
func (g *Gateway) UpdateSession(ctx context.Context, id uuid.UUID, patch SessionPatch) action.Result {
	var session models.AgendaSession
	var invalid map[string][]string

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&session, "id = ?", id).Error
		if err != nil {
			return err
		}

		in := patch.merge(session)
		in.normalize()
		invalid = action.Validate(in)
		if invalid != nil {
			return action.ErrValidation
		}

		err = checkReferences(tx, in)
		if err != nil {
			return err
		}

		in.apply(&session)
		return tx.Omit(clause.Associations).Save(&session).Error
	})
	if invalid != nil {
		return action.Invalid(invalid)
	}
	if err != nil {
		return action.Fail(err)
	}

	g.notifier.Revalidate(ctx, revalidate.EventAgenda(session.EventID))
	return action.Ok("Session updated", session)
}

// DeleteSession deletes a session. Confirming the deletion is up to the caller.
func (g *Gateway) DeleteSession(ctx context.Context, id uuid.UUID) action.Result {
	var session models.AgendaSession

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&session, "id = ?", id).Error
		if err != nil {
			return err
		}

		return tx.Delete(&session).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	g.notifier.Revalidate(ctx, revalidate.EventAgenda(session.EventID))
	return action.Ok("Session deleted", nil)
}

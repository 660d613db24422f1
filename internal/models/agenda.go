package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Speaker presents sessions at an event.
type Speaker struct {
	DefaultModel
	EventID   uuid.UUID `json:"eventId" gorm:"index"`
	Event     Event     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FirstName string    `json:"firstName" example:"Laura"`
	LastName  string    `json:"lastName" example:"Verdi"`
	Company   string    `json:"company" example:"Politecnico di Milano"`
	Bio       string    `json:"bio"`
}

func (s *Speaker) BeforeSave(_ *gorm.DB) error {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Company = strings.TrimSpace(s.Company)

	return nil
}

// AgendaSession is a single slot of an event agenda.
//
// SpeakerID is a lookup reference, removing a speaker leaves the session
// without speaker.
type AgendaSession struct {
	DefaultModel
	EventID      uuid.UUID     `json:"eventId" gorm:"index"`
	Event        Event         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title        string        `json:"title" example:"Opening keynote"`
	Description  string        `json:"description"`
	SessionType  SessionType   `json:"sessionType" example:"keynote"`
	StartTime    time.Time     `json:"startTime" gorm:"index"`
	EndTime      time.Time     `json:"endTime"`
	Room         string        `json:"room" example:"Sala Verdi"`
	SpeakerID    *uuid.UUID    `json:"speakerId"`
	Speaker      *Speaker      `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	MaxAttendees *int          `json:"maxAttendees" example:"120"`
	Status       SessionStatus `json:"status" example:"scheduled"`
}

// Duration is the length of the session.
func (s AgendaSession) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

func (s *AgendaSession) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Room = strings.TrimSpace(s.Room)
	s.StartTime = s.StartTime.In(time.UTC)
	s.EndTime = s.EndTime.In(time.UTC)

	if s.SpeakerID != nil && *s.SpeakerID == uuid.Nil {
		s.SpeakerID = nil
	}

	if s.Status == "" {
		s.Status = SessionScheduled
	}

	if !s.EndTime.After(s.StartTime) {
		return ErrSessionTimeWindowInvalid
	}

	return nil
}

func (s *AgendaSession) AfterFind(tx *gorm.DB) error {
	err := s.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	s.StartTime = s.StartTime.In(time.UTC)
	s.EndTime = s.EndTime.In(time.UTC)

	return nil
}

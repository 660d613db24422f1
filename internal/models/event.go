package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Event is the highest level of organization, all other
// resources reference it directly or transitively.
type Event struct {
	DefaultModel
	Name      string    `json:"name" example:"Annual Partner Summit"`
	Location  string    `json:"location" example:"Milano, Palazzo delle Stelline"`
	StartDate time.Time `json:"startDate" example:"2026-05-12T09:00:00Z"`
	EndDate   time.Time `json:"endDate" example:"2026-05-13T18:00:00Z"`
	Note      string    `json:"note" example:"Second edition"`
}

func (e *Event) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Location = strings.TrimSpace(e.Location)
	e.Note = strings.TrimSpace(e.Note)
	e.StartDate = e.StartDate.In(time.UTC)
	e.EndDate = e.EndDate.In(time.UTC)

	return nil
}

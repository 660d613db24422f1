package agenda_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
)

var opening = time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)

func (suite *TestSuiteStandard) TestCreateSession() {
	event := suite.createTestEvent()
	speaker := suite.createTestSpeaker(event.ID)
	seats := 120

	r := suite.gateway.CreateSession(context.Background(), agenda.SessionInput{
		EventID:      event.ID,
		Title:        "  Opening keynote ",
		SessionType:  models.SessionKeynote,
		StartTime:    opening,
		EndTime:      opening.Add(45 * time.Minute),
		Room:         "Sala Verdi",
		SpeakerID:    &speaker.ID,
		MaxAttendees: &seats,
	})
	suite.Require().True(r.Success, r.Message)

	session, err := suite.gateway.GetSession(context.Background(), r.Data.(models.AgendaSession).ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Opening keynote", session.Title)
	suite.Assert().Equal(models.SessionScheduled, session.Status)
	suite.Assert().Equal(45*time.Minute, session.Duration())
	suite.Assert().Equal(speaker.ID, *session.SpeakerID)
	suite.Assert().Equal(120, *session.MaxAttendees)
	suite.Assert().Equal([]string{revalidate.EventAgenda(event.ID)}, suite.recorder.Paths())
}

func (suite *TestSuiteStandard) TestCreateSessionValidation() {
	event := suite.createTestEvent()
	zero := 0

	tests := []struct {
		name  string
		in    agenda.SessionInput
		field string
		msg   string
	}{
		{
			"Title too short",
			agenda.SessionInput{EventID: event.ID, Title: " Hi ", SessionType: models.SessionTalk, StartTime: opening, EndTime: opening.Add(time.Hour)},
			"title",
			"title must be at least 3 characters long",
		},
		{
			"End before start",
			agenda.SessionInput{EventID: event.ID, Title: "Panel", SessionType: models.SessionPanel, StartTime: opening, EndTime: opening.Add(-time.Hour)},
			"endTime",
			"endTime must be after startTime",
		},
		{
			"End equals start",
			agenda.SessionInput{EventID: event.ID, Title: "Panel", SessionType: models.SessionPanel, StartTime: opening, EndTime: opening},
			"endTime",
			"endTime must be after startTime",
		},
		{
			"Unknown type",
			agenda.SessionInput{EventID: event.ID, Title: "Dinner", SessionType: "dinner", StartTime: opening, EndTime: opening.Add(time.Hour)},
			"sessionType",
			"sessionType must be one of: keynote talk workshop panel break networking other",
		},
		{
			"No seats",
			agenda.SessionInput{EventID: event.ID, Title: "Workshop", SessionType: models.SessionWorkshop, StartTime: opening, EndTime: opening.Add(time.Hour), MaxAttendees: &zero},
			"maxAttendees",
			"maxAttendees must be greater than 0",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.gateway.CreateSession(context.Background(), tt.in)
			suite.Assert().False(r.Success)
			suite.Assert().ErrorIs(r.Err(), action.ErrValidation)
			suite.Assert().Equal([]string{tt.msg}, r.Errors[tt.field])
		})
	}

	sessions, err := suite.gateway.ListSessions(context.Background(), event.ID)
	suite.Require().Nil(err)
	suite.Assert().Empty(sessions)
	suite.Assert().Empty(suite.recorder.Paths())
}

func (suite *TestSuiteStandard) TestCreateSessionReferences() {
	event := suite.createTestEvent()
	other := suite.createTestEvent()
	foreign := suite.createTestSpeaker(other.ID)
	unknown := uuid.New()

	in := agenda.SessionInput{EventID: event.ID, Title: "Opening", SessionType: models.SessionTalk, StartTime: opening, EndTime: opening.Add(time.Hour)}

	in.SpeakerID = &foreign.ID
	r := suite.gateway.CreateSession(context.Background(), in)
	suite.Assert().ErrorIs(r.Err(), models.ErrReferenceInvalid)

	in.SpeakerID = &unknown
	r = suite.gateway.CreateSession(context.Background(), in)
	suite.Assert().ErrorIs(r.Err(), models.ErrResourceNotFound)

	in.SpeakerID = nil
	in.EventID = uuid.New()
	r = suite.gateway.CreateSession(context.Background(), in)
	suite.Assert().Equal("there is no event matching your query", r.Message)
}

func (suite *TestSuiteStandard) TestUpdateSession() {
	event := suite.createTestEvent()
	speaker := suite.createTestSpeaker(event.ID)
	session := suite.createTestSession(event.ID, "Opening", opening)

	room := "Auditorium"
	end := opening.Add(2 * time.Hour)
	r := suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{Room: &room, EndTime: &end, SpeakerID: &speaker.ID})
	suite.Require().True(r.Success, r.Message)

	updated, err := suite.gateway.GetSession(context.Background(), session.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Auditorium", updated.Room)
	suite.Assert().Equal("Opening", updated.Title)
	suite.Assert().Equal(2*time.Hour, updated.Duration())
	suite.Assert().Equal(speaker.ID, *updated.SpeakerID)

	// uuid.Nil removes the speaker
	none := uuid.Nil
	r = suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{SpeakerID: &none})
	suite.Require().True(r.Success, r.Message)
	updated, _ = suite.gateway.GetSession(context.Background(), session.ID)
	suite.Assert().Nil(updated.SpeakerID)

	// 0 removes the attendee limit
	limit := 80
	r = suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{MaxAttendees: &limit})
	suite.Require().True(r.Success, r.Message)
	updated, _ = suite.gateway.GetSession(context.Background(), session.ID)
	suite.Require().NotNil(updated.MaxAttendees)
	suite.Assert().Equal(80, *updated.MaxAttendees)

	limit = 0
	r = suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{MaxAttendees: &limit})
	suite.Require().True(r.Success, r.Message)
	updated, _ = suite.gateway.GetSession(context.Background(), session.ID)
	suite.Assert().Nil(updated.MaxAttendees)

	// The merged time window is validated
	start := opening.Add(3 * time.Hour)
	r = suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{StartTime: &start})
	suite.Assert().False(r.Success)
	suite.Assert().Contains(r.Errors, "endTime")

	r = suite.gateway.UpdateSession(context.Background(), uuid.New(), agenda.SessionPatch{Room: &room})
	suite.Assert().Equal("there is no agenda session matching your query", r.Message)
}

func (suite *TestSuiteStandard) TestDeleteSession() {
	event := suite.createTestEvent()
	session := suite.createTestSession(event.ID, "Opening", opening)

	r := suite.gateway.DeleteSession(context.Background(), session.ID)
	suite.Require().True(r.Success, r.Message)

	_, err := suite.gateway.GetSession(context.Background(), session.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	r = suite.gateway.DeleteSession(context.Background(), session.ID)
	suite.Assert().ErrorIs(r.Err(), models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteSpeakerKeepsSession() {
	event := suite.createTestEvent()
	speaker := suite.createTestSpeaker(event.ID)
	session := suite.createTestSession(event.ID, "Opening", opening)

	r := suite.gateway.UpdateSession(context.Background(), session.ID, agenda.SessionPatch{SpeakerID: &speaker.ID})
	suite.Require().True(r.Success, r.Message)

	suite.Require().Nil(models.DB.Delete(&speaker).Error)

	updated, err := suite.gateway.GetSession(context.Background(), session.ID)
	suite.Require().Nil(err)
	suite.Assert().Nil(updated.SpeakerID)
}

func (suite *TestSuiteStandard) TestListSessionsOrder() {
	event := suite.createTestEvent()
	other := suite.createTestEvent()

	suite.createTestSession(event.ID, "Lunch", opening.Add(3*time.Hour))
	suite.createTestSession(event.ID, "Day two", opening.Add(24*time.Hour))
	suite.createTestSession(event.ID, "Opening", opening)
	suite.createTestSession(other.ID, "Elsewhere", opening)

	sessions, err := suite.gateway.ListSessions(context.Background(), event.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal([]string{"Opening", "Lunch", "Day two"}, sessionTitles(sessions))
}

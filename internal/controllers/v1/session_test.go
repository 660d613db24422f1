package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	v1 "github.com/nuno80/agenzia-eventi/internal/controllers/v1"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/nuno80/agenzia-eventi/test"
)

func (suite *TestSuiteStandard) TestSessionsCreate() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	suite.notifier.Reset()

	session := createTestSession(suite.T(), agenda.SessionInput{EventID: event.ID, Title: "  Opening keynote ", Room: "Sala Verdi"})

	suite.Assert().Equal("Opening keynote", session.Title)
	suite.Assert().Equal([]string{revalidate.EventAgenda(event.ID)}, suite.notifier.Paths())
}

func (suite *TestSuiteStandard) TestSessionsCreateInvalid() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	speaker := createTestSpeaker(suite.T(), v1.SpeakerEditable{})
	zero := 0

	tests := []struct {
		name   string
		input  agenda.SessionInput
		status int
		field  string
	}{
		{"Title too short", agenda.SessionInput{Title: "Hi"}, http.StatusBadRequest, "title"},
		{"Unknown type", agenda.SessionInput{SessionType: "party"}, http.StatusBadRequest, "sessionType"},
		{"End before start", agenda.SessionInput{StartTime: eventStart, EndTime: eventStart.Add(-time.Minute)}, http.StatusBadRequest, "endTime"},
		{"No attendees", agenda.SessionInput{MaxAttendees: &zero}, http.StatusBadRequest, "maxAttendees"},
		{"Speaker of other event", agenda.SessionInput{SpeakerID: &speaker.ID}, http.StatusBadRequest, ""},
		{"Unknown event", agenda.SessionInput{EventID: uuid.New()}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			if tt.input.EventID == uuid.Nil {
				tt.input.EventID = event.ID
			}

			if tt.input.Title == "" {
				tt.input.Title = "Workshop"
			}

			if tt.input.SessionType == "" {
				tt.input.SessionType = models.SessionWorkshop
			}

			if tt.input.StartTime.IsZero() {
				tt.input.StartTime = eventStart
				tt.input.EndTime = eventStart.Add(time.Hour)
			}

			_, res := create[models.AgendaSession](suite.T(), "sessions", tt.input, tt.status)
			suite.Assert().False(res.Success)
			if tt.field != "" {
				suite.Assert().Contains(res.Errors, tt.field)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSessionsList() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	second := createTestSession(suite.T(), agenda.SessionInput{EventID: event.ID, StartTime: eventStart.Add(time.Hour)})
	first := createTestSession(suite.T(), agenda.SessionInput{EventID: event.ID})
	createTestSession(suite.T(), agenda.SessionInput{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/sessions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/sessions?event=%s", event.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ListResponse[models.AgendaSession]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(first.ID, response.Data[0].ID)
	suite.Assert().Equal(second.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestSessionsUpdate() {
	speaker := createTestSpeaker(suite.T(), v1.SpeakerEditable{})
	session := createTestSession(suite.T(), agenda.SessionInput{EventID: speaker.EventID, SpeakerID: &speaker.ID, Room: "Sala Verdi"})
	path := fmt.Sprintf("http://example.com/v1/sessions/%s", session.ID)

	suite.Run("Move", func() {
		start := eventStart.Add(2 * time.Hour)
		r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{
			"startTime": start,
			"endTime":   start.Add(30 * time.Minute),
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var res result[models.AgendaSession]
		test.DecodeResponse(suite.T(), &r, &res)

		suite.Assert().True(start.Equal(res.Data.StartTime))
		suite.Assert().Equal("Sala Verdi", res.Data.Room)
		suite.Assert().Equal(&speaker.ID, res.Data.SpeakerID)
	})

	suite.Run("Remove speaker", func() {
		r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{"speakerId": uuid.Nil})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var res result[models.AgendaSession]
		test.DecodeResponse(suite.T(), &r, &res)
		suite.Assert().Nil(res.Data.SpeakerID)
	})

	suite.Run("Invalid window", func() {
		r := test.Request(suite.T(), http.MethodPatch, path, map[string]any{"endTime": eventStart.Add(-time.Hour)})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestSessionsDelete() {
	session := createTestSession(suite.T(), agenda.SessionInput{})
	path := fmt.Sprintf("http://example.com/v1/sessions/%s", session.ID)

	r := test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

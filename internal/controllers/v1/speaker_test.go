package v1_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/agenda"
	v1 "github.com/nuno80/agenzia-eventi/internal/controllers/v1"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/nuno80/agenzia-eventi/test"
)

func (suite *TestSuiteStandard) TestSpeakersList() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	createTestSpeaker(suite.T(), v1.SpeakerEditable{EventID: event.ID, LastName: "Verdi"})
	createTestSpeaker(suite.T(), v1.SpeakerEditable{EventID: event.ID, LastName: "Bianchi"})
	createTestSpeaker(suite.T(), v1.SpeakerEditable{})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Event", fmt.Sprintf("?event=%s", event.ID), 2},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/speakers"+tt.query, "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response v1.ListResponse[models.Speaker]
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().Len(response.Data, tt.len)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/speakers?event=nope", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSpeakersCreateUnknownEvent() {
	createTestSpeaker(suite.T(), v1.SpeakerEditable{EventID: uuid.New()}, http.StatusBadRequest)
}

// TestSpeakersUpdate verifies that the event of a speaker cannot be changed.
func (suite *TestSuiteStandard) TestSpeakersUpdate() {
	speaker := createTestSpeaker(suite.T(), v1.SpeakerEditable{})
	other := createTestEvent(suite.T(), v1.EventEditable{})
	suite.notifier.Reset()

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/speakers/%s", speaker.ID), map[string]any{
		"eventId": other.ID,
		"company": "Politecnico di Torino",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res result[models.Speaker]
	test.DecodeResponse(suite.T(), &r, &res)

	suite.Assert().Equal(speaker.EventID, res.Data.EventID)
	suite.Assert().Equal("Politecnico di Torino", res.Data.Company)
	suite.Assert().Equal([]string{revalidate.EventAgenda(speaker.EventID)}, suite.notifier.Paths())
}

// TestSpeakersDelete verifies that sessions of a deleted speaker are kept without speaker.
func (suite *TestSuiteStandard) TestSpeakersDelete() {
	speaker := createTestSpeaker(suite.T(), v1.SpeakerEditable{})
	session := createTestSession(suite.T(), agenda.SessionInput{EventID: speaker.EventID, SpeakerID: &speaker.ID})
	suite.Require().NotNil(session.SpeakerID)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/speakers/%s", speaker.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/sessions/%s", session.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ObjectResponse[models.AgendaSession]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data.SpeakerID)
}

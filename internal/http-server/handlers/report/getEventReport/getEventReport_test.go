package getEventReport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventReport/internal/analytics"
	"eventReport/internal/http-server/handlers/report/getEventReport/mocks"
	"eventReport/internal/lib/logger/handlers/slogdiscard"
	"eventReport/internal/models"
	"eventReport/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testReport() *models.Report {
	venue := "Beach Club"
	vip, ga := "VIP", "GA"
	return &models.Report{
		GeneratedAt: time.Date(2025, 7, 4, 12, 30, 0, 0, time.UTC),
		ReportType:  models.ReportTypeSingleEvent,
		EventDetails: &models.EventDetails{
			ID:        42,
			Name:      "Aloha",
			VenueName: &venue,
		},
		TicketSummary: &models.TicketSummary{
			TicketsAvailable: 100,
			TicketsSold:      5,
			TotalRevenue:     190,
			TotalCheckIns:    2,
		},
		TicketSalesByType: []models.TicketTypeSales{
			{TicketType: &vip, SoldCount: 3, Revenue: 150},
			{TicketType: &ga, SoldCount: 2, Revenue: 40},
		},
		AttendeeDemographics: []models.GenderBreakdown{
			{Gender: "female", UniqueTicketBuyers: 3},
		},
		InEventEngagement: &models.EngagementStats{
			TotalSongRequests:  7,
			TotalTipsFromEvent: 12.5,
		},
	}
}

func TestGetEventReportHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		path           string
		mockSetup      func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name: "Success",
			path: "/event_report/Aloha",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Aloha").Return(int64(42), nil).Once()
				generator.On("Generate", mock.Anything, int64(42)).Return(testReport(), nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var raw map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(body, &raw))
				assert.JSONEq(t, `"success"`, string(raw["status"]))
				assert.NotContains(t, raw, "message")

				var data map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(raw["data"], &data))
				for _, key := range []string{
					"generated_at",
					"report_type",
					"event_details",
					"ticket_summary",
					"ticket_sales_by_type",
					"attendee_demographics",
					"in_event_engagement",
				} {
					assert.Contains(t, data, key)
				}

				assert.JSONEq(t, `"2025-07-04T12:30:00Z"`, string(data["generated_at"]))
				assert.JSONEq(t, `"Single-Event Analytics"`, string(data["report_type"]))
				assert.JSONEq(t, `{
					"tickets_available": 100,
					"tickets_sold": 5,
					"total_revenue": 190,
					"total_check_ins": 2
				}`, string(data["ticket_summary"]))
				assert.JSONEq(t, `[
					{"ticketType": "VIP", "sold_count": 3, "revenue": 150},
					{"ticketType": "GA", "sold_count": 2, "revenue": 40}
				]`, string(data["ticket_sales_by_type"]))
				assert.JSONEq(t, `{
					"id": 42,
					"eventName": "Aloha",
					"startTime": null,
					"eventStatus": null,
					"venueName": "Beach Club",
					"performer_name": null
				}`, string(data["event_details"]))
			},
		},
		{
			name: "Event name not found",
			path: "/event_report/NonExistentEvent",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "NonExistentEvent").
					Return(int64(0), fmt.Errorf("storage.postgres.EventIDByName: %w", storage.ErrEventNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","message":"Event 'NonExistentEvent' not found."}`,
		},
		{
			name: "Lookup store failure is reported as not found",
			path: "/event_report/Aloha",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Aloha").
					Return(int64(0), errors.New("dial tcp: connection refused")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","message":"Event 'Aloha' not found."}`,
		},
		{
			name: "Event details vanished after lookup",
			path: "/event_report/Aloha",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Aloha").Return(int64(42), nil).Once()
				generator.On("Generate", mock.Anything, int64(42)).Return(nil, &analytics.Error{
					EventID: 42,
					Message: "Event with ID 42 not found.",
					Err:     storage.ErrEventNotFound,
				}).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","message":"Event with ID 42 not found."}`,
		},
		{
			name: "Report generation failure hides driver error",
			path: "/event_report/Aloha",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Aloha").Return(int64(42), nil).Once()
				generator.On("Generate", mock.Anything, int64(42)).Return(nil, &analytics.Error{
					EventID: 42,
					Message: "failed to generate event report",
					Err:     errors.New("pq: relation \"tickets\" does not exist"),
				}).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","message":"failed to generate event report"}`,
		},
		{
			name: "Unstructured generator error",
			path: "/event_report/Aloha",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Aloha").Return(int64(42), nil).Once()
				generator.On("Generate", mock.Anything, int64(42)).Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","message":"failed to generate event report"}`,
		},
		{
			name: "Name with spaces",
			path: "/event_report/Summer%20Fest",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "Summer Fest").
					Return(int64(0), storage.ErrEventNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","message":"Event 'Summer Fest' not found."}`,
		},
		{
			name: "Name with encoded slash",
			path: "/event_report/AC%2FDC",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "AC/DC").Return(int64(8), nil).Once()
				generator.On("Generate", mock.Anything, int64(8)).Return(testReport(), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Name with literal percent escape is decoded once",
			path: "/event_report/a%2541",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "a%41").
					Return(int64(0), storage.ErrEventNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","message":"Event 'a%41' not found."}`,
		},
		{
			name: "Name with percent sign",
			path: "/event_report/100%25Fun",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "100%Fun").Return(int64(11), nil).Once()
				generator.On("Generate", mock.Anything, int64(11)).Return(testReport(), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Name with percent sign and encoded slash",
			path: "/event_report/50%25%2F50",
			mockSetup: func(resolver *mocks.EventResolver, generator *mocks.ReportGenerator) {
				resolver.On("EventIDByName", mock.Anything, "50%/50").
					Return(int64(0), storage.ErrEventNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","message":"Event '50%/50' not found."}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := mocks.NewEventResolver(t)
			generator := mocks.NewReportGenerator(t)
			tc.mockSetup(resolver, generator)

			router := chi.NewRouter()
			router.Get("/event_report/{event_name}", New(logger, resolver, generator))

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.Bytes())
			}
		})
	}
}

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	resolver := mocks.NewEventResolver(t)
	generator := mocks.NewReportGenerator(t)
	handler := New(logger, resolver, generator)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"error","message":"event name is required"}`, rr.Body.String())
}

func TestResponseOK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	responseOK(rr, req, testReport())

	assert.Equal(t, http.StatusOK, rr.Code)

	var actual ReportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &actual))

	assert.Equal(t, "success", actual.Status)
	assert.Empty(t, actual.Message)
	require.NotNil(t, actual.Data)
	assert.Equal(t, "Aloha", actual.Data.EventDetails.Name)
	assert.Equal(t, int64(5), actual.Data.TicketSummary.TicketsSold)
}

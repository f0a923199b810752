package chatbotHandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HotelGolang/internal/api/chatbot"
	"HotelGolang/internal/entity"
	"HotelGolang/internal/middleware"
	"HotelGolang/pkg/conversation"
	jwtPkg "HotelGolang/pkg/jwt"
	"HotelGolang/pkg/nlp"
	"HotelGolang/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeChatbotService struct {
	lastQuery      chatbot.QueryRequest
	lastSuggestion string
	page, limit    int
	feedbackErr    error
}

func (f *fakeChatbotService) HandleQuery(_ context.Context, req chatbot.QueryRequest) chatbot.ChatbotResponse {
	f.lastQuery = req
	return chatbot.ChatbotResponse{
		Response:        "ok",
		ResponseType:    chatbot.ResponseTypeInformation,
		ConfidenceLevel: 0.5,
		Suggestions:     []string{},
		SessionID:       req.SessionID,
		InteractionID:   "01INTERACTION",
	}
}

func (f *fakeChatbotService) GetSession(_ context.Context, sessionID string) (conversation.ConversationContext, error) {
	if sessionID != "known" {
		return conversation.ConversationContext{}, chatbot.ErrSessionNotFound
	}
	return conversation.ConversationContext{SessionID: sessionID, Turns: 3, LastIntent: nlp.IntentTrendAnalysis}, nil
}

func (f *fakeChatbotService) GetSuggestions(_ context.Context, sessionID string) chatbot.SuggestionsResponse {
	f.lastSuggestion = sessionID
	return chatbot.SuggestionsResponse{Suggestions: []string{"a", "b", "c"}}
}

func (f *fakeChatbotService) SubmitFeedback(_ context.Context, req chatbot.FeedbackRequest) (*chatbot.FeedbackResponse, error) {
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return &chatbot.FeedbackResponse{ID: "01FEEDBACK", InteractionID: req.InteractionID, Rating: req.Rating}, nil
}

func (f *fakeChatbotService) ListFeedback(_ context.Context, page, limit int) (*chatbot.FeedbackListResponse, error) {
	f.page, f.limit = page, limit
	return &chatbot.FeedbackListResponse{Feedback: []chatbot.FeedbackResponse{}}, nil
}

func (f *fakeChatbotService) Analyze(_ context.Context, req chatbot.AnalyzeRequest) chatbot.AnalyzeResponse {
	return chatbot.AnalyzeResponse{CleanText: strings.ToLower(req.Text)}
}

func newTestApp(t *testing.T) (*fiber.App, *fakeChatbotService) {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	u := utils.New()
	mw := middleware.New(log, middleware.WithUtils(u))
	svc := &fakeChatbotService{}

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	New(log, validator.New(), mw, svc, u).Start(app.Group("/api/v1"))

	return app, svc
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func operatorToken(t *testing.T, role string) string {
	t.Helper()
	t.Setenv(middleware.AccessTokenSecret, "test-secret")

	token, _, err := jwtPkg.SignOperator(entity.OperatorLoginData{ID: "op-1", Email: "ops@hotel.test", Role: role}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandleQuery_GeneratesSessionID(t *testing.T) {
	app, svc := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/query", `{"query":"hello"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatbot.ChatbotResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, svc.lastQuery.SessionID)
	assert.Equal(t, svc.lastQuery.SessionID, body.SessionID)
	assert.Equal(t, "01INTERACTION", body.InteractionID)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDKey))
}

func TestHandleQuery_KeepsSessionAndContext(t *testing.T) {
	app, svc := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/query",
		`{"query":"price next week","sessionId":"abc","customerId":"c-9","context":{"roomType":"Suite"}}`,
		map[string]string{middleware.RequestIDKey: "req-42"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "abc", svc.lastQuery.SessionID)
	assert.Equal(t, "c-9", svc.lastQuery.CustomerID)
	assert.Equal(t, "Suite", svc.lastQuery.Context["roomType"])
	assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDKey))
}

func TestHandleQuery_BadBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/query", `{"query":`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/chatbot/query",
		`{"query":"`+strings.Repeat("a", 1001)+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitFeedback(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/feedback", `{"interactionId":"i-1","rating":5}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body chatbot.FeedbackResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "i-1", body.InteractionID)
	assert.Equal(t, 5, body.Rating)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/chatbot/feedback", `{"interactionId":"i-1","rating":6}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitFeedback_ServiceError(t *testing.T) {
	app, svc := newTestApp(t)
	svc.feedbackErr = chatbot.ErrCreateFeedback

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/feedback", `{"interactionId":"i-1","rating":3}`, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/sessions/known", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body conversation.ConversationContext
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 3, body.Turns)
	assert.Equal(t, nlp.IntentTrendAnalysis, body.LastIntent)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/chatbot/sessions/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSuggestions(t *testing.T) {
	app, svc := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/suggestions?sessionId=s-7", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatbot.SuggestionsResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.Suggestions, 3)
	assert.Equal(t, "s-7", svc.lastSuggestion)
}

func TestAdminRoutes_RequireOperatorToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/admin/nlp/analyze", `{"text":"Hello"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/chatbot/admin/nlp/analyze", `{"text":"Hello"}`,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/chatbot/admin/nlp/analyze", `{"text":"Hello"}`,
		map[string]string{"Authorization": operatorToken(t, "guest")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminAnalyze(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/v1/chatbot/admin/nlp/analyze", `{"text":"Hello"}`,
		map[string]string{"Authorization": operatorToken(t, entity.OperatorRoleAnalyst)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatbot.AnalyzeResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "hello", body.CleanText)
}

func TestAdminListFeedback_Paging(t *testing.T) {
	app, svc := newTestApp(t)
	auth := map[string]string{"Authorization": operatorToken(t, entity.OperatorRoleAdmin)}

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/chatbot/admin/feedback?page=3&limit=50", "", auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, svc.page)
	assert.Equal(t, 50, svc.limit)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/chatbot/admin/feedback?page=0&limit=500", "", auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, defaultFeedbackPage, svc.page)
	assert.Equal(t, defaultFeedbackLimit, svc.limit)
}

func TestAdminHandlers_WithoutOperatorLocals(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	u := utils.New()
	h := New(log, validator.New(), middleware.New(log, middleware.WithUtils(u)), &fakeChatbotService{}, u)

	app := fiber.New()
	app.Post("/analyze", h.Analyze)
	app.Get("/feedback", h.ListFeedback)

	resp, _ := doRequest(t, app, http.MethodPost, "/analyze", `{"text":"Hello"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/feedback", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

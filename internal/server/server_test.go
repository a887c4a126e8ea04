package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
)

type stubConversation struct {
	result        *model.TurnResult
	err           error
	lastSessionID string
	lastText      string
}

func (s *stubConversation) ProcessMessage(_ context.Context, sessionID, userText string) (*model.TurnResult, error) {
	s.lastSessionID = sessionID
	s.lastText = userText
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubStore struct {
	cleared []string
	err     error
}

func (s *stubStore) ClearSession(_ context.Context, sessionID string) error {
	if s.err != nil {
		return s.err
	}
	s.cleared = append(s.cleared, sessionID)
	return nil
}

func newTestServer(conv *stubConversation, store *stubStore) *httptest.Server {
	return httptest.NewServer(New(conv, store).Handler())
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(&stubConversation{}, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body createSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.SessionID)
}

func TestPostMessage(t *testing.T) {
	conv := &stubConversation{result: &model.TurnResult{
		Response: "Here are your flights.",
		Trace: []*schema.Message{
			schema.UserMessage("find flights"),
			schema.AssistantMessage("", []schema.ToolCall{{ID: "call_1"}}),
			schema.ToolMessage("[]", "call_1", schema.WithToolName("search_flights")),
			schema.AssistantMessage("Here are your flights.", nil),
		},
		CostUSD: 0.0021,
	}}
	srv := newTestServer(conv, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/sessions/sess-1/messages", "application/json",
		strings.NewReader(`{"message": "find flights"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body postMessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Here are your flights.", body.Response)
	assert.InDelta(t, 0.0021, body.CostUSD, 1e-9)
	require.Len(t, body.Trace, 4)
	assert.Equal(t, "user", body.Trace[0].Role)
	assert.Equal(t, 1, body.Trace[1].ToolCalls)

	assert.Equal(t, "sess-1", conv.lastSessionID)
	assert.Equal(t, "find flights", conv.lastText)
}

func TestPostMessageValidation(t *testing.T) {
	srv := newTestServer(&stubConversation{}, &stubStore{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/sessions/sess-1/messages", "application/json",
		strings.NewReader(`{"message": "   "}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/v1/sessions/sess-1/messages", "application/json",
		strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostMessageErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errx.New(errx.StoreFailed, "redis down"), http.StatusBadGateway},
		{errx.New(errx.ModelTimeout, "deadline"), http.StatusGatewayTimeout},
		{errx.New(errx.InconsistentState, "bad session"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		srv := newTestServer(&stubConversation{err: c.err}, &stubStore{})
		resp, err := http.Post(srv.URL+"/v1/sessions/sess-1/messages", "application/json",
			strings.NewReader(`{"message": "hi"}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, c.status, resp.StatusCode, "kind %s", errx.KindOf(c.err))
		srv.Close()
	}
}

func TestDeleteSession(t *testing.T) {
	store := &stubStore{}
	srv := newTestServer(&stubConversation{}, store)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/v1/sessions/sess-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"sess-1"}, store.cleared)
}

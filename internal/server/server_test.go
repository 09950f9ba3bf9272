package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/agent"
	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/conversation"
	"github.com/conversational-intent-router/internal/jsonx"
	"github.com/conversational-intent-router/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	a, err := agent.New(agent.DefaultConfig(), session.NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Stop)

	r := mux.NewRouter()
	NewServer(a, zap.NewNop()).SetupRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func createConversation(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/conversations", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created ConversationResponse
	require.NoError(t, jsonx.Decode(resp.Body, &created))
	require.NotEmpty(t, created.ConversationID)
	return created.ConversationID
}

func postMessage(t *testing.T, srv *httptest.Server, id, message string) (*http.Response, TurnResponse) {
	t.Helper()
	body, err := jsonx.Marshal(MessageRequest{Message: message})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/conversations/"+id+"/messages", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var turn TurnResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, jsonx.Decode(resp.Body, &turn))
	}
	return resp, turn
}

func TestCreateConversationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/conversations", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created ConversationResponse
	require.NoError(t, jsonx.Decode(resp.Body, &created))
	assert.NotEmpty(t, created.ConversationID)
	require.NotNil(t, created.State)
	assert.Equal(t, conversation.PhaseInitial, created.State.Phase)
}

func TestMessageEndpointResolves(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)

	resp, turn := postMessage(t, srv, id, "check my account balance")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, turn.ConversationID)
	assert.Equal(t, conversation.PhaseResolved, turn.Phase)
	assert.Equal(t, conversation.StatusResolved, turn.Result.Status)
	assert.Equal(t, "check_balance", turn.Result.RouteTo)
}

func TestMessageEndpointClarification(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)

	resp, turn := postMessage(t, srv, id, "I need money")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, conversation.PhaseAwaitingClarification, turn.Phase)
	assert.Equal(t, conversation.StatusNeedClarification, turn.Result.Status)
	assert.Len(t, turn.Result.Options, 3)
}

func TestMessageEndpointValidation(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)

	resp, err := http.Post(srv.URL+"/api/conversations/"+id+"/messages", "application/json", strings.NewReader(`{"message":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/conversations/"+id+"/messages", "application/json", strings.NewReader(`{not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMessageEndpointUnknownConversation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postMessage(t, srv, "no-such-id", "hello")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetConversationEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)
	postMessage(t, srv, id, "check my account balance")

	resp, err := http.Get(srv.URL + "/api/conversations/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ConversationResponse
	require.NoError(t, jsonx.Decode(resp.Body, &got))
	assert.Equal(t, conversation.PhaseResolved, got.State.Phase)
	assert.Equal(t, "check_balance", got.State.SelectedIntentID)
}

func TestResetConversationEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)
	postMessage(t, srv, id, "check my account balance")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/conversations/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/conversations/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got ConversationResponse
	require.NoError(t, jsonx.Decode(resp.Body, &got))
	assert.Equal(t, conversation.PhaseInitial, got.State.Phase)
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, mode := range []string{"", "json", "toon"} {
		resp, err := http.Get(srv.URL + "/api/catalog?mode=" + mode)
		require.NoError(t, err)

		var cat catalog.Catalog
		require.NoError(t, jsonx.Decode(resp.Body, &cat))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, cat, 5)
	}

	resp, err := http.Get(srv.URL + "/api/catalog?mode=yaml")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := createConversation(t, srv)
	postMessage(t, srv, id, "check my account balance")

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats agent.Stats
	require.NoError(t, jsonx.Decode(resp.Body, &stats))
	assert.Equal(t, int64(1), stats.TotalTurns)
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, int64(1), stats.ConversationCount)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

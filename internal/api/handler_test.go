package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasar-labs/xiara/server/internal/agent/ambiguity"
	"github.com/pasar-labs/xiara/server/internal/agent/model"
	"github.com/pasar-labs/xiara/server/internal/agent/negotiation"
	"github.com/pasar-labs/xiara/server/internal/agent/orchestrator"
	"github.com/pasar-labs/xiara/server/internal/agent/profile"
	"github.com/pasar-labs/xiara/server/internal/agent/repo"
)

type staticGenerator struct{}

func (staticGenerator) Generate(_ context.Context, _ string, subQuery string) (*model.Answer, error) {
	return &model.Answer{Text: "answer for: " + subQuery}, nil
}

func newTestServer() *httptest.Server {
	agent := orchestrator.New(orchestrator.Config{
		Sessions:   repo.NewMemorySessionRepository(),
		History:    repo.NewMemoryHistoryRepository(),
		Cache:      repo.NewMemoryResponseCache(10 * time.Minute),
		Generator:  staticGenerator{},
		Classifier: ambiguity.NewClassifier(nil),
		Negotiator: negotiation.NewNegotiator(repo.NewMemoryNegotiationRepository()),
		Profiles:   profile.NewManager(repo.NewMemoryProfileRepository()),
	})

	mux := http.NewServeMux()
	NewHandler(agent).Register(mux)
	return httptest.NewServer(mux)
}

func postChat(t *testing.T, srv *httptest.Server, payload any) (*http.Response, ChatResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var chatResp ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chatResp))
	return resp, chatResp
}

func TestPing(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestChat_AnswersClearQuery(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, chatResp := postChat(t, srv, ChatRequest{UserID: "u1", Prompt: "I am looking for waterproof hiking boots"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, chatResp.Response, "answer for:")
	assert.False(t, chatResp.NeedsClarification)
	assert.False(t, chatResp.IsNegotiating)
}

func TestChat_AsksForClarification(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	_, chatResp := postChat(t, srv, ChatRequest{UserID: "u1", Prompt: "I want something cheap"})
	assert.True(t, chatResp.NeedsClarification)
	assert.NotEmpty(t, chatResp.Response)
}

func TestChat_NegotiatesWithProductContext(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	_, chatResp := postChat(t, srv, ChatRequest{
		UserID:  "u1",
		Prompt:  "Can I get a discount?",
		Context: &model.ProductContext{ProductID: "p-1", Price: 100.0, Name: "Boots"},
	})
	assert.True(t, chatResp.IsNegotiating)
	assert.Contains(t, chatResp.Response, "$95.00")
	require.NotNil(t, chatResp.Context)
	assert.Equal(t, "p-1", chatResp.Context.ProductID)
}

func TestChat_RejectsInvalidRequests(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, _ := postChat(t, srv, ChatRequest{UserID: "", Prompt: "hello"})
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestReset(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/reset/u1", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "reset", body["status"])
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridreg/trueup-cli/internal/assessment"
	"github.com/gridreg/trueup-cli/internal/config"
	"github.com/gridreg/trueup-cli/internal/fy"
	"github.com/gridreg/trueup-cli/internal/unit"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:              8080,
		SessionTTLMinutes: 60,
		RateRPS:           1000,
		RateBurst:         1000,
		CORSOrigins:       []string{"*"},
	}
}

func newTestAPI() (*api, http.Handler) {
	a := newAPI(fy.Defaults())
	return a, a.router(testServerConfig())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createTestSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestHealth(t *testing.T) {
	_, h := newTestAPI()
	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2023-24")
}

func TestSessionLifecycle(t *testing.T) {
	_, h := newTestAPI()
	id := createTestSession(t, h)

	rec := do(t, h, http.MethodGet, "/sessions/"+id+"/units/G", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/sessions/"+id+"/units/G", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluateSessionFeedsTransfers(t *testing.T) {
	_, h := newTestAPI()
	id := createTestSession(t, h)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/evaluate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []unit.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)
	assert.Equal(t, "G", summaries[0].Code)
	assert.Equal(t, "D", summaries[2].Code)
	assert.Positive(t, summaries[2].NetRequirement)

	// Distribution's transfer item carries generation's live result.
	rec = do(t, h, http.MethodGet, "/sessions/"+id+"/units/D/items/sbu_g_transfer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var records []assessment.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "SBU-G-TRANSFER", records[0].HeuristicID)
	require.NotNil(t, records[0].RecommendedAmount)
	assert.InDelta(t, summaries[0].NetRequirement, *records[0].RecommendedAmount, 1e-9)
}

func TestEvaluateSingleUnit(t *testing.T) {
	_, h := newTestAPI()
	id := createTestSession(t, h)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/units/t/evaluate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var s unit.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "T", s.Code)
	assert.False(t, s.Ready)
	assert.Positive(t, s.NetRequirement)

	rec = do(t, h, http.MethodPost, "/sessions/"+id+"/units/X/evaluate", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewWorkflow(t *testing.T) {
	_, h := newTestAPI()
	id := createTestSession(t, h)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/units/G/evaluate", "").Code)

	base := "/sessions/" + id + "/units/G/items/roe/records/ROE-01/review"

	// Accept without a reviewer is rejected without mutating the record.
	rec := do(t, h, http.MethodPost, base, `{"action":"accept"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, base, `{"action":"accept","reviewer":"asha"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Accepted"`)

	// The pending list for the unit no longer carries ROE-01.
	rec = do(t, h, http.MethodGet, "/sessions/"+id+"/units/G/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ROE-01")

	rec = do(t, h, http.MethodPost, base, `{"action":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, base, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverrideAmountViaAPI(t *testing.T) {
	_, h := newTestAPI()
	id := createTestSession(t, h)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/units/D/evaluate", "").Code)

	base := "/sessions/" + id + "/units/D/items/pay_revision/records/EMP-PAYREV-01/review"
	rec := do(t, h, http.MethodPost, base,
		`{"action":"override-amount","reviewer":"asha","justification":"state approval produced on record","amount":3152.28}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Overridden"`)
}

func TestSessionsAreIsolatedOverAPI(t *testing.T) {
	_, h := newTestAPI()
	first := createTestSession(t, h)
	second := createTestSession(t, h)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+first+"/units/G/evaluate", "").Code)

	rec := do(t, h, http.MethodGet, "/sessions/"+second+"/units/G", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var s unit.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Zero(t, s.NetRequirement)
}

func TestRateLimiting(t *testing.T) {
	a := newAPI(fy.Defaults())
	sc := testServerConfig()
	sc.RateRPS = 1
	sc.RateBurst = 1
	h := a.router(sc)

	first := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, first.Code)
	second := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

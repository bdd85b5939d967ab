package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-tourneyform/pkg/model"
	"github.com/goliatone/go-tourneyform/pkg/submit"
)

func newTestEcho(t *testing.T) (*echo.Echo, *Server) {
	t.Helper()
	e := BuildEcho(slog.New(slog.NewTextHandler(io.Discard, nil)))

	server := NewServer(NewStore(), prometheus.NewRegistry(), nil)
	server.Register(e, "/tournament")
	return e, server
}

func post(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tournament", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var submitEnvelopeTestTable = map[string]struct {
	body                 string
	expectedStatus       int
	expectedBodyFragment string
}{
	"Valid": {
		body:                 `{"collection":"winner","data":[{"name":"Alpha","teamname":"Bravo","kill":"12","imgSrc":"x.png"}]}`,
		expectedStatus:       http.StatusOK,
		expectedBodyFragment: `"inserted":1`,
	},
	"MissingCollection": {
		body:                 `{"collection":"","data":[{"name":"Alpha"}]}`,
		expectedStatus:       http.StatusBadRequest,
		expectedBodyFragment: `"collection"`,
	},
	"EmptyData": {
		body:                 `{"collection":"winner","data":[]}`,
		expectedStatus:       http.StatusBadRequest,
		expectedBodyFragment: `"data"`,
	},
	"BatchData": {
		body:                 `{"collection":"winner","data":[{"name":"a"},{"name":"b"}]}`,
		expectedStatus:       http.StatusBadRequest,
		expectedBodyFragment: `"validation error"`,
	},
	"NestedValue": {
		body:                 `{"collection":"winner","data":[{"name":{"first":"a"}}]}`,
		expectedStatus:       http.StatusBadRequest,
		expectedBodyFragment: `"failed parsing request data"`,
	},
	"NotJSON": {
		body:                 `collection=winner`,
		expectedStatus:       http.StatusBadRequest,
		expectedBodyFragment: `"error"`,
	},
}

func TestSubmitEnvelope(t *testing.T) {
	for name, tt := range submitEnvelopeTestTable {
		t.Run(name, func(t *testing.T) {
			e, _ := newTestEcho(t)

			rec := post(e, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.expectedBodyFragment)
		})
	}
}

func TestSubmitEnvelope_Duplicate(t *testing.T) {
	e, server := newTestEcho(t)
	body := `{"collection":"upcomingscrim","data":[{"name":"Scrim","time":"6:45 PM"}]}`

	first := post(e, body)
	require.Equal(t, http.StatusOK, first.Code)

	var inserted InsertResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &inserted))
	assert.Equal(t, "ok", inserted.Message)
	assert.NotEmpty(t, inserted.ID)

	second := post(e, body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"error":"duplicate id"}`, second.Body.String())

	// Same first value in another collection is not a duplicate.
	other := post(e, `{"collection":"winner","data":[{"name":"Scrim"}]}`)
	assert.Equal(t, http.StatusOK, other.Code)

	assert.Equal(t, 1, server.store.Len("upcomingscrim"))
	assert.InDelta(t, 1, testutil.ToFloat64(server.metrics.submissionsTotal.WithLabelValues("upcomingscrim", outcomeDuplicate)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(server.metrics.recordsStored.WithLabelValues("winner")), 0)
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)
	post(e, `{"collection":"rank","data":[{"rank":"1"}]}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mockapi_submissions_total{collection="rank",outcome="accepted"} 1`)
}

func TestHealth(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStore_EmptyFirstValueNeverDuplicates(t *testing.T) {
	store := NewStore()
	_, ok := store.Insert("rank", model.Record{})
	assert.True(t, ok)
	_, ok = store.Insert("rank", model.Record{})
	assert.True(t, ok)
	assert.Equal(t, 2, store.Len("rank"))
}

func TestHTTPClientRoundTrip(t *testing.T) {
	e, _ := newTestEcho(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	client, err := submit.NewHTTPClient(srv.URL)
	require.NoError(t, err)

	record := model.NewRecord(model.Entry{Name: "matchId", Value: "m-1"}, model.Entry{Name: "winner", Value: "Bravo"})
	require.NoError(t, client.Send(context.Background(), model.NewEnvelope("passedmatch", record)))

	err = client.Send(context.Background(), model.NewEnvelope("passedmatch", record))
	var rejection *submit.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusConflict, rejection.StatusCode)
	assert.Equal(t, "duplicate id", rejection.Message)
}

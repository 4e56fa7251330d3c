package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanzlah10/IMDB-Review-RNN/config"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/models"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/sentiment"
)

// mockAnalyzer lets handler tests control the pipeline outcome.
type mockAnalyzer struct {
	prediction models.Prediction
	err        error
}

func (m *mockAnalyzer) Analyze(text string) (models.Prediction, error) {
	if m.err != nil {
		return models.Prediction{}, m.err
	}
	return m.prediction, nil
}

func newTestServer(t *testing.T, analyzer reviewAnalyzer) *Server {
	t.Helper()
	tmpl := template.Must(template.New("index.html").Parse(
		`<html>{{range .Examples}}<div class="example">{{.Text}}</div>{{end}}</html>`))

	return &Server{
		echo:          echo.New(),
		config:        config.Config{Port: "8080"},
		analyzer:      analyzer,
		indexTemplate: tmpl,
		startTime:     time.Now(),
	}
}

func postAnalyze(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleAnalyze(c))
	return rec
}

func TestHandleAnalyze_Success(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{prediction: models.Prediction{
		Label:       models.LabelPositive,
		Probability: 0.91,
		Confidence:  91,
		Stats:       models.ReviewStats{WordCount: 4, TokenCount: 4},
	}})

	rec := postAnalyze(t, srv, `{"text":"this movie was wonderful"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.LabelPositive, got.Label)
	assert.InDelta(t, 91.0, got.Confidence, 0.001)
	assert.Equal(t, 4, got.Stats.WordCount)
}

func TestHandleAnalyze_EmptyInput(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{err: sentiment.ErrEmptyReview})

	rec := postAnalyze(t, srv, `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Error, "enter a review")
}

func TestHandleAnalyze_PipelineError(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{err: errors.New("inference exploded")})

	rec := postAnalyze(t, srv, `{"text":"some review"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var got models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotContains(t, got.Error, "exploded", "internal detail must not leak")
}

func TestHandleAnalyze_MalformedBody(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	rec := postAnalyze(t, srv, `{"text": 42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExamples(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/examples", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleExamples(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []sentiment.ExampleReview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "positive", got[0].Label)
	assert.Equal(t, "negative", got[1].Label)
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleIndex(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "example")
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleLiveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleReadiness_NoCache(t *testing.T) {
	srv := newTestServer(t, &mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	require.NoError(t, srv.handleReadiness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

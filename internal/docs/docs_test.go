package docs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	rd, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	rd.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, want := range []string{
		"<code>activity_level</code>",
		"<code>very_active</code> (&times;1.9)",
		"<code>lose</code> (2 g protein per kg)",
		"under 13",
		"age=25&amp;weight=70",
	} {
		assert.Contains(t, body, want)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage()
	assert.Len(t, p.Params, 6)
	assert.Len(t, p.ActivityLevels, 5)
	assert.Len(t, p.Goals, 3)
	assert.Equal(t, 13, p.MinimumAge)
}

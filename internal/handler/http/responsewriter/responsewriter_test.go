package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	wrapped := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.HeaderWritten())
}

func TestWrap_ReusesExistingRecorder(t *testing.T) {
	first := Wrap(httptest.NewRecorder())
	assert.Same(t, first, Wrap(first))
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{name: "ok", code: http.StatusOK},
		{name: "created", code: http.StatusCreated},
		{name: "too many requests", code: http.StatusTooManyRequests},
		{name: "bad gateway", code: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(tt.code)

			assert.Equal(t, tt.code, wrapped.StatusCode())
			assert.Equal(t, tt.code, rec.Code)
			assert.True(t, wrapped.HeaderWritten())
		})
	}
}

func TestResponseWriter_WriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotFound, wrapped.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte("Chargement…"))
	require.NoError(t, err)
	_, err = wrapped.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, len("Chargement…"), n)
	assert.Equal(t, len("Chargement…")+1, wrapped.BytesWritten())
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, "Chargement…!", rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, wrapped.HeaderWritten())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Same(t, rec, Wrap(rec).Unwrap())
}

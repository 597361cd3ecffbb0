package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	data []byte
	err  error
}

func (f fakeSource) FetchTemplate(context.Context) ([]byte, error) { return f.data, f.err }

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		src      TemplateSource
		wantBody string
		wantErr  bool
	}{
		{name: "embedded default", wantBody: "<title>Travel Planner</title>"},
		{name: "remote template", src: fakeSource{data: []byte("<h1>{{\"hello\"}}</h1>")}, wantBody: "<h1>hello</h1>"},
		{name: "source failure", src: fakeSource{err: errors.New("no such bucket")}, wantErr: true},
		{name: "broken template", src: fakeSource{data: []byte("{{ .Nope")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPage(context.Background(), tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

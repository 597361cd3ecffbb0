package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplanner/internal/models"
	"travelplanner/internal/planner"
	srvpkg "travelplanner/internal/server"
	"travelplanner/internal/web"
	"travelplanner/pkg/llm"
	"travelplanner/pkg/location"
	"travelplanner/pkg/weather"
)

const forecastBody = `{"cod":"200","message":0,"cnt":1,"list":[{"dt":1760000000,"main":{"temp":17.3},"weather":[{"description":"clear sky"}]}],"city":{"name":"Paris"}}`

// providers stubs the three upstream APIs on one httptest server.
type providers struct {
	server     *httptest.Server
	mu         sync.Mutex
	lastPrompt string
	planText   string
}

func newProviders(t *testing.T) *providers {
	p := &providers{planText: "Day 1: Louvre and Orsay.\nDay 2: Montmartre."}
	mux := http.NewServeMux()
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "Paris" {
			_, _ = w.Write([]byte(`[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, France"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []llm.Message `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		p.mu.Lock()
		if len(body.Messages) > 0 {
			p.lastPrompt = body.Messages[len(body.Messages)-1].Content
		}
		p.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": p.planText}}},
		})
	})
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func newPlanner(weatherURL, providersURL string) *planner.Service {
	return planner.NewService(
		weather.NewClient("w-key", weather.WithBaseURL(weatherURL+"/data/2.5/forecast")),
		location.NewClient(providersURL, ""),
		planner.NewGenerator(llm.NewClient("sk-key", providersURL+"/v1"), "gpt-3.5-turbo"),
		false,
	)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []models.PlanRequest
	err    error
}

func (c *capturePublisher) Publish(_ context.Context, req models.PlanRequest, _ *models.PlanResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, req)
	return c.err
}

func newTestServer(t *testing.T, svc srvpkg.Planner, opts ...srvpkg.Option) (*srvpkg.Server, *httptest.Server) {
	page, err := web.NewPage(context.Background(), nil)
	require.NoError(t, err)
	srv := srvpkg.NewServer(svc, page, opts...)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postPlan(t *testing.T, url string, body string) (*http.Response, []byte) {
	resp, err := http.Post(url+"/generate_plan", "application/json", bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestGeneratePlan_EndToEnd(t *testing.T) {
	p := newProviders(t)
	_, ts := newTestServer(t, newPlanner(p.server.URL, p.server.URL))

	resp, body := postPlan(t, ts.URL, `{"destination":"Paris","duration":"3","preferences":"museums"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out struct {
		TravelPlan   string          `json:"travel_plan"`
		WeatherInfo  json.RawMessage `json:"weather_info"`
		LocationInfo struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"location_info"`
	}
	require.NoError(t, json.Unmarshal(body, &out))

	assert.Equal(t, p.planText, out.TravelPlan)
	assert.JSONEq(t, forecastBody, string(out.WeatherInfo))
	require.NotNil(t, out.LocationInfo.Latitude)
	require.NotNil(t, out.LocationInfo.Longitude)
	assert.Equal(t, 48.8588897, *out.LocationInfo.Latitude)
	assert.Equal(t, 2.3200410, *out.LocationInfo.Longitude)

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Contains(t, p.lastPrompt, "Paris")
	assert.Contains(t, p.lastPrompt, "3")
	assert.Contains(t, p.lastPrompt, "museums")
}

func TestGeneratePlan_NoGeocodingMatch(t *testing.T) {
	p := newProviders(t)
	_, ts := newTestServer(t, newPlanner(p.server.URL, p.server.URL))

	resp, body := postPlan(t, ts.URL, `{"destination":"Atlantis","duration":2,"preferences":"diving"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	loc, ok := out["location_info"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, loc, "latitude")
	assert.Contains(t, loc, "longitude")
	assert.Nil(t, loc["latitude"])
	assert.Nil(t, loc["longitude"])
}

func TestGeneratePlan_WeatherFailureFailsRequest(t *testing.T) {
	p := newProviders(t)
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	_, ts := newTestServer(t, newPlanner(dead.URL, p.server.URL))

	resp, body := postPlan(t, ts.URL, `{"destination":"Paris","duration":"3","preferences":"museums"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "travel_plan")
}

func TestGeneratePlan_MalformedBody(t *testing.T) {
	p := newProviders(t)
	_, ts := newTestServer(t, newPlanner(p.server.URL, p.server.URL))

	resp, body := postPlan(t, ts.URL, `{"destination":`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "travel_plan")
}

func TestGeneratePlan_PublishesEvent(t *testing.T) {
	p := newProviders(t)

	tests := []struct {
		name string
		err  error
	}{
		{name: "publish succeeds"},
		{name: "publish failure does not change response", err: errors.New("broker down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &capturePublisher{err: tt.err}
			srv, ts := newTestServer(t, newPlanner(p.server.URL, p.server.URL), srvpkg.WithEvents(pub))

			resp, body := postPlan(t, ts.URL, `{"destination":"Paris","duration":"3","preferences":"museums"}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "travel_plan")

			srv.Wait()
			pub.mu.Lock()
			defer pub.mu.Unlock()
			require.Len(t, pub.events, 1)
			assert.Equal(t, "Paris", pub.events[0].Destination)
		})
	}
}

func TestRoutes(t *testing.T) {
	p := newProviders(t)
	_, ts := newTestServer(t, newPlanner(p.server.URL, p.server.URL))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "landing page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "Travel Planner"},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "plan requires post", method: http.MethodGet, path: "/generate_plan", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				assert.Contains(t, string(body), tt.wantBody)
			}
		})
	}
}

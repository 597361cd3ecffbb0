package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"travelplanner/internal/models"
)

const publishTimeout = 5 * time.Second

type Planner interface {
	Plan(ctx context.Context, req models.PlanRequest) (*models.PlanResponse, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, req models.PlanRequest, resp *models.PlanResponse) error
}

// Server exposes the landing page and the plan endpoint.
type Server struct {
	planner Planner
	page    http.Handler
	events  EventPublisher
	router  *mux.Router
	pending sync.WaitGroup
}

type Option func(*Server)

// WithEvents publishes a plan event after every successful response.
func WithEvents(p EventPublisher) Option {
	return func(s *Server) { s.events = p }
}

func NewServer(planner Planner, page http.Handler, opts ...Option) *Server {
	s := &Server{planner: planner, page: page, router: mux.NewRouter()}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Handle("/", s.page).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/generate_plan", s.handleGeneratePlan).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

// Wait blocks until in-flight event publications have finished.
func (s *Server) Wait() { s.pending.Wait() }

// POST /generate_plan
func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("decode request: %w", err))
		return
	}

	resp, err := s.planner.Plan(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.fail(w, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		log.Println("error writing plan response:", err)
	}

	if s.events != nil {
		s.publish(context.WithoutCancel(r.Context()), req, resp)
	}
}

func (s *Server) publish(ctx context.Context, req models.PlanRequest, resp *models.PlanResponse) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := s.events.Publish(ctx, req, resp); err != nil {
			log.Printf("warning: failed to publish plan event for %q: %v", req.Destination, err)
		}
	}()
}

// fail answers with a bare 500; no partial plan ever reaches the client.
func (s *Server) fail(w http.ResponseWriter, err error) {
	log.Printf("generate_plan failed: %v", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

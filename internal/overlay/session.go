package overlay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"simple-directions/internal/directions"
)

// ErrSessionClosed is returned by Submit after Close.
var ErrSessionClosed = errors.New("session is closed")

// Result is the completion of one submitted request.
type Result struct {
	ID          uuid.UUID
	Origin      string
	Destination string
	Route       *directions.Route
	Err         error
}

// Session runs the requests of one interactive user. Only the most recently submitted
// request can deliver a result: submitting cancels the request in flight, and a
// result that completes after being superseded is dropped. Results are read from
// Results by whoever owns the display.
type Session struct {
	service Service
	logger  *slog.Logger
	results chan Result

	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

func NewSession(service Service, logger *slog.Logger) *Session {
	return &Session{
		service: service,
		logger:  logger.With("component", "session"),
		// At most one undelivered result exists at a time: Submit discards any
		// result still waiting before starting the next request.
		results: make(chan Result, 1),
	}
}

// Results delivers completed requests. It is closed by Close.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Submit starts a request for the route from origin to destination, superseding the
// request in flight, and returns the new request's ID.
func (s *Session) Submit(origin, destination string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return uuid.Nil, ErrSessionClosed
	}

	if s.cancel != nil {
		s.logger.Debug("superseding request", "request_id", s.current)
		s.cancel()
	}
	select {
	case stale := <-s.results:
		s.logger.Debug("discarding undelivered result", "request_id", stale.ID)
	default:
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	s.current = id
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx, id, origin, destination)

	s.logger.Debug("request submitted",
		"request_id", id,
		"origin", origin,
		"destination", destination,
	)
	return id, nil
}

func (s *Session) run(ctx context.Context, id uuid.UUID, origin, destination string) {
	defer s.wg.Done()

	route, err := s.service.GetRoute(ctx, origin, destination)
	s.deliver(Result{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		Route:       route,
		Err:         err,
	})
}

func (s *Session) deliver(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || res.ID != s.current {
		s.logger.Debug("dropping superseded result", "request_id", res.ID)
		return
	}

	s.cancel()
	s.cancel = nil
	s.current = uuid.Nil
	s.results <- res
}

// Close cancels the request in flight, waits for running requests to finish, and
// closes the results channel. Results not yet read are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
	select {
	case <-s.results:
	default:
	}
	close(s.results)
}

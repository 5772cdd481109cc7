// Package fun serves the fun tool routes under /api/.
package fun

import (
	"context"
	"net/http"

	"quirkit/internal/domain/entity"
	"quirkit/internal/handler/http/respond"
)

// Service is the fun tool use case, implemented by *fun.Service.
type Service interface {
	Excuse(ctx context.Context) (entity.Excuse, error)
	Joke(ctx context.Context) (entity.Joke, error)
	Quote(ctx context.Context, date string) (entity.Quote, error)
	ShowerThought(ctx context.Context) (entity.ShowerThought, error)
	Holiday(ctx context.Context, date string) (entity.Holiday, error)
	Drink(ctx context.Context) (entity.Drink, error)
	TimerBreak(ctx context.Context, breakType string) (entity.BreakSuggestion, error)
	Spin(choices []string) (entity.SpinResult, error)
}

// Register mounts the fun tool routes on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("/api/excuse", respond.AllowMethods(ExcuseHandler{svc}, http.MethodGet))
	mux.Handle("/api/joke", respond.AllowMethods(JokeHandler{svc}, http.MethodGet))
	mux.Handle("/api/quote", respond.AllowMethods(QuoteHandler{svc}, http.MethodGet))
	mux.Handle("/api/showerthought", respond.AllowMethods(ShowerThoughtHandler{svc}, http.MethodGet))
	mux.Handle("/api/holiday", respond.AllowMethods(HolidayHandler{svc}, http.MethodGet))
	mux.Handle("/api/drink", respond.AllowMethods(DrinkHandler{svc}, http.MethodGet))
	mux.Handle("/api/timer", respond.AllowMethods(TimerHandler{svc}, http.MethodGet))
	mux.Handle("/api/spinner", respond.AllowMethods(SpinnerHandler{svc}, http.MethodPost))
}

// write answers with v, or dispatches err.
func write[T any](w http.ResponseWriter, r *http.Request, v T, err error) {
	if err != nil {
		respond.Dispatch(w, r, err)
		return
	}
	respond.OK(w, v)
}

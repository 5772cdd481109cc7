// Package compliment serves /api/compliment.
package compliment

import (
	"context"
	"log/slog"
	"net/http"

	"quirkit/internal/handler/http/respond"
	"quirkit/internal/observability/logging"
	"quirkit/internal/usecase/compliment"
)

// Service is the compliment use case, implemented by *compliment.Service.
type Service interface {
	Submit(ctx context.Context, message, sender string) (compliment.SubmitResult, error)
	Random(ctx context.Context) (compliment.RandomResult, error)
}

// SubmitRequest is the body of POST /api/compliment.
type SubmitRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// Handler answers GET with a random approved compliment and POST with a
// submission.
type Handler struct {
	Svc Service
}

// Register mounts the compliment route on mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("/api/compliment", respond.AllowMethods(Handler{Svc: svc}, http.MethodGet, http.MethodPost))
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r)
	default:
		h.random(w, r)
	}
}

// submit handles POST /api/compliment.
//
// @Summary      Submit a compliment
// @Description  Stores a compliment. Submissions that trip the profanity filter are held for moderation
// @Tags         compliments
// @Accept       json
// @Produce      json
// @Param        request body SubmitRequest true "Compliment (message up to 500 characters, sender up to 50)"
// @Success      200 {object} respond.SuccessEnvelope{data=compliment.SubmitResult} "OK"
// @Failure      400 {object} respond.ErrorEnvelope "Invalid compliment or body"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/compliment [post]
func (h Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Submit(r.Context(), req.Message, req.Sender)
	if err != nil {
		respond.Dispatch(w, r, err)
		return
	}
	if res.NeedsModeration {
		logging.FromContext(r.Context()).Info("compliment queued for moderation",
			slog.String("compliment_id", res.ComplimentID))
	}
	respond.OK(w, res)
}

// random handles GET /api/compliment.
//
// @Summary      Random compliment
// @Description  Returns an approved compliment from the store, recent submissions, or the bundled list
// @Tags         compliments
// @Produce      json
// @Success      200 {object} respond.SuccessEnvelope{data=compliment.RandomResult} "OK"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/compliment [get]
func (h Handler) random(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.Random(r.Context())
	if err != nil {
		respond.Dispatch(w, r, err)
		return
	}
	respond.OK(w, res)
}

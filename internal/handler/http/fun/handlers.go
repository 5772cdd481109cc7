package fun

import (
	"net/http"

	"quirkit/internal/handler/http/respond"
)

type ExcuseHandler struct{ Svc Service }

// ServeHTTP handles GET /api/excuse.
//
// @Summary      Random excuse
// @Description  Generates an excuse with the configured LLM, or serves a bundled one
// @Tags         fun
// @Produce      json
// @Success      200 {object} respond.SuccessEnvelope{data=entity.Excuse} "OK"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/excuse [get]
func (h ExcuseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	excuse, err := h.Svc.Excuse(r.Context())
	write(w, r, excuse, err)
}

type JokeHandler struct{ Svc Service }

// ServeHTTP handles GET /api/joke.
//
// @Summary      Random joke
// @Description  Fetches a joke from JokeAPI, falling back to bundled jokes
// @Tags         fun
// @Produce      json
// @Success      200 {object} respond.SuccessEnvelope{data=entity.Joke} "OK"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/joke [get]
func (h JokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	joke, err := h.Svc.Joke(r.Context())
	write(w, r, joke, err)
}

type QuoteHandler struct{ Svc Service }

// ServeHTTP handles GET /api/quote?date=YYYY-MM-DD. The date defaults to today.
//
// @Summary      Quote of the day
// @Description  Returns the quote pinned to the date. The first quote resolved for a date is kept for the whole day
// @Tags         fun
// @Produce      json
// @Param        date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} respond.SuccessEnvelope{data=entity.Quote} "OK"
// @Failure      400 {object} respond.ErrorEnvelope "Invalid date"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/quote [get]
func (h QuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Svc.Quote(r.Context(), r.URL.Query().Get("date"))
	write(w, r, quote, err)
}

type ShowerThoughtHandler struct{ Svc Service }

// ServeHTTP handles GET /api/showerthought.
//
// @Summary      Random shower thought
// @Description  Picks a post from the shower thoughts feed, falling back to bundled thoughts
// @Tags         fun
// @Produce      json
// @Success      200 {object} respond.SuccessEnvelope{data=entity.ShowerThought} "OK"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/showerthought [get]
func (h ShowerThoughtHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	thought, err := h.Svc.ShowerThought(r.Context())
	write(w, r, thought, err)
}

type HolidayHandler struct{ Svc Service }

// ServeHTTP handles GET /api/holiday?date=YYYY-MM-DD. The date defaults to today.
//
// @Summary      Holiday on a date
// @Description  Looks up an observance with Calendarific, falling back to the bundled holiday for the month and day
// @Tags         fun
// @Produce      json
// @Param        date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success      200 {object} respond.SuccessEnvelope{data=entity.Holiday} "OK"
// @Failure      400 {object} respond.ErrorEnvelope "Invalid date"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/holiday [get]
func (h HolidayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	holiday, err := h.Svc.Holiday(r.Context(), r.URL.Query().Get("date"))
	write(w, r, holiday, err)
}

type DrinkHandler struct{ Svc Service }

// ServeHTTP handles GET /api/drink.
//
// @Summary      Random drink
// @Description  Fetches a cocktail from TheCocktailDB, falling back to bundled drinks
// @Tags         fun
// @Produce      json
// @Success      200 {object} respond.SuccessEnvelope{data=entity.Drink} "OK"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/drink [get]
func (h DrinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	drink, err := h.Svc.Drink(r.Context())
	write(w, r, drink, err)
}

type TimerHandler struct{ Svc Service }

// ServeHTTP handles GET /api/timer?type=short|long.
//
// @Summary      Break suggestion
// @Description  Suggests something to do during a break
// @Tags         fun
// @Produce      json
// @Param        type query string false "Break length" Enums(short, long)
// @Success      200 {object} respond.SuccessEnvelope{data=entity.BreakSuggestion} "OK"
// @Failure      400 {object} respond.ErrorEnvelope "Invalid break type"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/timer [get]
func (h TimerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.Svc.TimerBreak(r.Context(), r.URL.Query().Get("type"))
	write(w, r, suggestion, err)
}

// SpinRequest is the body of POST /api/spinner.
type SpinRequest struct {
	Choices []string `json:"choices"`
}

type SpinnerHandler struct{ Svc Service }

// ServeHTTP handles POST /api/spinner.
//
// @Summary      Decision spinner
// @Description  Picks one of 2 to 5 choices uniformly at random
// @Tags         fun
// @Accept       json
// @Produce      json
// @Param        request body SpinRequest true "Choices to spin"
// @Success      200 {object} respond.SuccessEnvelope{data=entity.SpinResult} "OK"
// @Failure      400 {object} respond.ErrorEnvelope "Invalid choices or body"
// @Failure      405 {object} respond.ErrorEnvelope "Method not allowed"
// @Failure      429 {object} respond.ErrorEnvelope "Rate limit exceeded"
// @Router       /api/spinner [post]
func (h SpinnerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if !respond.DecodeJSON(w, r, &req) {
		return
	}
	result, err := h.Svc.Spin(req.Choices)
	write(w, r, result, err)
}

package suggestions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/workoutlog/internal/middleware"
	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SuggestWorkoutRequest struct {
	AdditionalInput string `json:"additional_input"`
}

type ReplaceExerciseRequest struct {
	ExerciseID *int   `json:"exerciseId"`
	UserInput  string `json:"user_input"`
}

type ReplaceExerciseResponse struct {
	Message     string                   `json:"message"`
	Replacement workouts.ExerciseDetails `json:"replacement"`
}

type RestTimeRequest struct {
	UserInput string `json:"user_input"`
}

type RestTimeResponse struct {
	RestTimeSeconds float64 `json:"rest_time_seconds"`
}

type ExerciseTipsRequest struct {
	AdditionalInput string `json:"additional_input"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the generation routes, each behind its own rate limit.
func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	limited := func(routeName string, h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(rateLimiter, routeName, allowedPerMin, metricsManager)(h)
	}

	r.Handle("/suggest-workout", limited("suggest-workout", handler.HandleSuggestWorkout)).
		Methods("POST", "OPTIONS").Name("suggest-workout")
	r.Handle("/replace-workout", limited("replace-workout", handler.HandleReplaceExercise)).
		Methods("POST", "OPTIONS").Name("replace-workout")
	r.Handle("/suggest-rest-time", limited("suggest-rest-time", handler.HandleSuggestRestTime)).
		Methods("POST", "OPTIONS").Name("suggest-rest-time")
	r.Handle("/exercise-tips/{exerciseId}", limited("exercise-tips", handler.HandleExerciseTips)).
		Methods("POST", "OPTIONS").Name("exercise-tips")
}

func (handler *Handler) HandleSuggestWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggestions.suggestWorkout")
	defer span.End()

	var req SuggestWorkoutRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	text, _, err := handler.service.SuggestWorkout(ctx, req.AdditionalInput)
	if err != nil {
		handler.writeError(w, err, "")
		return
	}

	pkg.WriteTextResponseOK(w, text)
}

func (handler *Handler) HandleReplaceExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggestions.replaceExercise")
	defer span.End()

	var req ReplaceExerciseRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	if req.ExerciseID == nil {
		pkg.WriteJSONMessage(w, "exerciseId is required", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("exercise.id", *req.ExerciseID))

	details, err := handler.service.ReplaceExercise(ctx, *req.ExerciseID, req.UserInput)
	if err != nil {
		handler.writeError(w, err, "")
		return
	}

	pkg.WriteJSON(w, ReplaceExerciseResponse{
		Message:     "Exercise replaced successfully",
		Replacement: *details,
	}, http.StatusOK)
}

func (handler *Handler) HandleSuggestRestTime(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggestions.restTime")
	defer span.End()

	var req RestTimeRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	seconds, err := handler.service.SuggestRestTime(ctx, req.UserInput)
	if err != nil {
		today := handler.service.Today()
		handler.writeError(w, err, fmt.Sprintf("No workout found for today (%s).", today))
		return
	}

	pkg.WriteJSON(w, RestTimeResponse{RestTimeSeconds: seconds}, http.StatusOK)
}

func (handler *Handler) HandleExerciseTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggestions.exerciseTips")
	defer span.End()

	exerciseID, err := strconv.Atoi(mux.Vars(r)["exerciseId"])
	if err != nil {
		pkg.WriteJSONMessage(w, "error, exercise id NaN", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	var req ExerciseTipsRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	tips, err := handler.service.ExerciseTips(ctx, exerciseID, req.AdditionalInput)
	if err != nil {
		handler.writeError(w, err, "Workout associated with exercise not found.")
		return
	}

	pkg.WriteTextResponseOK(w, tips)
}

// writeError maps service errors to responses. workoutNotFoundMsg is used
// when the route has its own wording for a missing workout.
func (handler *Handler) writeError(w http.ResponseWriter, err error, workoutNotFoundMsg string) {
	switch {
	case errors.Is(err, ErrSuggestionInProgress):
		pkg.WriteJSONMessage(w, "A workout suggestion for today is already in progress.", http.StatusConflict)
	case errors.Is(err, workouts.ErrExerciseNotFound):
		pkg.WriteJSONMessage(w, "Exercise not found.", http.StatusNotFound)
	case errors.Is(err, workouts.ErrWorkoutNotFound):
		if workoutNotFoundMsg == "" {
			workoutNotFoundMsg = "Workout not found"
		}
		pkg.WriteJSONMessage(w, workoutNotFoundMsg, http.StatusNotFound)
	default:
		log.Errorf("suggestions: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeOptionalBody treats a missing body as an empty JSON object.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	pkg.WriteJSONMessage(w, "invalid request body", http.StatusBadRequest)
	return false
}

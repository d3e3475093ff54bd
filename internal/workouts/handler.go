package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
	"github.com/2beens/workoutlog/internal/telemetry/tracing"
	"github.com/2beens/workoutlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	ListAll(ctx context.Context) ([]Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	GetByDay(ctx context.Context, day string) (*Workout, error)
	Create(ctx context.Context, workout Workout) (int, error)
	Replace(ctx context.Context, id int, workout Workout) error
	Delete(ctx context.Context, id int) error
}

type CreateWorkoutResponse struct {
	Message   string `json:"message"`
	WorkoutID int    `json:"workoutId"`
}

type Handler struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WithClock replaces the clock used to resolve today's label.
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("today-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := handler.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.today")
	defer span.End()

	today := DayLabel(handler.now())
	span.SetAttributes(attribute.String("day", today))

	workout, err := handler.repo.GetByDay(ctx, today)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONMessage(w, fmt.Sprintf("No workout found for today (%s).", today), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get today's workout [%s]: %s", today, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, ok := workoutIDFromPath(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	workout, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONMessage(w, "Workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	workout, ok := decodeWorkout(w, r)
	if !ok {
		return
	}

	id, err := handler.repo.Create(ctx, workout)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteJSONMessage(w, validationErr.Message, http.StatusBadRequest)
			return
		}
		log.Errorf("failed to create workout [%s] [%s]: %s", workout.Day, workout.Title, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsCreated.WithLabelValues("manual").Inc()
	}
	span.SetAttributes(attribute.Int("id", id))
	log.Debugf("new workout created: %d [%s]", id, workout.Day)

	pkg.WriteJSON(w, CreateWorkoutResponse{
		Message:   "Workout created successfully",
		WorkoutID: id,
	}, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id, ok := workoutIDFromPath(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	workout, ok := decodeWorkout(w, r)
	if !ok {
		return
	}

	err := handler.repo.Replace(ctx, id, workout)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONMessage(w, "Workout not found or no changes made", http.StatusNotFound)
		return
	}
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteJSONMessage(w, validationErr.Message, http.StatusBadRequest)
			return
		}
		log.Errorf("failed to update workout %d: %s", id, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONMessage(w, "Workout updated successfully", http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id, ok := workoutIDFromPath(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("id", id))

	err := handler.repo.Delete(ctx, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		pkg.WriteJSONMessage(w, "Workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to delete workout %d: %s", id, err)
		pkg.WriteJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Debugf("workout %d deleted", id)
	pkg.WriteJSONMessage(w, "Workout deleted successfully", http.StatusOK)
}

func workoutIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		pkg.WriteJSONMessage(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		pkg.WriteJSONMessage(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeWorkout reads and validates the workout body, answering 400 itself
// when it cannot be used.
func decodeWorkout(w http.ResponseWriter, r *http.Request) (Workout, bool) {
	var workout Workout
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		pkg.WriteJSONMessage(w, "invalid content type", http.StatusBadRequest)
		return workout, false
	}

	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("workout, unmarshal json body: %s", err)
		pkg.WriteJSONMessage(w, "invalid workout json", http.StatusBadRequest)
		return workout, false
	}

	if err := workout.Validate(); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteJSONMessage(w, validationErr.Message, http.StatusBadRequest)
		} else {
			pkg.WriteJSONMessage(w, err.Error(), http.StatusBadRequest)
		}
		return workout, false
	}
	return workout, true
}

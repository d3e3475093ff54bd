package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/workoutlog/internal/workouts"
	"github.com/2beens/workoutlog/pkg"
)

const DefaultBaseURL = "http://localhost:3000"

// APIError is any non-2xx reply of the workoutlog service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the workoutlog HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		// suggestions wait for the generator
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListWorkouts(ctx context.Context) ([]workouts.Workout, error) {
	var list []workouts.Workout
	if err := c.doJSON(ctx, http.MethodGet, "/workouts", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetWorkout(ctx context.Context, id int) (*workouts.Workout, error) {
	var w workouts.Workout
	if err := c.doJSON(ctx, http.MethodGet, "/workouts/"+strconv.Itoa(id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) TodayWorkout(ctx context.Context) (*workouts.Workout, error) {
	var w workouts.Workout
	if err := c.doJSON(ctx, http.MethodGet, "/workouts/today", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWorkout returns the id of the new workout.
func (c *Client) CreateWorkout(ctx context.Context, w workouts.Workout) (int, error) {
	var resp workouts.CreateWorkoutResponse
	if err := c.doJSON(ctx, http.MethodPost, "/workouts", w, &resp); err != nil {
		return -1, err
	}
	return resp.WorkoutID, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, "/workouts/"+strconv.Itoa(id), nil, nil)
}

// SuggestWorkout returns the suggested workout as rendered by the service.
func (c *Client) SuggestWorkout(ctx context.Context, additionalInput string) (string, error) {
	return c.doText(ctx, "/suggest-workout", map[string]string{"additional_input": additionalInput})
}

func (c *Client) SuggestRestTime(ctx context.Context, userInput string) (float64, error) {
	var resp struct {
		RestTimeSeconds float64 `json:"rest_time_seconds"`
	}
	body := map[string]string{"user_input": userInput}
	if err := c.doJSON(ctx, http.MethodPost, "/suggest-rest-time", body, &resp); err != nil {
		return 0, err
	}
	return resp.RestTimeSeconds, nil
}

func (c *Client) ExerciseTips(ctx context.Context, exerciseID int, additionalInput string) (string, error) {
	return c.doText(
		ctx,
		"/exercise-tips/"+strconv.Itoa(exerciseID),
		map[string]string{"additional_input": additionalInput},
	)
}

func (c *Client) ReplaceExercise(ctx context.Context, exerciseID int, userInput string) (*workouts.ExerciseDetails, error) {
	var resp struct {
		Replacement workouts.ExerciseDetails `json:"replacement"`
	}
	body := map[string]any{"exerciseId": exerciseID, "user_input": userInput}
	if err := c.doJSON(ctx, http.MethodPost, "/replace-workout", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Replacement, nil
}

func (c *Client) doText(ctx context.Context, path string, body any) (string, error) {
	respBody, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	return string(respBody), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", pkg.ContentType.JSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	return respBody, nil
}

// errorMessage pulls the message out of {"message"} and {"error"} bodies.
func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}

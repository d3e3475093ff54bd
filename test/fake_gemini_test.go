//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/2beens/workoutlog/pkg"
)

const fakeGeminiKey = "fake-gemini-key"

const fakeSuggestedWorkout = "```json\n" + `{
  "day": "some day",
  "title": "Suggested Leg Day",
  "subtitle": "Strength",
  "ai_tips": "Warm up well",
  "exercises": [
    {
      "name": "Barbell Squats",
      "target_muscles": "Quadriceps, Glutes",
      "machine": "Squat Rack",
      "sets": [
        {"reps": 8, "weight": 60, "unit": "kg", "ai_tips": "8 reps @ 60 kg"},
        {"reps": "8-10", "weight": "heavy", "unit": "kg", "ai_tips": "8-10 reps"},
        {"reps": 8, "weight": 60, "unit": "stone"}
      ]
    },
    {
      "name": "Lunges",
      "sets": [{"reps": 12, "weight": 10, "unit": "lbs"}]
    }
  ]
}` + "\n```"

// fakeGemini answers generateContent calls based on what the prompt asks for.
type fakeGemini struct {
	srv *httptest.Server

	mu      sync.Mutex
	prompts []string
}

func newFakeGemini() *fakeGemini {
	f := &fakeGemini{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeGemini) URL() string {
	return f.srv.URL
}

func (f *fakeGemini) Close() {
	f.srv.Close()
}

func (f *fakeGemini) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = nil
}

func (f *fakeGemini) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *fakeGemini) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") != fakeGeminiKey {
		pkg.WriteJSONError(w, "API key not valid", http.StatusBadRequest)
		return
	}

	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
		pkg.WriteJSONError(w, "bad request", http.StatusBadRequest)
		return
	}
	prompt := req.Contents[0].Parts[0].Text

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	var text string
	switch {
	case strings.Contains(prompt, "Suggested workout for today (as JSON):"):
		text = fakeSuggestedWorkout
	case strings.Contains(prompt, "rest_time_seconds"):
		text = `{"rest_time_seconds": 75}`
	case strings.Contains(prompt, "Replacement exercise (as JSON):"):
		text = `{"name": "Leg Press", "target_muscles": "Quadriceps", "machine": "Leg Press Machine"}`
	default:
		text = "Keep your chest up and brace your core."
	}

	pkg.WriteJSON(w, map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			},
		}},
	}, http.StatusOK)
}

package suggestions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/2beens/workoutlog/internal/workouts"

	"github.com/invopop/jsonschema"
)

// The types below only describe the reply format to the model. Replies are
// decoded into the workouts types.

type schemaSet struct {
	Reps   int     `json:"reps" jsonschema_description:"Always 0. Put the suggested reps into ai_tips."`
	Weight float64 `json:"weight" jsonschema_description:"Always 0. The user fills in the actual working weight."`
	Unit   string  `json:"unit" jsonschema:"enum=kg,enum=lbs"`
	AITips string  `json:"ai_tips,omitempty" jsonschema_description:"Suggested reps and weight for this set plus a short cue, e.g. 8-10 reps @ 60 kg, slow eccentric."`
}

type schemaExercise struct {
	Name          string      `json:"name" jsonschema_description:"e.g. Barbell Squats"`
	TargetMuscles string      `json:"target_muscles" jsonschema_description:"e.g. Quadriceps, Glutes"`
	Machine       string      `json:"machine" jsonschema_description:"e.g. Squat Rack, Dumbbells, Bodyweight"`
	Attachments   string      `json:"attachments,omitempty" jsonschema_description:"e.g. Barbell, Resistance Band"`
	Sets          []schemaSet `json:"sets"`
}

type schemaWorkout struct {
	Day       string           `json:"day" jsonschema_description:"Will be replaced with today's date."`
	Title     string           `json:"title" jsonschema_description:"e.g. Leg Day"`
	Subtitle  string           `json:"subtitle,omitempty" jsonschema_description:"e.g. Focus on strength"`
	Exercises []schemaExercise `json:"exercises"`
	AITips    string           `json:"ai_tips,omitempty" jsonschema_description:"Overall tips for the workout."`
}

type schemaExerciseDetails struct {
	Name          string `json:"name" jsonschema_description:"Name of the replacement exercise."`
	TargetMuscles string `json:"target_muscles" jsonschema_description:"e.g. Quadriceps, Glutes"`
	Machine       string `json:"machine" jsonschema_description:"e.g. Leg Press, Dumbbells, Bodyweight"`
	Attachments   string `json:"attachments,omitempty" jsonschema_description:"e.g. Rope, V-Bar"`
}

var (
	workoutSchema  = mustSchema(&schemaWorkout{})
	exerciseSchema = mustSchema(&schemaExerciseDetails{})
)

func mustSchema(v any) string {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(v)
	schema.Version = ""
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("marshal json schema for %T: %s", v, err))
	}
	return string(b)
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// only plain data types get here
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

// SuggestionPrompt asks for today's workout based on the whole history.
func SuggestionPrompt(past []workouts.Workout, userInstructions string) string {
	if past == nil {
		past = []workouts.Workout{}
	}

	var sb strings.Builder
	sb.WriteString("Based on the following past workout data, suggest a workout plan for today.\n")
	sb.WriteString("The suggestion MUST be returned as a JSON object strictly following this schema:\n")
	sb.WriteString(workoutSchema)
	sb.WriteString("\nFor each exercise, and for each set within an exercise, include a brief 'ai_tips' field with relevant suggestions (e.g., proper form, common mistakes, intensity cues). ")
	sb.WriteString("**IMPORTANT: Set the 'reps' and 'weight' fields to 0 for all suggested sets and put the suggested reps and weight into the set's 'ai_tips'; the user will determine their actual working weight.**\n")
	sb.WriteString("For the overall workout, provide an 'ai_tips' field with general advice or focus.\n")
	sb.WriteString("Ensure all fields are correctly populated and units are 'kg' or 'lbs'.\n")
	sb.WriteString("If no exercises is suggested, provide an empty array for 'exercises'.\n")
	sb.WriteString("DO NOT include any conversational text outside the JSON.\n\n")
	sb.WriteString("Past Workout Data:\n")
	sb.WriteString(indentJSON(past))
	sb.WriteString("\n")

	if userInstructions != "" {
		sb.WriteString("\nAdditional instructions from user: ")
		sb.WriteString(userInstructions)
	}

	sb.WriteString("\n\nSuggested workout for today (as JSON):")
	return sb.String()
}

// ReplacementPrompt asks for one exercise to take the place of target.
func ReplacementPrompt(target workouts.Exercise, siblings []workouts.Exercise, userInput string) string {
	if siblings == nil {
		siblings = []workouts.Exercise{}
	}

	var sb strings.Builder
	sb.WriteString("Suggest a replacement for the following exercise from today's workout. ")
	sb.WriteString("The replacement should train the same muscles and must not repeat any of the other exercises in the workout.\n\n")
	sb.WriteString("Exercise to replace:\n")
	sb.WriteString(indentJSON(target))
	sb.WriteString("\n\nOther exercises in the same workout:\n")
	sb.WriteString(indentJSON(siblings))
	sb.WriteString("\n\nReturn exactly one replacement exercise as a JSON object strictly following this schema:\n")
	sb.WriteString(exerciseSchema)
	sb.WriteString("\nDO NOT include any conversational text outside the JSON.\n")

	if userInput != "" {
		sb.WriteString("\nAdditional instructions from user: ")
		sb.WriteString(userInput)
	}

	sb.WriteString("\n\nReplacement exercise (as JSON):")
	return sb.String()
}

// RestTimePrompt asks for a single rest duration for today's workout.
func RestTimePrompt(today workouts.Workout, userInput string) string {
	var sb strings.Builder
	sb.WriteString("Given the following workout for today, suggest the optimal rest time (in seconds) between sets and exercises. ")
	sb.WriteString(`Respond ONLY with a JSON object: { "rest_time_seconds": NUMBER }. `)
	sb.WriteString("Today's workout: ")
	sb.WriteString(indentJSON(today))

	if userInput != "" {
		sb.WriteString("\nUser input: ")
		sb.WriteString(userInput)
	}

	sb.WriteString("\nRespond only with the JSON.")
	return sb.String()
}

// TipsPrompt asks for plain text coaching tips for one exercise.
func TipsPrompt(exercise workouts.Exercise, workout workouts.Workout, userInput string) string {
	context := struct {
		Day       string   `json:"day"`
		Title     string   `json:"title"`
		Subtitle  *string  `json:"subtitle"`
		Exercises []string `json:"exercises"`
	}{
		Day:      workout.Day,
		Title:    workout.Title,
		Subtitle: workout.Subtitle,
	}
	for _, e := range workout.Exercises {
		context.Exercises = append(context.Exercises, e.Name)
	}

	var sb strings.Builder
	sb.WriteString("Give practical tips for the following exercise: proper form, common mistakes, breathing and intensity cues, ")
	sb.WriteString("and how to progress the logged sets. Keep it short.\n")
	sb.WriteString("Answer in plain text. Do not answer with JSON and do not use code fences.\n\n")
	sb.WriteString("Exercise:\n")
	sb.WriteString(indentJSON(exercise))
	sb.WriteString("\n\nIt is part of this workout:\n")
	sb.WriteString(indentJSON(context))
	sb.WriteString("\n")

	if userInput != "" {
		sb.WriteString("\nAdditional instructions from user: ")
		sb.WriteString(userInput)
		sb.WriteString("\n")
	}

	return sb.String()
}

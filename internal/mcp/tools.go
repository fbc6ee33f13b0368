package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workouts in a date range, newest first. Each workout includes its exercises and sets with weight (lb), reps, and set type."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch one workout by ID with full exercise and set detail."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolParseWorkout = mcp.NewTool("parse_workout",
	mcp.WithDescription("Parse a natural-language workout description (e.g. 'bench 135x10, squat 225x5') into structured exercises and sets without saving anything."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Free-text workout description")),
)

var toolImportWorkoutText = mcp.NewTool("import_workout_text",
	mcp.WithDescription("Parse a natural-language workout description and save the resulting workout to the training log. Returns the saved workout and an import summary."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Free-text workout description")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.QueryWorkouts(ctx, start, end)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID: " + err.Error()), nil
	}

	workout, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("workout not found: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) parseWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	parsed, err := h.ds.ParseText(ctx, text)
	if err != nil {
		h.log.Error("mcp parse_workout", "error", err)
		return mcp.NewToolResultError("parse failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(parsed)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) importWorkoutText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	workout, summary, err := h.ds.ImportText(ctx, text)
	if err != nil {
		h.log.Error("mcp import_workout_text", "error", err)
		return mcp.NewToolResultError("import failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout": workout,
		"summary": summary,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/studyplan/pkg/app"
	"tableflip.dev/studyplan/pkg/model"
	"tableflip.dev/studyplan/pkg/timeutil"
	"tableflip.dev/studyplan/pkg/views"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerUpdateTaskTool(srv, svc)
	registerCompleteTaskTool(srv, svc, "complete_task", true)
	registerCompleteTaskTool(srv, svc, "reopen_task", false)
	registerDeleteTaskTool(srv, svc)
	registerListGoalsTool(srv, svc)
	registerCreateGoalTool(srv, svc)
	registerLogProgressTool(srv, svc)
	registerDeleteGoalTool(srv, svc)
	registerStatsTool(srv, svc)
	registerWeekTool(srv, svc)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List study tasks, optionally filtered and sorted."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against title and subject."),
		),
		mcp.WithString("status",
			mcp.Description("Completion filter."),
			mcp.Enum("all", "open", "completed", "overdue"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order; omit to keep creation order."),
			mcp.Enum("none", "dueAsc", "dueDesc", "priority", "createdDesc"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := views.ParseStatus(request.GetString("status", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sortBy, err := views.ParseSort(request.GetString("sort", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tasks, err := svc.ListTasks(ctx, views.Filter{
			Query:  request.GetString("query", ""),
			Status: status,
			SortBy: sortBy,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a study task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Course or subject the task belongs to."),
		),
		mcp.WithString("due",
			mcp.Required(),
			mcp.Description("Due time as RFC3339, \"YYYY-MM-DD HH:MM\" or a bare date (end of day)."),
		),
		mcp.WithNumber("durationMins",
			mcp.Required(),
			mcp.Description("Estimated effort in minutes."),
			mcp.Min(1),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority, default med."),
			mcp.Enum("low", "med", "high"),
		),
		mcp.WithNumber("remindMins",
			mcp.Description("Minutes before the due time to remind; omit to use the default."),
			mcp.Min(0),
			mcp.Max(model.MaxRemindMins),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title        string   `json:"title"`
			Subject      string   `json:"subject"`
			Due          string   `json:"due"`
			DurationMins float64  `json:"durationMins"`
			Priority     string   `json:"priority"`
			RemindMins   *float64 `json:"remindMins"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddTask(ctx, AddTaskOptions{
			Title:        args.Title,
			Subject:      args.Subject,
			Due:          args.Due,
			DurationMins: int(math.Round(args.DurationMins)),
			Priority:     args.Priority,
			RemindMins:   roundPtr(args.RemindMins),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Edit fields of a task. Omitted fields are left unchanged; invalid values are ignored."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("subject", mcp.Description("New subject.")),
		mcp.WithString("due", mcp.Description("New due time, same formats as create_task.")),
		mcp.WithNumber("durationMins", mcp.Description("New effort estimate in minutes.")),
		mcp.WithString("priority",
			mcp.Description("New priority."),
			mcp.Enum("low", "med", "high"),
		),
		mcp.WithNumber("remindMins", mcp.Description("New reminder lead in minutes, clamped to 0..1440.")),
		mcp.WithBoolean("clearRemind", mcp.Description("Use the default reminder lead again.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID           string   `json:"id"`
			Title        *string  `json:"title"`
			Subject      *string  `json:"subject"`
			Due          *string  `json:"due"`
			DurationMins *float64 `json:"durationMins"`
			Priority     *string  `json:"priority"`
			RemindMins   *float64 `json:"remindMins"`
			ClearRemind  bool     `json:"clearRemind"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		patch := app.TaskPatch{
			Title:        args.Title,
			Subject:      args.Subject,
			DurationMins: roundPtr(args.DurationMins),
			RemindMins:   roundPtr(args.RemindMins),
			ClearRemind:  args.ClearRemind,
		}
		if args.Due != nil {
			due, err := timeutil.ParseDue(*args.Due, svc.now())
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid due value: %v", err)), nil
			}
			patch.DueAt = &due
		}
		if args.Priority != nil {
			p, err := model.ParsePriority(*args.Priority)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			patch.Priority = &p
		}

		dto, err := svc.UpdateTask(ctx, args.ID, patch)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *Service, name string, done bool) {
	desc := "Mark a task as completed."
	if !done {
		desc = "Mark a completed task as open again."
	}
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(desc),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetTaskCompleted(ctx, id, done)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task. Deleting an unknown id succeeds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListGoalsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_goals",
		mcp.WithDescription("List study goals with their completion percentage."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goals, err := svc.ListGoals(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"goals": goals,
			"count": len(goals),
		})
	})
}

func registerCreateGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_goal",
		mcp.WithDescription("Create a goal measured in study hours."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Goal title."),
		),
		mcp.WithNumber("targetHours",
			mcp.Required(),
			mcp.Description("Hours needed to complete the goal."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := request.RequireFloat("targetHours")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddGoal(ctx, title, target)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogProgressTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_goal_progress",
		mcp.WithDescription("Add studied hours to a goal."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
		mcp.WithNumber("hours",
			mcp.Required(),
			mcp.Description("Positive number of hours studied."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		hours, err := request.RequireFloat("hours")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.LogProgress(ctx, id, hours)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteGoalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_goal",
		mcp.WithDescription("Delete a goal. Deleting an unknown id succeeds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Goal identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteGoal(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_stats",
		mcp.WithDescription("Task totals, overdue and due-soon counts and this week's open workload in hours."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(st)
	})
}

func registerWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_week",
		mcp.WithDescription("Tasks due in a Monday to Sunday week, bucketed by day."),
		mcp.WithNumber("offset",
			mcp.Description("Whole weeks from the current one; negative looks back."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		week, err := svc.Week(ctx, request.GetInt("offset", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(week)
	})
}

func roundPtr(v *float64) *int {
	if v == nil || !model.IsFinite(*v) {
		return nil
	}
	i := int(math.Round(*v))
	return &i
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

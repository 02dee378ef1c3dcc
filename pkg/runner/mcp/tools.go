package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/task"
	"tableflip.dev/mytodo/pkg/view"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Create a new active task at the end of the list."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title; must not be blank.")),
		mcp.WithString("memo", mcp.Description("Optional free-text memo.")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title string `json:"title"`
			Memo  string `json:"memo"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return result(svc.Create(ctx, args.Title, args.Memo))
	})

	srv.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Change the title and/or memo of a task. Omitted fields are left alone."),
		idArg("Task identifier or unique prefix."),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("memo", mcp.Description("New memo; an empty string clears it.")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID    string  `json:"id"`
			Title *string `json:"title"`
			Memo  *string `json:"memo"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return result(svc.Update(ctx, args.ID, task.Fields{Title: args.Title, Memo: args.Memo}))
	})

	for _, m := range []struct {
		name, description string
		op                app.Op
	}{
		{"toggle_completion", "Toggle whether a task is completed.", app.OpToggleCompletion},
		{"toggle_mark", "Toggle a task's marked-for-deletion flag.", app.OpToggleMark},
		{"archive_task", "Move a task to the archive.", app.OpArchive},
		{"delete_task", "Permanently delete a single task.", app.OpDelete},
	} {
		op := m.op
		srv.AddTool(mcp.NewTool(m.name,
			mcp.WithDescription(m.description),
			idArg("Task identifier or unique prefix."),
		), byID(func(ctx context.Context, id string) (any, error) {
			return svc.Mutate(ctx, id, op)
		}))
	}

	srv.AddTool(mcp.NewTool("restore_task",
		mcp.WithDescription("Copy an archived task back to the active list. The archived task stays in the archive."),
		idArg("Archived task identifier or unique prefix."),
	), byID(func(ctx context.Context, id string) (any, error) {
		return svc.Restore(ctx, id)
	}))

	srv.AddTool(mcp.NewTool("reorder_task",
		mcp.WithDescription("Move an active task to a new position in the manual (created) order."),
		idArg("Task identifier or unique prefix."),
		mcp.WithNumber("position", mcp.Required(), mcp.Description("Target position, starting at 1."), mcp.Min(1)),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		position, err := request.RequireInt("position")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result(svc.Reorder(ctx, id, position))
	})

	bulk(srv, "delete_marked", "Permanently delete every active task marked for deletion.", svc.DeleteMarked)
	bulk(srv, "clear_archive", "Permanently delete every archived task.", svc.ClearArchive)

	srv.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List active tasks in a sort mode, or archived tasks newest first."),
		mcp.WithString("view", mcp.Description("Which list to return."), mcp.Enum("active", "archive")),
		mcp.WithString("sort", mcp.Description("Sort mode for the active list."), mcp.Enum(view.SortModes()...)),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks to return (default 50)."), mcp.Min(1), mcp.Max(500)),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return result(svc.List(ctx,
			request.GetString("view", "active"),
			request.GetString("sort", view.SortCreated.String()),
			request.GetInt("limit", 50),
		))
	})

	srv.AddTool(mcp.NewTool("get_task",
		mcp.WithDescription("Fetch a single task by id or unique id prefix."),
		idArg("Task identifier or unique prefix."),
	), byID(func(ctx context.Context, id string) (any, error) {
		return svc.Get(ctx, id)
	}))
}

func idArg(description string) mcp.ToolOption {
	return mcp.WithString("id", mcp.Required(), mcp.Description(description))
}

// byID adapts fn into a handler for tools whose only required argument is "id".
func byID(fn func(ctx context.Context, id string) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result(fn(ctx, id))
	}
}

// bulk registers a destructive tool that only runs with confirm=true.
func bulk(srv *server.MCPServer, name, description string, run func(context.Context, bool) (int, string, error)) {
	srv.AddTool(mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true; stands in for the interactive confirmation.")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		removed, notice, err := run(ctx, request.GetBool("confirm", false))
		return result(map[string]any{"removed": removed, "notice": notice}, err)
	})
}

// result turns a service reply into tool output. Service errors are tool
// errors, not protocol errors.
func result(data any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

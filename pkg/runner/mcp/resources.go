package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSnapshotResource(srv, svc)
	registerStatsResource(srv, svc)
	registerTaskTemplate(srv, svc)
}

func registerSnapshotResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"studyplan://snapshot",
		"Planner Snapshot",
		mcp.WithResourceDescription("Every task, goal and setting, in the export format."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, snap)
	})
}

func registerStatsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"studyplan://stats",
		"Task Statistics",
		mcp.WithResourceDescription("Task totals and this week's workload."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		st, err := svc.Stats(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, st)
	})
}

func registerTaskTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"studyplan://tasks/{id}",
		"Task Details",
		mcp.WithTemplateDescription("A single task with its overdue and due-soon flags."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("task id is required")
		}

		dto, err := svc.TaskByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"task": dto})
	})
}

// templateArg unwraps a URI template variable, which arrives as a string or
// a one element slice depending on the matcher.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// Package mcp provides the stdio MCP server exposing the destination
// catalog, favorites and notifications as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/gomate/internal/buildinfo"
	"github.com/go-ports/gomate/internal/catalog"
	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/search"
	"github.com/go-ports/gomate/internal/service"
)

const searchDescription = `Search Sri Lankan travel destinations by name, location or description. Set semantic to also rank destinations with similar wording.`

const toggleDescription = `Add a destination to the favorites list, or remove it if it is already there. Records a notification for the change.`

// NewServer creates and registers all GoMate tools on a new MCP server.
// It is separate from Serve so that tests can obtain a configured server
// without the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("gomate", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server for home, blocking until stdin closes.
func Serve(ctx context.Context, home string) error {
	svc, err := service.New(ctx, home)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	categories := svc.Catalog.Categories()

	s.AddTool(mcp.NewTool("destination_search",
		mcp.WithDescription(searchDescription),
		mcp.WithString("query",
			mcp.Description("Search terms. Empty matches every destination."),
		),
		mcp.WithString("category",
			mcp.Description("Restrict to one category."),
			mcp.Enum(categories...),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default 5)"),
		),
		mcp.WithBoolean("semantic",
			mcp.Description("Blend in vector similarity (default false)"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("destination_details",
		mcp.WithDescription("Full details for one destination, with related destinations."),
		mcp.WithString("id",
			mcp.Description("Destination id"),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetails(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("favorite_toggle",
		mcp.WithDescription(toggleDescription),
		mcp.WithString("destination_id",
			mcp.Description("Destination id"),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleToggle(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("favorites_list",
		mcp.WithDescription("List favorite destinations in the order they were added."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleFavorites(svc)
	})

	s.AddTool(mcp.NewTool("notifications_list",
		mcp.WithDescription("List notifications, newest first."),
		mcp.WithBoolean("unread_only",
			mcp.Description("Only unread notifications (default false)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max notifications (default 20)"),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleNotifications(svc, req)
	})

	s.AddTool(mcp.NewTool("session_current",
		mcp.WithDescription("The logged-in user, without credentials."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		u, ok := svc.CurrentUser()
		if !ok {
			return jsonResult(map[string]any{"logged_in": false})
		}
		return jsonResult(map[string]any{"logged_in": true, "user": u})
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleSearch(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}
	category := req.GetString("category", catalog.CategoryAll)

	results, err := svc.SearchDestinations(ctx, req.GetString("query", ""), 0, req.GetBool("semantic", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	clean := make([]map[string]any, 0, limit)
	for _, r := range results {
		if category != catalog.CategoryAll && r.Destination.Category != category {
			continue
		}
		clean = append(clean, summary(svc, r.Destination, r.Score))
		if len(clean) == limit {
			break
		}
	}
	return jsonResult(clean)
}

func handleDetails(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	d, ok := svc.Catalog.ByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no destination with id %q", id)), nil
	}
	related, err := svc.Related(ctx, id, 3)
	if err != nil {
		slog.Warn("mcp: related lookup failed", "id", id, "err", err)
		related = make([]search.Result, 0)
	}
	rel := make([]map[string]any, 0, len(related))
	for _, r := range related {
		rel = append(rel, summary(svc, r.Destination, r.Score))
	}
	return jsonResult(map[string]any{
		"destination": d,
		"is_favorite": svc.Favorites.IsFavorite(id),
		"related":     rel,
	})
}

func handleToggle(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("destination_id", "")
	added, err := svc.Favorites.Toggle(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := map[string]any{
		"destination_id": id,
		"favorite":       added,
	}
	if d, ok := svc.Catalog.ByID(id); ok {
		out["name"] = d.Name
	}
	return jsonResult(out)
}

func handleFavorites(svc *service.Service) (*mcp.CallToolResult, error) {
	dests := svc.Favorites.Destinations()
	clean := make([]map[string]any, 0, len(dests))
	for _, d := range dests {
		clean = append(clean, summary(svc, d, 0))
	}
	return jsonResult(map[string]any{
		"ids":          svc.Favorites.List(),
		"destinations": clean,
	})
}

func handleNotifications(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	unreadOnly := req.GetBool("unread_only", false)

	list := svc.Notifications.List()
	if unreadOnly {
		list = slices.DeleteFunc(list, func(n models.Notification) bool { return n.Read })
	}
	items := make([]map[string]any, 0, min(limit, len(list)))
	for _, n := range list[:min(limit, len(list))] {
		items = append(items, map[string]any{
			"id":      n.ID,
			"type":    n.Type,
			"title":   n.Title,
			"message": n.Message,
			"read":    n.Read,
			"date":    formatDate(n.Timestamp),
			"data":    n.Data,
		})
	}
	return jsonResult(map[string]any{
		"unread":        svc.Notifications.UnreadCount(),
		"total":         len(list),
		"notifications": items,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func summary(svc *service.Service, d models.Destination, score float64) map[string]any {
	out := map[string]any{
		"id":          d.ID,
		"name":        d.Name,
		"location":    d.Location,
		"category":    d.Category,
		"rating":      d.Rating,
		"description": truncate(d.Description, 120),
		"is_favorite": svc.Favorites.IsFavorite(d.ID),
	}
	if score > 0 {
		out["score"] = roundTwo(score)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}

// formatDate renders t as "Jan 02 15:04" in UTC.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("Jan 02 15:04")
}

// roundTwo rounds f to 2 decimal places.
func roundTwo(f float64) float64 {
	return math.Round(f*100) / 100
}

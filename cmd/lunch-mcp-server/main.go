package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultAPIURL = "http://localhost:8080"

type RecommendParams struct {
	Date   string `json:"date,omitempty" mcp:"target date in YYYY-MM-DD (default: today)"`
	Manual bool   `json:"manual,omitempty" mcp:"if true, pick from the whole list ignoring history rules"`
}

type AnalysisParams struct {
	Date string `json:"date,omitempty" mcp:"target date in YYYY-MM-DD (default: today)"`
}

type AddOrderParams struct {
	UserID   string `json:"user_id" mcp:"ID of the person ordering"`
	UserName string `json:"user_name" mcp:"display name of the person ordering"`
	MenuItem string `json:"menu_item" mcp:"menu item to order"`
	Quantity int    `json:"quantity,omitempty" mcp:"quantity (default: 1)"`
	Notes    string `json:"notes,omitempty" mcp:"free-form notes, e.g. large rice"`
}

type AddRestaurantParams struct {
	Name        string `json:"name" mcp:"restaurant name"`
	Genre       string `json:"genre" mcp:"cuisine genre"`
	Address     string `json:"address,omitempty" mcp:"street address"`
	URL         string `json:"url,omitempty" mcp:"website"`
	Description string `json:"description,omitempty" mcp:"short description"`
}

type EmptyParams struct{}

// LunchMCPServer exposes the lunch bot API as MCP tools.
type LunchMCPServer struct {
	api *LunchAPIClient
}

func NewLunchMCPServer(baseURL string) *LunchMCPServer {
	return &LunchMCPServer{api: NewLunchAPIClient(baseURL)}
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(format string, args ...interface{}) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "❌ " + fmt.Sprintf(format, args...)}},
	}
}

func (s *LunchMCPServer) RecommendLunch(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[RecommendParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	log.Printf("🍽️ MCP Server: recommending lunch (date=%q manual=%t)", args.Date, args.Manual)

	rec, err := s.api.Recommend(ctx, args.Date, args.Manual)
	if err != nil {
		return errorResult("Failed to select a restaurant: %v", err), nil
	}
	return textResult(formatRecommendation(rec)), nil
}

func (s *LunchMCPServer) SelectionAnalysis(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AnalysisParams]) (*mcp.CallToolResultFor[any], error) {
	report, err := s.api.Analysis(ctx, params.Arguments.Date)
	if err != nil {
		return errorResult("Failed to get selection analysis: %v", err), nil
	}
	return textResult(report), nil
}

func (s *LunchMCPServer) GetHistory(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[EmptyParams]) (*mcp.CallToolResultFor[any], error) {
	out, err := s.api.Raw(ctx, http.MethodGet, "/api/history", nil)
	if err != nil {
		return errorResult("Failed to get history: %v", err), nil
	}
	return textResult(out), nil
}

func (s *LunchMCPServer) ListOrders(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[EmptyParams]) (*mcp.CallToolResultFor[any], error) {
	active, open, err := s.api.ActiveSession(ctx)
	if err != nil {
		return errorResult("Failed to get orders: %v", err), nil
	}
	if active == nil {
		return textResult("ℹ️ No active order session today."), nil
	}
	return textResult(formatSession(*active, open)), nil
}

func (s *LunchMCPServer) AddOrder(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AddOrderParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if args.UserID == "" || strings.TrimSpace(args.MenuItem) == "" {
		return errorResult("user_id and menu_item are required"), nil
	}
	log.Printf("📝 MCP Server: adding order %q for %s", args.MenuItem, args.UserID)

	active, open, err := s.api.ActiveSession(ctx)
	if err != nil {
		return errorResult("Failed to get active session: %v", err), nil
	}
	if active == nil {
		return errorResult("No active order session today"), nil
	}
	if !open {
		return errorResult("Order intake is closed"), nil
	}
	o, err := s.api.AddOrder(ctx, active.ID, args)
	if err != nil {
		return errorResult("Failed to add order: %v", err), nil
	}
	return textResult(fmt.Sprintf("✅ %s: %s x%d at %s", o.UserName, o.MenuItem, o.Quantity, active.Restaurant.Name)), nil
}

func (s *LunchMCPServer) CollectOrders(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[EmptyParams]) (*mcp.CallToolResultFor[any], error) {
	log.Printf("📦 MCP Server: collecting orders")
	closed, err := s.api.CollectOrders(ctx)
	if err != nil {
		return errorResult("Failed to collect orders: %v", err), nil
	}
	return textResult(closed.Summary), nil
}

func (s *LunchMCPServer) CheckWeekday(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[EmptyParams]) (*mcp.CallToolResultFor[any], error) {
	out, err := s.api.Raw(ctx, http.MethodGet, "/api/weekday", nil)
	if err != nil {
		return errorResult("Failed to check business days: %v", err), nil
	}
	return textResult(out), nil
}

func (s *LunchMCPServer) ListRestaurants(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[EmptyParams]) (*mcp.CallToolResultFor[any], error) {
	out, err := s.api.Raw(ctx, http.MethodGet, "/api/restaurants", nil)
	if err != nil {
		return errorResult("Failed to list restaurants: %v", err), nil
	}
	return textResult(out), nil
}

func (s *LunchMCPServer) AddRestaurant(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AddRestaurantParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	if _, err := s.api.Raw(ctx, http.MethodPost, "/api/restaurants", args); err != nil {
		return errorResult("Failed to add restaurant: %v", err), nil
	}
	return textResult(fmt.Sprintf("✅ Added %s (%s)", args.Name, args.Genre)), nil
}

func formatRecommendation(rec apiRecommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Lunch pick (%s): %s\n", rec.SelectedBy, rec.Restaurant.Name)
	if rec.Restaurant.Genre != "" {
		fmt.Fprintf(&b, "🏷️ Genre: %s\n", rec.Restaurant.Genre)
	}
	if rec.Restaurant.Address != "" {
		fmt.Fprintf(&b, "📍 Address: %s\n", rec.Restaurant.Address)
	}
	if rec.Restaurant.URL != "" {
		fmt.Fprintf(&b, "🔗 %s\n", rec.Restaurant.URL)
	}
	if rec.Note != "" {
		fmt.Fprintf(&b, "⚠️ %s\n", rec.Note)
	}
	if rec.SessionID != "" {
		fmt.Fprintf(&b, "📝 Order session: %s\n", rec.SessionID)
	}
	return b.String()
}

func formatSession(s apiSession, intakeOpen bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s (session %s)\n", s.Restaurant.Name, s.ID)
	if intakeOpen {
		b.WriteString("🟢 Intake open\n")
	} else {
		b.WriteString("🔴 Intake closed\n")
	}
	if len(s.Orders) == 0 {
		b.WriteString("No orders yet.\n")
		return b.String()
	}
	for _, o := range s.Orders {
		fmt.Fprintf(&b, "• %s: %s x%d", o.UserName, o.MenuItem, o.Quantity)
		if o.Notes != "" {
			fmt.Fprintf(&b, " (%s)", o.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	apiURL := os.Getenv("LUNCH_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	log.Printf("🚀 Starting Lunch MCP Server (API: %s)", apiURL)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lunch-bot-mcp",
		Version: "1.0.0",
	}, nil)

	lunchServer := NewLunchMCPServer(apiURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_lunch",
		Description: "Selects a lunch restaurant, posts it to the team chat and opens an order session",
	}, lunchServer.RecommendLunch)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "selection_analysis",
		Description: "Reports which restaurants are excluded for a date and recent selection statistics",
	}, lunchServer.SelectionAnalysis)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_history",
		Description: "Returns the latest lunch selections with 7 and 30 day statistics",
	}, lunchServer.GetHistory)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_orders",
		Description: "Shows today's active order session and its orders",
	}, lunchServer.ListOrders)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_order",
		Description: "Adds an order to today's active order session",
	}, lunchServer.AddOrder)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect_orders",
		Description: "Closes today's order session and returns the consolidated summary",
	}, lunchServer.CollectOrders)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_weekday",
		Description: "Shows business days and holidays for the next 7 days",
	}, lunchServer.CheckWeekday)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_restaurants",
		Description: "Lists the built-in restaurant candidates for the active region",
	}, lunchServer.ListRestaurants)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_restaurant",
		Description: "Adds a restaurant to the built-in candidate list",
	}, lunchServer.AddRestaurant)

	log.Printf("📋 Registered %d tools", 9)
	log.Printf("🔗 Starting server on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the showroom to LLM assistants via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlimports/autovitrine/internal/catalog"
	"github.com/rlimports/autovitrine/internal/dealer"
)

// Server wraps the MCP server with the AutoVitrine tools.
type Server struct {
	mcp *server.MCPServer
	svc *dealer.Service
}

// New creates an MCP server with all showroom tools registered. The tool
// surface sees the public catalog: sold vehicles stay hidden, exactly as on
// the storefront.
func New(svc *dealer.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"AutoVitrine",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_vehicles",
		mcp.WithDescription("Search the public vehicle catalog by free text and category."),
		mcp.WithString("query", mcp.Description("Text matched against make and model (empty for all)")),
		mcp.WithString("category", mcp.Description("One of: all, new, used")),
	), s.searchVehicles)

	s.mcp.AddTool(mcp.NewTool("get_vehicle",
		mcp.WithDescription("Read the full record of one vehicle."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Vehicle id")),
	), s.getVehicle)

	s.mcp.AddTool(mcp.NewTool("submit_financing_lead",
		mcp.WithDescription("Submit a financing inquiry on behalf of a customer. "+
			"Read the lead contract first via the get_lead_contract tool or the "+
			"autovitrine://lead-format resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Customer full name")),
		mcp.WithString("phone", mcp.Required(), mcp.Description("Customer WhatsApp number")),
		mcp.WithString("city", mcp.Required(), mcp.Description("City / state, e.g. São Paulo, SP")),
		mcp.WithString("income", mcp.Required(), mcp.Description("Monthly income in BRL")),
		mcp.WithString("down_payment", mcp.Required(), mcp.Description("Proposed down payment in BRL")),
		mcp.WithString("notes", mcp.Description("Free-text notes")),
		mcp.WithString("context", mcp.Description("Optional interest context, e.g. the vehicle the customer asked about")),
	), s.submitFinancingLead)

	s.mcp.AddTool(mcp.NewTool("submit_sell_lead",
		mcp.WithDescription("Submit a trade-in/sell inquiry on behalf of a customer."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Customer full name")),
		mcp.WithString("phone", mcp.Required(), mcp.Description("Customer WhatsApp number")),
		mcp.WithString("car_model", mcp.Required(), mcp.Description("Trade-in vehicle model")),
		mcp.WithString("car_year", mcp.Required(), mcp.Description("Trade-in vehicle year")),
		mcp.WithString("car_km", mcp.Required(), mcp.Description("Trade-in vehicle mileage in km")),
		mcp.WithString("car_price", mcp.Required(), mcp.Description("Desired price in BRL")),
		mcp.WithString("photo_link", mcp.Description("Link to photos (Google Drive, Dropbox, ...)")),
		mcp.WithString("notes", mcp.Description("Free-text notes")),
		mcp.WithString("context", mcp.Description("Optional interest context")),
	), s.submitSellLead)

	s.mcp.AddTool(mcp.NewTool("showroom_stats",
		mcp.WithDescription("Summary counters: stock size and lead volume per type."),
	), s.showroomStats)

	s.mcp.AddTool(mcp.NewTool("get_lead_contract",
		mcp.WithDescription("Returns the lead details format contract. Call this before submitting leads."),
	), s.getLeadContract)

	s.mcp.AddResource(
		mcp.NewResource("autovitrine://lead-format", "Lead Format Contract",
			mcp.WithResourceDescription("How captured leads compose their details text."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLeadFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// optString reads an optional string argument, defaulting to empty.
func optString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func (s *Server) searchVehicles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := catalog.Query{
		Text: optString(req, "query"),
		Mode: catalog.ModePublic,
	}
	switch catalog.Category(optString(req, "category")) {
	case catalog.CategoryNew:
		q.Category = catalog.CategoryNew
	case catalog.CategoryUsed:
		q.Category = catalog.CategoryUsed
	default:
		q.Category = catalog.CategoryAll
	}

	vehicles, err := s.svc.ListVehicles(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(vehicles, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getVehicle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.svc.GetVehicle(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) submitFinancingLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := dealer.FinancingInput{
		Name:        optString(req, "name"),
		Phone:       optString(req, "phone"),
		City:        optString(req, "city"),
		Income:      optString(req, "income"),
		DownPayment: optString(req, "down_payment"),
		Notes:       optString(req, "notes"),
		Context:     optString(req, "context"),
	}
	res, err := s.svc.SubmitFinancing(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("lead created: %s\nhandoff: %s", res.Lead.ID, res.WhatsAppURL)), nil
}

func (s *Server) submitSellLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := dealer.SellInput{
		Name:      optString(req, "name"),
		Phone:     optString(req, "phone"),
		CarModel:  optString(req, "car_model"),
		CarYear:   optString(req, "car_year"),
		CarKm:     optString(req, "car_km"),
		CarPrice:  optString(req, "car_price"),
		PhotoLink: optString(req, "photo_link"),
		Notes:     optString(req, "notes"),
		Context:   optString(req, "context"),
	}
	res, err := s.svc.SubmitSell(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("lead created: %s\nhandoff: %s", res.Lead.ID, res.WhatsAppURL)), nil
}

func (s *Server) showroomStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(st, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getLeadContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(LeadFormatContract), nil
}

func (s *Server) readLeadFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "autovitrine://lead-format",
			MIMEType: "text/markdown",
			Text:     LeadFormatContract,
		},
	}, nil
}

package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rlimports/autovitrine/internal/catalog"
	"github.com/rlimports/autovitrine/internal/dealer"
	"github.com/rlimports/autovitrine/internal/testutil"
)

func testServer(t *testing.T) (*Server, *dealer.Service) {
	t.Helper()
	svc := dealer.NewService(testutil.TestStore(t), testutil.Logger(), nil)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handlers are
	// exercised directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_vehicles":
		result, err = srv.searchVehicles(ctx, req)
	case "get_vehicle":
		result, err = srv.getVehicle(ctx, req)
	case "submit_financing_lead":
		result, err = srv.submitFinancingLead(ctx, req)
	case "submit_sell_lead":
		result, err = srv.submitSellLead(ctx, req)
	case "showroom_stats":
		result, err = srv.showroomStats(ctx, req)
	case "get_lead_contract":
		result, err = srv.getLeadContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchVehicles(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "search_vehicles", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Porsche") {
		t.Errorf("search result missing seeded stock: %q", text)
	}
	// The tool sees the public catalog; the sold unit stays hidden.
	if strings.Contains(text, "X6 M Competition") {
		t.Error("sold vehicle leaked into tool results")
	}

	r = callTool(t, srv, "search_vehicles", map[string]interface{}{
		"query":    "mercedes",
		"category": "used",
	})
	text = resultText(r)
	if !strings.Contains(text, "C300") || strings.Contains(text, "Porsche") {
		t.Errorf("filtered search = %q", text)
	}
}

func TestGetVehicle(t *testing.T) {
	srv, svc := testServer(t)

	vehicles, err := svc.ListVehicles(context.Background(), catalog.Query{Mode: catalog.ModePublic})
	if err != nil {
		t.Fatal(err)
	}
	r := callTool(t, srv, "get_vehicle", map[string]interface{}{"id": vehicles[0].ID})
	if r.IsError {
		t.Fatalf("get_vehicle errored: %q", resultText(r))
	}
	if !strings.Contains(resultText(r), vehicles[0].Model) {
		t.Errorf("result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_vehicle", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing vehicle")
	}
}

func TestSubmitFinancingLead(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "submit_financing_lead", map[string]interface{}{
		"name":         "Ana Souza",
		"phone":        "11912345678",
		"city":         "São Paulo",
		"income":       "12000",
		"down_payment": "40000",
	})
	text := resultText(r)
	if r.IsError || !strings.HasPrefix(text, "lead created: ") {
		t.Fatalf("result = %q", text)
	}
	if !strings.Contains(text, "https://wa.me/") {
		t.Errorf("handoff link missing: %q", text)
	}

	leads, err := svc.ListLeads(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 1 {
		t.Errorf("leads = %d, want 1", len(leads))
	}
}

func TestSubmitFinancingLeadValidation(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "submit_financing_lead", map[string]interface{}{
		"name": "Ana Souza",
	})
	if !r.IsError {
		t.Error("expected validation error for incomplete lead")
	}
}

func TestSubmitSellLead(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "submit_sell_lead", map[string]interface{}{
		"name":      "Carlos Lima",
		"phone":     "11987654321",
		"car_model": "Honda Civic",
		"car_year":  "2020",
		"car_km":    "50000",
		"car_price": "80000",
	})
	if r.IsError {
		t.Fatalf("result = %q", resultText(r))
	}
}

func TestShowroomStats(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "showroom_stats", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "\"total_vehicles\": 4") {
		t.Errorf("stats = %q", text)
	}
}

func TestGetLeadContract(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_lead_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "Cidade:") {
		t.Errorf("contract = %q", resultText(r))
	}
}

func TestReadLeadFormatResource(t *testing.T) {
	srv, _ := testServer(t)

	contents, err := srv.readLeadFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.Text != LeadFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}

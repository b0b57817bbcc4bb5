package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"favornet/server/internal/handlers"
	"favornet/server/internal/models"
	"favornet/server/internal/repository"
	"favornet/server/internal/routes"
	"favornet/server/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newApp(t *testing.T) (*fiber.App, *repository.Memory) {
	t.Helper()

	store := repository.NewMemory()
	app := fiber.New()
	routes.SetupRoutes(app, handlers.New(service.New(store)), routes.Options{
		Gatherer: prometheus.NewRegistry(),
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func signup(t *testing.T, app *fiber.App, name, number string) models.User {
	t.Helper()

	status, env := call(t, app, "POST", "/api/v1/users/signup", map[string]string{
		"mobileNumber": number,
		"fullName":     name,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d, error %q", name, status, env.Error)
	}
	var u models.User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return u
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/metrics", nil))
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequestLifecycle(t *testing.T) {
	app, _ := newApp(t)
	alice := signup(t, app, "Alice", "5550100001")
	bob := signup(t, app, "Bob", "5550100002")
	carol := signup(t, app, "Carol", "5550100003")

	status, env := call(t, app, "POST", "/api/v1/users/"+alice.ID+"/connections", map[string]string{
		"connectionName":   "Bob",
		"connectionNumber": bob.Number,
	})
	if status != http.StatusOK {
		t.Fatalf("add connection: %d %q", status, env.Error)
	}

	status, env = call(t, app, "POST", "/api/v1/users/"+alice.ID+"/requests", map[string]any{
		"request": map[string]any{
			"date":        "2024-06-10T18:00:00Z",
			"description": "water the plants",
			"duration":    "30 minutes",
			"location":    "Elm St",
			"network": []map[string]any{
				{"header": "Connections", "data": map[string]string{"_id": bob.ID}},
			},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("create request: %d %q", status, env.Error)
	}
	var formatted models.UserResponse
	if err := json.Unmarshal(env.Data, &formatted); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if len(formatted.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(formatted.Requests))
	}
	requestID := formatted.Requests[0].ID

	status, env = call(t, app, "GET", "/api/v1/users/"+bob.ID+"/inbox", nil)
	if status != http.StatusOK {
		t.Fatalf("inbox: %d %q", status, env.Error)
	}
	var inbox []models.InboxRequest
	if err := json.Unmarshal(env.Data, &inbox); err != nil {
		t.Fatalf("decode inbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].UserName != "Alice" {
		t.Fatalf("inbox = %+v", inbox)
	}

	status, env = call(t, app, "POST", "/api/v1/requests/"+requestID+"/accept", map[string]string{"acceptId": carol.ID})
	if status != http.StatusForbidden || env.Success {
		t.Errorf("ineligible accept: %d %q", status, env.Error)
	}

	status, env = call(t, app, "POST", "/api/v1/requests/"+requestID+"/accept", map[string]string{"acceptId": bob.ID})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("accept: %d %q", status, env.Error)
	}

	status, env = call(t, app, "POST", "/api/v1/requests/"+requestID+"/accept", map[string]string{"acceptId": bob.ID})
	if status != http.StatusBadRequest || env.Error != "Request has already been accepted" {
		t.Errorf("second accept: %d %q", status, env.Error)
	}

	status, env = call(t, app, "GET", "/api/v1/requests/"+requestID, nil)
	if status != http.StatusOK {
		t.Fatalf("check request: %d %q", status, env.Error)
	}
	var check struct {
		AcceptedID *string `json:"accepted_id"`
	}
	if err := json.Unmarshal(env.Data, &check); err != nil {
		t.Fatalf("decode check: %v", err)
	}
	if check.AcceptedID == nil || *check.AcceptedID != bob.ID {
		t.Errorf("accepted_id = %v, want %s", check.AcceptedID, bob.ID)
	}
}

func TestErrorMapping(t *testing.T) {
	app, _ := newApp(t)
	alice := signup(t, app, "Alice", "5550100001")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"duplicate signup", "POST", "/api/v1/users/signup", map[string]string{"mobileNumber": "5550100001", "fullName": "Again"}, 400},
		{"unknown user", "GET", "/api/v1/users/00000000-0000-0000-0000-000000000000", nil, 404},
		{"unknown request", "GET", "/api/v1/requests/nope", nil, 404},
		{"missing network", "POST", "/api/v1/users/" + alice.ID + "/requests", map[string]any{
			"request": map[string]string{"date": "2024-06-10", "description": "d", "duration": "1h", "location": "x"},
		}, 400},
		{"unknown header", "POST", "/api/v1/users/" + alice.ID + "/requests", map[string]any{
			"request": map[string]any{
				"date": "2024-06-10", "description": "d", "duration": "1h", "location": "x",
				"network": []map[string]any{{"header": "Coworkers", "data": map[string]string{"_id": alice.ID}}},
			},
		}, 400},
		{"missing request body", "POST", "/api/v1/users/" + alice.ID + "/requests", map[string]any{}, 400},
		{"bad coordinates", "GET", "/api/v1/communityGroups/north/south", nil, 400},
		{"missing member ids", "POST", "/api/v1/users/" + alice.ID + "/groups", map[string]string{"name": "g"}, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, tt.method, tt.path, tt.body)
			if status != tt.status {
				t.Errorf("status = %d, want %d (%q)", status, tt.status, env.Error)
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected an error envelope, got %+v", env)
			}
		})
	}
}

func TestGroupsAndCommunityGroups(t *testing.T) {
	app, store := newApp(t)
	alice := signup(t, app, "Alice", "5550100001")
	bob := signup(t, app, "Bob", "5550100002")

	cg := &models.CommunityGroup{Name: "Park cleanup", Location: models.Location{Lat: 39.78, Lng: -89.65}}
	if err := store.AddCommunityGroup(context.Background(), cg); err != nil {
		t.Fatalf("AddCommunityGroup: %v", err)
	}

	status, env := call(t, app, "POST", "/api/v1/users/"+alice.ID+"/groups", map[string]any{
		"name":      "Neighbours",
		"memberIds": []string{bob.ID},
	})
	if status != http.StatusOK {
		t.Fatalf("upsert group: %d %q", status, env.Error)
	}
	var formatted models.UserResponse
	if err := json.Unmarshal(env.Data, &formatted); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if len(formatted.Groups) != 1 {
		t.Fatalf("groups = %+v", formatted.Groups)
	}

	status, env = call(t, app, "DELETE", "/api/v1/users/"+bob.ID+"/groups/"+formatted.Groups[0].ID, nil)
	if status != http.StatusForbidden {
		t.Errorf("delete by non-owner: %d %q", status, env.Error)
	}

	status, env = call(t, app, "POST", "/api/v1/users/"+alice.ID+"/communityGroups", map[string]string{"groupId": cg.ID})
	if status != http.StatusOK {
		t.Fatalf("join community group: %d %q", status, env.Error)
	}

	status, env = call(t, app, "GET", "/api/v1/communityGroups/39.78/-89.65", nil)
	if status != http.StatusOK {
		t.Fatalf("nearby: %d %q", status, env.Error)
	}
	var nearby []models.NearbyCommunityGroup
	if err := json.Unmarshal(env.Data, &nearby); err != nil {
		t.Fatalf("decode nearby: %v", err)
	}
	if len(nearby) != 1 || nearby[0].Distance != "0.0" {
		t.Errorf("nearby = %+v", nearby)
	}
}

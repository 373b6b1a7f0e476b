package attendance

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Intechlligent1/AttendanceSystem/internal/cache"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

func newTestService(t *testing.T) (*Service, model.Backends) {
	t.Helper()
	backs := newTestBackends(t)
	svc, err := NewService(ServerConf{}, backs, cache.New(), nil)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc, backs
}

func postScan(t *testing.T, svc *Service, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := svc.server.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("could not read response body: %v", err)
	}
	var payload map[string]any
	if err = json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, raw)
	}
	return res.StatusCode, payload
}

func TestScanEndpoint(t *testing.T) {
	svc, backs := newTestService(t)
	if _, err := backs.Roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	status, payload := postScan(t, svc, `{"card_id":"ab12"}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["status"] != "success" || payload["student_name"] != "Ada" {
		t.Errorf("unexpected payload: %v", payload)
	}
	ts, _ := payload["timestamp"].(string)
	if len(ts) != len("2006-01-02 15:04:05") {
		t.Errorf("unexpected timestamp format: %q", ts)
	}

	status, payload = postScan(t, svc, `{"card_id":"ZZ99"}`)
	if status != 404 {
		t.Fatalf("expected 404, got %d: %v", status, payload)
	}
	if payload["status"] != "error" || payload["message"] != "Card not registered" {
		t.Errorf("unexpected payload: %v", payload)
	}

	count, err := backs.Ledger.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly the accepted scan in the ledger, got %d", count)
	}
}

func TestScanEndpointDisabled(t *testing.T) {
	svc, backs := newTestService(t)
	if _, err := backs.Roster.Create(model.AddIdentity{Name: "Ada", BadgeCode: "AB12"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := backs.KV.SetAny(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, false); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	status, payload := postScan(t, svc, `{"card_id":"AB12"}`)
	if status != 503 {
		t.Fatalf("expected 503, got %d: %v", status, payload)
	}
	if payload["message"] != "Scanning is disabled" {
		t.Errorf("unexpected payload: %v", payload)
	}

	// Re-enabling restores ingestion
	if err := backs.KV.SetAny(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	status, _ = postScan(t, svc, `{"card_id":"AB12"}`)
	if status != 200 {
		t.Fatalf("expected 200 after re-enable, got %d", status)
	}
}

func TestScanEndpointBadBody(t *testing.T) {
	svc, _ := newTestService(t)
	status, payload := postScan(t, svc, `{not json`)
	if status != 400 {
		t.Fatalf("expected 400, got %d: %v", status, payload)
	}
}

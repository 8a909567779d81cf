package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twin-paylater/pkg/store"
	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
)

type stubState struct {
	agreements  map[string]string
	resetCalled bool
}

func newStubState() *stubState {
	return &stubState{agreements: map[string]string{"agr_1": "ACTIVE"}}
}

func (s *stubState) Snapshot() any {
	return s.agreements
}

func (s *stubState) LoadState(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.agreements = m
	return nil
}

func (s *stubState) Reset() {
	s.resetCalled = true
	s.agreements = map[string]string{"agr_1": "ACTIVE"}
}

type stubFlusher struct {
	flushErr error
	flushed  bool
}

func (s *stubFlusher) FlushWebhooks() error {
	s.flushed = true
	return s.flushErr
}

func setupTestServer(state StateStore, clock *store.Clock, flusher WebhookFlusher) (*httptest.Server, *twincore.Middleware) {
	cfg := &twincore.Config{Name: "test-admin"}
	mw := twincore.NewMiddleware(cfg, nil)

	h := NewHandler(state, mw, clock)
	if flusher != nil {
		h.SetFlusher(flusher)
	}

	r := chi.NewRouter()
	h.Routes(r)
	return httptest.NewServer(r), mw
}

func TestHandleHealth(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), store.NewClock(), nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("expected status=ok, got %+v", body)
	}
}

func TestHandleReset(t *testing.T) {
	state := newStubState()
	clk := store.NewClock()
	clk.Advance(time.Hour)

	srv, mw := setupTestServer(state, clk, nil)
	defer srv.Close()
	mw.Faults.Set("/api/paylater/users", twincore.FaultConfig{StatusCode: 500})
	mw.ReqLog.Add(twincore.RequestLogEntry{Method: "GET", Path: "/x"})

	resp, err := http.Post(srv.URL+"/admin/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !state.resetCalled {
		t.Error("expected state Reset to be called")
	}
	if clk.Offset() != 0 {
		t.Errorf("expected clock offset reset, got %v", clk.Offset())
	}
	if len(mw.Faults.All()) != 0 {
		t.Error("expected faults cleared on reset")
	}
	if len(mw.ReqLog.Entries()) != 0 {
		t.Errorf("expected request log cleared, got %d entries", len(mw.ReqLog.Entries()))
	}
}

func TestHandleGetState(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/state")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["agr_1"] != "ACTIVE" {
		t.Errorf("unexpected snapshot: %+v", body)
	}
}

func TestHandleLoadState(t *testing.T) {
	state := newStubState()
	srv, _ := setupTestServer(state, nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/state", "application/json", strings.NewReader(`{"agr_2":"ACTIVE"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if state.agreements["agr_2"] != "ACTIVE" {
		t.Errorf("expected state replaced, got %+v", state.agreements)
	}
}

func TestHandleLoadStateInvalid(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/state", "application/json", strings.NewReader("{bad json"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleInjectFault(t *testing.T) {
	srv, mw := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	body := `{"status_code":503,"rate":1.0}`
	resp, err := http.Post(srv.URL+"/admin/fault/eligibility", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	// The handler prepends "/" to the endpoint param.
	fault := mw.Faults.Check("/eligibility")
	if fault == nil {
		t.Fatal("expected fault to be registered")
	}
	if fault.StatusCode != 503 {
		t.Errorf("expected status 503, got %d", fault.StatusCode)
	}
}

func TestHandleInjectFaultInvalidBody(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/fault/test", "application/json", strings.NewReader("{bad"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleRemoveFault(t *testing.T) {
	srv, mw := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()
	mw.Faults.Set("/test", twincore.FaultConfig{StatusCode: 500, Rate: 1.0})

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/admin/fault/test", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if mw.Faults.Check("/test") != nil {
		t.Error("expected fault to be removed")
	}
}

func TestHandleRemoveFaultNotFound(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/admin/fault/nonexistent", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleListFaults(t *testing.T) {
	srv, mw := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()
	mw.Faults.Set("/a", twincore.FaultConfig{StatusCode: 500, Rate: 1.0})

	resp, err := http.Get(srv.URL + "/admin/faults")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]twincore.FaultConfig
	json.NewDecoder(resp.Body).Decode(&body)
	if _, ok := body["/a"]; !ok {
		t.Errorf("expected fault /a in listing, got %+v", body)
	}
}

func TestHandleGetRequests(t *testing.T) {
	srv, mw := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()
	mw.ReqLog.Add(twincore.RequestLogEntry{Method: "GET", Path: "/test"})

	resp, err := http.Get(srv.URL + "/admin/requests")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body []twincore.RequestLogEntry
	json.NewDecoder(resp.Body).Decode(&body)
	if len(body) != 1 || body[0].Path != "/test" {
		t.Errorf("unexpected request log: %+v", body)
	}
}

func TestHandleTimeAdvance(t *testing.T) {
	clk := store.NewClock()
	srv, _ := setupTestServer(newStubState(), clk, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/time/advance", "application/json", strings.NewReader(`{"duration":"1h"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if clk.Offset() != time.Hour {
		t.Errorf("expected 1h offset, got %v", clk.Offset())
	}

	var result map[string]any
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "advanced" {
		t.Errorf("expected status=advanced, got %v", result["status"])
	}
}

func TestHandleTimeAdvanceNoClock(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/time/advance", "application/json", strings.NewReader(`{"duration":"1h"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 when no clock configured, got %d", resp.StatusCode)
	}
}

func TestHandleTimeAdvanceInvalidDuration(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), store.NewClock(), nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/time/advance", "application/json", strings.NewReader(`{"duration":"soon"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid duration, got %d", resp.StatusCode)
	}
}

func TestHandleGetTime(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), store.NewClock(), nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/time")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	for _, field := range []string{"real", "simulated", "offset"} {
		if _, ok := body[field]; !ok {
			t.Errorf("expected %q field", field)
		}
	}
}

func TestHandleGetTimeNoClock(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/time")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if _, ok := body["real"]; !ok {
		t.Error("expected 'real' field")
	}
	if _, ok := body["simulated"]; ok {
		t.Error("did not expect 'simulated' field when no clock")
	}
}

func TestHandleFlushWebhooksNoFlusher(t *testing.T) {
	srv, _ := setupTestServer(newStubState(), nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/webhooks/flush", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "no webhooks configured" {
		t.Errorf("unexpected status: %s", body["status"])
	}
}

func TestHandleFlushWebhooks(t *testing.T) {
	flusher := &stubFlusher{}
	srv, _ := setupTestServer(newStubState(), nil, flusher)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/webhooks/flush", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !flusher.flushed {
		t.Error("expected FlushWebhooks to be called")
	}
}

func TestHandleFlushWebhooksError(t *testing.T) {
	flusher := &stubFlusher{flushErr: fmt.Errorf("delivery failed")}
	srv, _ := setupTestServer(newStubState(), nil, flusher)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/admin/webhooks/flush", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
}

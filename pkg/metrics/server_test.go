package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesRegistry(t *testing.T) {
	rec := NewPrometheus()
	rec.RecordTick()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "signal_sim_ticks_total") {
		t.Errorf("metrics body missing ticks counter:\n%s", body)
	}
}

func TestServeAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- Serve(context.Background(), ln.Addr().String()) }()

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("expected an error for an address already in use")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return for an address already in use")
	}
}

func TestServeInvalidAddress(t *testing.T) {
	if err := Serve(context.Background(), "127.0.0.1:-1"); err == nil {
		t.Error("expected an error for an invalid port")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	NewPrometheus()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		cancel()
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "signal_sim_ticks_total") {
		t.Errorf("metrics body missing ticks counter:\n%s", body)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

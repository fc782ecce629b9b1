package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Roelanb/wacheck/internal/api"
	"github.com/Roelanb/wacheck/internal/backend"
	"github.com/Roelanb/wacheck/internal/console"
	"github.com/Roelanb/wacheck/internal/controller"
)

func TestControllerAgainstMockBackend(t *testing.T) {
	log := zap.NewNop().Sugar()
	srv := api.New(log, "127.0.0.1:0", time.Millisecond)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	defer srv.Jobs().Close()

	var out bytes.Buffer
	view := console.New(&out)
	client := backend.New(ts.URL+"/", nil, 5*time.Second, log)
	ctl := controller.New(client, view,
		controller.WithLogger(log),
		controller.WithPollIntervals(5*time.Millisecond, 10*time.Millisecond),
		controller.WithNotificationTTL(time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctl.CheckSessionStatus(ctx)
	if !ctl.SessionInitialized() {
		t.Fatalf("session should be ready")
	}
	ctl.CheckSingleNumber(ctx, "15551234567")
	if !ctl.CheckBatchNumbers(ctx, "15551234567\n  1234567890 \n\n123") {
		t.Fatalf("batch did not start")
	}
	ctl.Wait()

	if ctl.BatchRunning() {
		t.Fatalf("batch still marked running")
	}
	total, errs := view.Rows()
	if total != 4 || errs != 1 {
		t.Fatalf("rows=%d errors=%d\n%s", total, errs, out.String())
	}
	if !strings.Contains(out.String(), "Completed: 1 registered, 1 not registered, 1 errors") {
		t.Fatalf("missing summary:\n%s", out.String())
	}
}

func TestControllerTreatsErrorBodiesAsBackendAnswers(t *testing.T) {
	log := zap.NewNop().Sugar()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"initialized":false,"error":"Session not initialized"}`))
	})
	mux.HandleFunc("/api/initialize", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"Chrome driver failed"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	var out bytes.Buffer
	client := backend.New(ts.URL, nil, 5*time.Second, log)
	ctl := controller.New(client, console.New(&out), controller.WithLogger(log))

	ctl.CheckSessionStatus(context.Background())
	ctl.InitializeSession(context.Background())

	got := out.String()
	if !strings.Contains(got, "Session Not Ready") || !strings.Contains(got, "Failed to initialize session") {
		t.Fatalf("output:\n%s", got)
	}
	if strings.Contains(got, "Connection") {
		t.Fatalf("error bodies reported as connection failures:\n%s", got)
	}
}

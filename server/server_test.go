package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"

	"github.com/pdrpinto/dijkstra"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, options ...Option) *gin.Engine {
	t.Helper()
	bounds := dijkstra.Bounds{Rows: dijkstra.Range{Lo: 0, Hi: 10}, Cols: dijkstra.Range{Lo: 0, Hi: 10}}
	oracle := dijkstra.NewDenseOracle(bounds)
	oracle.Block(dijkstra.Cell{Row: 5, Col: 4})
	g, err := dijkstra.NewGrid(bounds, oracle)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(g, append([]Option{WithLogger(logger)}, options...)...).Router()
}

func do(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestServer(t)
	w := do(router, http.MethodPost, "/api/search",
		`{"start":{"row":0,"col":0},"goal":{"row":0,"col":3},"frames":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Found || len(resp.Route) != 4 || resp.TotalCost != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Frames) != len(resp.Route) {
		t.Errorf("got %d frames for %d steps", len(resp.Frames), len(resp.Route))
	}
}

func TestSearchEndpointErrors(t *testing.T) {
	router := newTestServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"start":`, http.StatusBadRequest},
		{"missing goal", `{"start":{"row":0,"col":0}}`, http.StatusBadRequest},
		{"out of bounds", `{"start":{"row":0,"col":0},"goal":{"row":10,"col":0}}`, http.StatusUnprocessableEntity},
		{"obstructed", `{"start":{"row":5,"col":4},"goal":{"row":0,"col":0}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(router, http.MethodPost, "/api/search", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestSearchEndpointBrotli(t *testing.T) {
	router := newTestServer(t)
	w := do(router, http.MethodPost, "/api/search",
		`{"start":{"row":0,"col":0},"goal":{"row":9,"col":9},"frames":true}`,
		"Accept-Encoding", "gzip, br;q=1.0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if enc := w.Header().Get("Content-Encoding"); enc != "br" {
		t.Fatalf("Content-Encoding = %q", enc)
	}
	body, err := io.ReadAll(brotli.NewReader(w.Body))
	if err != nil {
		t.Fatalf("brotli decode: %v", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Found || resp.Route[len(resp.Route)-1] != (dijkstra.Cell{Row: 9, Col: 9}) {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGridEndpoint(t *testing.T) {
	router := newTestServer(t)
	w := do(router, http.MethodGet, "/api/grid", "")
	var resp gridResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Blocked) != 1 || resp.Blocked[0] != (dijkstra.Cell{Row: 5, Col: 4}) {
		t.Errorf("blocked = %v", resp.Blocked)
	}
	if resp.Costs != dijkstra.DefaultCosts {
		t.Errorf("costs = %+v", resp.Costs)
	}
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestServer(t)
	w := do(router, http.MethodPost, "/api/sessions", `{"start":{"row":0,"col":0},"goal":{"row":2,"col":2}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var snap snapshotResponse
	for i := 0; i < 100 && !snap.Done; i++ {
		w = do(router, http.MethodPost, "/api/sessions/"+created.ID+"/step", "")
		if w.Code != http.StatusOK {
			t.Fatalf("step status = %d", w.Code)
		}
		snap = snapshotResponse{}
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	if !snap.Found || len(snap.Route) != 3 {
		t.Fatalf("final snapshot = %+v", snap)
	}

	if w = do(router, http.MethodDelete, "/api/sessions/"+created.ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w = do(router, http.MethodPost, "/api/sessions/"+created.ID+"/step", ""); w.Code != http.StatusNotFound {
		t.Errorf("step after delete status = %d", w.Code)
	}
	if w = do(router, http.MethodPost, "/api/sessions/not-a-uuid/step", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", w.Code)
	}
}

func TestSessionLimit(t *testing.T) {
	router := newTestServer(t, WithMaxSessions(1))
	body := `{"start":{"row":0,"col":0},"goal":{"row":2,"col":2}}`
	if w := do(router, http.MethodPost, "/api/sessions", body); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}
	if w := do(router, http.MethodPost, "/api/sessions", body); w.Code != http.StatusServiceUnavailable {
		t.Errorf("second create status = %d, want 503", w.Code)
	}
}

func TestIdleSessionsExpire(t *testing.T) {
	bounds := dijkstra.Bounds{Rows: dijkstra.Range{Lo: 0, Hi: 4}, Cols: dijkstra.Range{Lo: 0, Hi: 4}}
	g, err := dijkstra.NewGrid(bounds, dijkstra.NewDenseOracle(bounds))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	srv := New(g,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMaxSessions(2),
		WithSessionTTL(time.Minute))
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return clock }
	router := srv.Router()

	body := `{"start":{"row":1,"col":1},"goal":{"row":1,"col":1}}`
	for i := 0; i < 2; i++ {
		w := do(router, http.MethodPost, "/api/sessions", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, w.Code)
		}
		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w = do(router, http.MethodPost, "/api/sessions/"+created.ID+"/step", "")
		var snap snapshotResponse
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !snap.Done || !snap.Found {
			t.Fatalf("session %d not finished: %+v", i, snap)
		}
	}

	clock = clock.Add(30 * time.Second)
	if w := do(router, http.MethodPost, "/api/sessions", body); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("create within TTL status = %d, want 503", w.Code)
	}

	clock = clock.Add(2 * time.Minute)
	if w := do(router, http.MethodPost, "/api/sessions", body); w.Code != http.StatusCreated {
		t.Fatalf("create after TTL status = %d body = %s", w.Code, w.Body)
	}
	srv.mu.Lock()
	live := len(srv.sessions)
	srv.mu.Unlock()
	if live != 1 {
		t.Errorf("live sessions = %d, want 1", live)
	}
}

func TestStepReturnsFrontierOnRequest(t *testing.T) {
	router := newTestServer(t)
	w := do(router, http.MethodPost, "/api/sessions", `{"start":{"row":0,"col":0},"goal":{"row":9,"col":9}}`)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var snap snapshotResponse
	w = do(router, http.MethodPost, "/api/sessions/"+created.ID+"/step", "")
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Open) != 0 || len(snap.Discovered) != 3 {
		t.Errorf("plain step: open %v, discovered %v", snap.Open, snap.Discovered)
	}

	snap = snapshotResponse{}
	w = do(router, http.MethodPost, "/api/sessions/"+created.ID+"/step?open=true", "")
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Open) == 0 {
		t.Errorf("step with open=true returned no frontier: %+v", snap)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestServer(t, WithAllowOrigin("http://localhost:3000"))
	w := do(router, http.MethodOptions, "/api/search", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestServer(t)
	if w := do(router, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
	do(router, http.MethodPost, "/api/search", `{"start":{"row":0,"col":0},"goal":{"row":1,"col":1}}`)
	w := do(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("dijkstra_search_total")) {
		t.Errorf("metrics missing search counter: status %d", w.Code)
	}
}

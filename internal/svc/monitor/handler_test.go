package monitor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"streamwire/internal/svc/ingest"

	"github.com/gorilla/websocket"
)

type fixedSource struct {
	snap ingest.Snapshot
}

func (s fixedSource) Snapshot() ingest.Snapshot {
	return s.snap
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	handler := NewHandler(fixedSource{}, time.Second)

	req := httptest.NewRequest("POST", "/ws/stats", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestHandlerPushesSnapshot(t *testing.T) {
	source := fixedSource{snap: ingest.Snapshot{Frames: 3, Bytes: 12, LastChannel: 5}}
	handler := NewHandler(source, 50*time.Millisecond)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	var got ingest.Snapshot
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got != source.snap {
		t.Errorf("snapshot = %+v, want %+v", got, source.snap)
	}

	// Periodic updates keep arriving without client requests.
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("second ReadJSON failed: %v", err)
	}
}

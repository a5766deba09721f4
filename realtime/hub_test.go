package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	server := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), "booking.created", map[string]string{"bookingId": "42"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Event != "booking.created" {
		t.Fatalf("event = %s", msg.Event)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok || payload["bookingId"] != "42" {
		t.Fatalf("payload = %#v", msg.Payload)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:9000"})
	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "http://evil.example")
	if check(req) {
		t.Fatalf("unexpected origin accepted")
	}
	req.Header.Set("Origin", "http://localhost:9000")
	if !check(req) {
		t.Fatalf("allowed origin rejected")
	}
}

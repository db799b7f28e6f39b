package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hirelane/ats/internal/api/middleware"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
	"github.com/hirelane/ats/internal/core/service"
	"github.com/hirelane/ats/internal/infrastructure/db/memory"
)

func TestChatHub_DeliversOnlyToParticipants(t *testing.T) {
	hub := NewChatHub(0, zerolog.Nop())
	adminCh, cancelAdmin := hub.subscribe("2")
	defer cancelAdmin()
	otherCh, cancelOther := hub.subscribe("c2")
	defer cancelOther()

	hub.Observe(ports.Change{
		Version: 1,
		Changed: []ports.Collection{ports.CollectionChatMessages},
		Snapshot: domain.Dataset{ChatMessages: []domain.ChatMessage{
			{ID: "m1", SenderID: "c1", ReceiverID: "2", Message: "hi"},
		}},
	})

	select {
	case m := <-adminCh:
		if m.ID != "m1" {
			t.Fatalf("unexpected message: %+v", m)
		}
	default:
		t.Fatal("participant did not receive the message")
	}
	select {
	case m := <-otherCh:
		t.Fatalf("non-participant received %+v", m)
	default:
	}
}

func TestChatHub_SkipsHistoryAndStaleVersions(t *testing.T) {
	history := []domain.ChatMessage{{ID: "old", SenderID: "2", ReceiverID: "c1"}}
	hub := NewChatHub(len(history), zerolog.Nop())
	ch, cancel := hub.subscribe("c1")
	defer cancel()

	next := append(history, domain.ChatMessage{ID: "new", SenderID: "2", ReceiverID: "c1"})
	change := ports.Change{
		Version:  5,
		Changed:  []ports.Collection{ports.CollectionChatMessages},
		Snapshot: domain.Dataset{ChatMessages: next},
	}
	hub.Observe(change)
	change.Version = 4
	hub.Observe(change)

	if got := len(ch); got != 1 {
		t.Fatalf("expected exactly one message, got %d", got)
	}
	if m := <-ch; m.ID != "new" {
		t.Fatalf("expected the new message, got %+v", m)
	}
}

func TestChatHub_IgnoresOtherCollections(t *testing.T) {
	hub := NewChatHub(0, zerolog.Nop())
	ch, cancel := hub.subscribe("c1")
	defer cancel()

	hub.Observe(ports.Change{
		Version:  1,
		Changed:  []ports.Collection{ports.CollectionPositions},
		Snapshot: domain.Dataset{ChatMessages: []domain.ChatMessage{{ID: "m1", SenderID: "2", ReceiverID: "c1"}}},
	})
	if len(ch) != 0 {
		t.Fatal("expected no delivery for a positions-only change")
	}
}

func TestChatHub_CloseEndsSubscriptions(t *testing.T) {
	hub := NewChatHub(0, zerolog.Nop())
	ch, cancel := hub.subscribe("1")
	hub.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	if hub.Subscribers() != 0 {
		t.Fatal("expected no subscribers after Close")
	}
}

func TestChatHandler_StreamPushesNewMessages(t *testing.T) {
	dataset := memory.DemoDataset(time.Now().UTC())
	store := memory.NewStore(dataset)
	hub := NewChatHub(len(dataset.ChatMessages), zerolog.Nop())
	store.Subscribe(hub.Observe)
	chat := service.NewChatService(store, zerolog.Nop())
	h := NewChatHandler(chat, hub, nil, zerolog.Nop())

	e := echo.New()
	e.GET("/stream", h.Stream, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ActorKey, techCorp)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := chat.Send(context.Background(), userAdmin, "c1", "Interview moved to 3pm"); err != nil {
		t.Fatalf("send: %v", err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.ChatMessage
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.SenderID != "2" || got.ReceiverID != "c1" || got.Message != "Interview moved to 3pm" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestChatHandler_StreamRejectsForeignOrigin(t *testing.T) {
	hub := NewChatHub(0, zerolog.Nop())
	h := NewChatHandler(nil, hub, []string{"https://ats.example.com"}, zerolog.Nop())

	e := echo.New()
	e.GET("/stream", h.Stream, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ActorKey, techCorp)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 handshake response, got %+v", resp)
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thereayou/memorylane/internal/models"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startHub serves connections for the user id given in the "user" query
// parameter.
func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()

	hub := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, userID)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(func() {
		cancel()
		<-hub.Done()
		server.Close()
	})
	return hub, server, cancel
}

func dial(t *testing.T, server *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?user=" + strconv.FormatInt(userID, 10)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func TestPublishReachesEveryConnectionOfAddressee(t *testing.T) {
	hub, server, _ := startHub(t)

	first := dial(t, server, 7)
	second := dial(t, server, 7)
	other := dial(t, server, 8)
	waitFor(t, func() bool { return hub.ConnectionCount() == 3 })

	related := int64(11)
	hub.Publish(models.Notification{
		ID:        1,
		UserID:    7,
		Type:      models.NotificationTypeFriendRequest,
		Content:   "ana sent you a friend request",
		RelatedID: &related,
	})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		if msg.Type != TypeNotification {
			t.Fatalf("message type = %q, want notification", msg.Type)
		}
		var got models.Notification
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("decode notification: %v", err)
		}
		if got.ID != 1 || got.UserID != 7 || got.RelatedID == nil || *got.RelatedID != 11 {
			t.Fatalf("notification = %+v", got)
		}
	}

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatal("user 8 received a notification addressed to user 7")
	}
}

func TestApplicationPing(t *testing.T) {
	hub, server, _ := startHub(t)

	conn := dial(t, server, 3)
	waitFor(t, func() bool { return hub.IsOnline(3) })

	if err := conn.WriteJSON(Message{Type: TypePing}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != TypePong {
		t.Fatalf("message type = %q, want pong", msg.Type)
	}
}

func TestMalformedFrameGetsErrorReply(t *testing.T) {
	hub, server, _ := startHub(t)

	conn := dial(t, server, 4)
	waitFor(t, func() bool { return hub.IsOnline(4) })

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	msg := readMessage(t, conn)
	if msg.Type != TypeError || !strings.Contains(string(msg.Data), "malformed frame") {
		t.Fatalf("reply = %+v, want an error frame", msg)
	}

	// the connection stays usable
	if err := conn.WriteJSON(Message{Type: TypePing}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != TypePong {
		t.Fatalf("message type = %q, want pong", msg.Type)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, server, _ := startHub(t)

	conn := dial(t, server, 5)
	waitFor(t, func() bool { return hub.IsOnline(5) })

	conn.Close()
	waitFor(t, func() bool { return !hub.IsOnline(5) && hub.ConnectionCount() == 0 })

	// publishing to an offline user is a no-op
	hub.Publish(models.Notification{ID: 2, UserID: 5})
}

func TestShutdownClosesConnections(t *testing.T) {
	hub, server, cancel := startHub(t)

	conn := dial(t, server, 9)
	waitFor(t, func() bool { return hub.IsOnline(9) })

	cancel()
	<-hub.Done()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed")
	}
	if hub.ConnectionCount() != 0 {
		t.Fatalf("ConnectionCount() = %d, want 0", hub.ConnectionCount())
	}
	if hub.Register(&Client{Send: make(chan []byte)}) {
		t.Fatal("Register succeeded after shutdown")
	}
}

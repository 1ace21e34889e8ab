package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/handlers"
	"github.com/thereayou/memorylane/internal/handlers/dto"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/session"
	"github.com/thereayou/memorylane/internal/storage/memory"
	ws "github.com/thereayou/memorylane/internal/websocket"
	"github.com/thereayou/memorylane/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := handlers.RegisterValidators(); err != nil {
		panic(err)
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := ws.NewHub(logger)
	uploadDir := t.TempDir()
	uploads, err := handlers.NewUploadHandler(uploadDir, "http://files.test")
	if err != nil {
		t.Fatalf("NewUploadHandler() error = %v", err)
	}

	return NewRouter(Dependencies{
		Store:      memory.New(memory.WithPublisher(hub)),
		JWTManager: auth.NewJWTManager("test-secret", time.Hour),
		Revoker:    session.NewMemoryRevoker(),
		Hub:        hub,
		Uploads:    uploads,
		UploadDir:  uploadDir,
		CORSOrigin: "http://localhost:5173",
		Logger:     logger,
	})
}

type apiUser struct {
	ID    int64
	Token string
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func (a api) do(user *apiUser, method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+user.Token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a api) expect(user *apiUser, method, path string, body any, status int) *httptest.ResponseRecorder {
	a.t.Helper()

	rec := a.do(user, method, path, body)
	if rec.Code != status {
		a.t.Fatalf("%s %s status = %d, want %d (body %s)", method, path, rec.Code, status, rec.Body.String())
	}
	return rec
}

func (a api) register(username string) *apiUser {
	a.t.Helper()

	rec := a.expect(nil, http.MethodPost, "/api/auth/register", gin.H{
		"username":    username,
		"password":    "correct-horse",
		"displayName": strings.ToUpper(username),
	}, http.StatusCreated)

	resp := decode[dto.AuthResponse](a.t, rec)
	return &apiUser{ID: resp.User.ID, Token: resp.Token}
}

// befriend has from send a request that to accepts.
func (a api) befriend(from, to *apiUser) models.Friend {
	a.t.Helper()

	rec := a.expect(from, http.MethodPost, "/api/friends/requests", gin.H{"friendId": to.ID}, http.StatusCreated)
	request := decode[models.Friend](a.t, rec)
	rec = a.expect(to, http.MethodPost, "/api/friends/requests/"+id(request.ID)+"/accept", nil, http.StatusOK)
	return decode[models.Friend](a.t, rec)
}

func (a api) createMemory(user *apiUser, title string, date time.Time, private bool) models.Memory {
	a.t.Helper()

	rec := a.expect(user, http.MethodPost, "/api/memories", gin.H{
		"title":     title,
		"content":   "content of " + title,
		"images":    []string{"http://files.test/uploads/a.png"},
		"date":      date,
		"isPrivate": private,
	}, http.StatusCreated)
	return decode[models.Memory](a.t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %s: %v", v, rec.Body.String(), err)
	}
	return v
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	rec := a.expect(nil, http.MethodGet, "/api/health", nil, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}

	rec := a.expect(nil, http.MethodPost, "/api/auth/register", gin.H{
		"username": "ana", "password": "correct-horse", "displayName": "Ana",
	}, http.StatusCreated)
	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookie {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || !sessionCookie.HttpOnly || sessionCookie.Value == "" {
		t.Fatalf("session cookie = %+v", sessionCookie)
	}
	if strings.Contains(rec.Body.String(), "correct-horse") || strings.Contains(rec.Body.String(), `"password"`) {
		t.Fatalf("register response leaks the password: %s", rec.Body.String())
	}

	a.expect(nil, http.MethodPost, "/api/auth/register", gin.H{
		"username": "ana", "password": "another-pass", "displayName": "Other",
	}, http.StatusConflict)
	a.expect(nil, http.MethodPost, "/api/auth/register", gin.H{
		"username": "a!", "password": "correct-horse", "displayName": "Bad",
	}, http.StatusBadRequest)
	a.expect(nil, http.MethodPost, "/api/auth/register", gin.H{
		"username": "shorty", "password": "short", "displayName": "Short",
	}, http.StatusBadRequest)

	a.expect(nil, http.MethodPost, "/api/auth/login", gin.H{"username": "ana", "password": "wrong-pass"}, http.StatusUnauthorized)
	a.expect(nil, http.MethodPost, "/api/auth/login", gin.H{"username": "nobody", "password": "wrong-pass"}, http.StatusUnauthorized)
	rec = a.expect(nil, http.MethodPost, "/api/auth/login", gin.H{"username": "ana", "password": "correct-horse"}, http.StatusOK)
	login := decode[dto.AuthResponse](t, rec)

	// the cookie alone authenticates
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sessionCookie)
	meRec := httptest.NewRecorder()
	a.router.ServeHTTP(meRec, req)
	if meRec.Code != http.StatusOK || decode[models.User](t, meRec).Username != "ana" {
		t.Fatalf("GET /api/auth/me with cookie = %d %s", meRec.Code, meRec.Body.String())
	}

	user := &apiUser{ID: login.User.ID, Token: login.Token}
	a.expect(user, http.MethodPost, "/api/auth/logout", nil, http.StatusNoContent)
	a.expect(user, http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized)
	a.expect(nil, http.MethodGet, "/api/memories", nil, http.StatusUnauthorized)
}

func TestUsers(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	a.register("anabel")
	a.register("bruno")

	rec := a.expect(ana, http.MethodGet, "/api/users/search?q=ANA", nil, http.StatusOK)
	found := decode[struct {
		Users []models.User `json:"users"`
	}](t, rec)
	if len(found.Users) != 2 {
		t.Fatalf("search returned %d users, want 2", len(found.Users))
	}
	a.expect(ana, http.MethodGet, "/api/users/search", nil, http.StatusBadRequest)

	rec = a.expect(ana, http.MethodPatch, "/api/users/me", gin.H{"bio": "hello"}, http.StatusOK)
	if got := decode[models.User](t, rec); got.Bio != "hello" || got.DisplayName != "ANA" {
		t.Fatalf("patched user = %+v", got)
	}

	a.expect(ana, http.MethodGet, "/api/users/"+id(ana.ID), nil, http.StatusOK)
	a.expect(ana, http.MethodGet, "/api/users/999", nil, http.StatusNotFound)
	a.expect(ana, http.MethodGet, "/api/users/abc", nil, http.StatusBadRequest)
}

func TestMemoryVisibility(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	bruno := a.register("bruno")
	carla := a.register("carla")

	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	public := a.createMemory(ana, "beach", day, false)
	private := a.createMemory(ana, "diary", day.AddDate(0, 0, 1), true)

	a.expect(bruno, http.MethodGet, "/api/memories/"+id(public.ID), nil, http.StatusForbidden)
	a.befriend(bruno, ana)

	a.expect(bruno, http.MethodGet, "/api/memories/"+id(public.ID), nil, http.StatusOK)
	a.expect(bruno, http.MethodGet, "/api/memories/"+id(private.ID), nil, http.StatusForbidden)
	a.expect(carla, http.MethodGet, "/api/memories/"+id(public.ID), nil, http.StatusForbidden)
	a.expect(bruno, http.MethodGet, "/api/memories/999", nil, http.StatusNotFound)

	rec := a.expect(bruno, http.MethodGet, "/api/memories", nil, http.StatusOK)
	feed := decode[[]models.Memory](t, rec)
	if len(feed) != 1 || feed[0].ID != public.ID {
		t.Fatalf("bruno's feed = %+v, want only the public memory", feed)
	}

	rec = a.expect(ana, http.MethodGet, "/api/memories/mine", nil, http.StatusOK)
	mine := decode[[]models.Memory](t, rec)
	if len(mine) != 2 || mine[0].ID != private.ID {
		t.Fatalf("ana's memories = %+v, want newest first", mine)
	}

	a.expect(bruno, http.MethodPatch, "/api/memories/"+id(public.ID), gin.H{"title": "mine now"}, http.StatusForbidden)
	rec = a.expect(ana, http.MethodPatch, "/api/memories/"+id(public.ID), gin.H{"title": "sunny beach"}, http.StatusOK)
	if got := decode[models.Memory](t, rec); got.Title != "sunny beach" || got.Content != public.Content {
		t.Fatalf("patched memory = %+v", got)
	}

	a.expect(bruno, http.MethodDelete, "/api/memories/"+id(public.ID), nil, http.StatusForbidden)
	a.expect(ana, http.MethodDelete, "/api/memories/"+id(public.ID), nil, http.StatusNoContent)
	a.expect(ana, http.MethodGet, "/api/memories/"+id(public.ID), nil, http.StatusNotFound)
}

func TestComments(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	bruno := a.register("bruno")
	carla := a.register("carla")
	a.befriend(bruno, ana)
	a.befriend(carla, ana)

	memory := a.createMemory(ana, "hike", time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), false)
	path := "/api/memories/" + id(memory.ID) + "/comments"

	first := decode[models.Comment](t, a.expect(bruno, http.MethodPost, path, gin.H{"content": "nice"}, http.StatusCreated))
	second := decode[models.Comment](t, a.expect(carla, http.MethodPost, path, gin.H{"content": "wow"}, http.StatusCreated))
	a.expect(ana, http.MethodPost, path, gin.H{"content": ""}, http.StatusBadRequest)

	comments := decode[[]models.Comment](t, a.expect(ana, http.MethodGet, path, nil, http.StatusOK))
	if len(comments) != 2 || comments[0].ID != first.ID {
		t.Fatalf("comments = %+v, want oldest first", comments)
	}

	a.expect(carla, http.MethodPatch, "/api/comments/"+id(first.ID), gin.H{"content": "hijack"}, http.StatusForbidden)
	a.expect(bruno, http.MethodPatch, "/api/comments/"+id(first.ID), gin.H{"content": "very nice"}, http.StatusOK)

	// carla may not delete bruno's comment, but ana owns the memory
	a.expect(carla, http.MethodDelete, "/api/comments/"+id(first.ID), nil, http.StatusForbidden)
	a.expect(ana, http.MethodDelete, "/api/comments/"+id(first.ID), nil, http.StatusNoContent)
	a.expect(carla, http.MethodDelete, "/api/comments/"+id(second.ID), nil, http.StatusNoContent)

	notifications := decode[[]models.Notification](t, a.expect(ana, http.MethodGet, "/api/notifications", nil, http.StatusOK))
	var commentNotifications int
	for _, n := range notifications {
		if n.Type == models.NotificationTypeComment {
			commentNotifications++
			if n.RelatedID == nil || *n.RelatedID != memory.ID {
				t.Fatalf("comment notification = %+v, want related to memory %d", n, memory.ID)
			}
		}
	}
	if commentNotifications != 2 {
		t.Fatalf("comment notifications = %d, want 2", commentNotifications)
	}
}

func TestFriendRequests(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	bruno := a.register("bruno")
	carla := a.register("carla")

	a.expect(ana, http.MethodPost, "/api/friends/requests", gin.H{"friendId": ana.ID}, http.StatusBadRequest)
	a.expect(ana, http.MethodPost, "/api/friends/requests", gin.H{"friendId": 999}, http.StatusNotFound)

	request := decode[models.Friend](t, a.expect(ana, http.MethodPost, "/api/friends/requests", gin.H{"friendId": bruno.ID}, http.StatusCreated))
	if request.Status != models.FriendStatusPending {
		t.Fatalf("status = %q, want pending", request.Status)
	}
	a.expect(bruno, http.MethodPost, "/api/friends/requests", gin.H{"friendId": ana.ID}, http.StatusConflict)

	pending := decode[[]dto.FriendView](t, a.expect(bruno, http.MethodGet, "/api/friends/requests", nil, http.StatusOK))
	if len(pending) != 1 || pending[0].User == nil || pending[0].User.ID != ana.ID {
		t.Fatalf("bruno's requests = %+v", pending)
	}

	accept := "/api/friends/requests/" + id(request.ID) + "/accept"
	a.expect(ana, http.MethodPost, accept, nil, http.StatusForbidden)
	a.expect(bruno, http.MethodPost, accept, nil, http.StatusOK)
	a.expect(bruno, http.MethodPost, accept, nil, http.StatusConflict)

	friends := decode[[]dto.FriendView](t, a.expect(ana, http.MethodGet, "/api/friends", nil, http.StatusOK))
	if len(friends) != 1 || friends[0].User.ID != bruno.ID {
		t.Fatalf("ana's friends = %+v", friends)
	}

	a.expect(carla, http.MethodDelete, "/api/friends/"+id(request.ID), nil, http.StatusForbidden)
	a.expect(bruno, http.MethodDelete, "/api/friends/"+id(request.ID), nil, http.StatusNoContent)

	rejected := decode[models.Friend](t, a.expect(carla, http.MethodPost, "/api/friends/requests", gin.H{"friendId": ana.ID}, http.StatusCreated))
	rec := a.expect(ana, http.MethodPost, "/api/friends/requests/"+id(rejected.ID)+"/reject", nil, http.StatusOK)
	if got := decode[models.Friend](t, rec); got.Status != models.FriendStatusRejected {
		t.Fatalf("status = %q, want rejected", got.Status)
	}
}

func TestGroups(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	bruno := a.register("bruno")
	carla := a.register("carla")

	group := decode[models.Group](t, a.expect(ana, http.MethodPost, "/api/groups", gin.H{"name": "Family"}, http.StatusCreated))
	base := "/api/groups/" + id(group.ID)

	detail := decode[dto.GroupDetail](t, a.expect(ana, http.MethodGet, base, nil, http.StatusOK))
	if len(detail.Members) != 1 || detail.Members[0].UserID != ana.ID || detail.Members[0].Role != models.GroupRoleAdmin {
		t.Fatalf("members = %+v, want creator as admin", detail.Members)
	}

	a.expect(bruno, http.MethodGet, base, nil, http.StatusForbidden)
	a.expect(bruno, http.MethodGet, "/api/groups/999", nil, http.StatusNotFound)

	a.expect(ana, http.MethodPost, base+"/members", gin.H{"userId": bruno.ID}, http.StatusCreated)
	a.expect(ana, http.MethodPost, base+"/members", gin.H{"userId": bruno.ID}, http.StatusConflict)
	a.expect(ana, http.MethodPost, base+"/members", gin.H{"userId": carla.ID, "role": "owner"}, http.StatusBadRequest)
	a.expect(bruno, http.MethodPost, base+"/members", gin.H{"userId": carla.ID}, http.StatusForbidden)
	a.expect(bruno, http.MethodPatch, base, gin.H{"name": "Mine"}, http.StatusForbidden)

	groups := decode[[]models.Group](t, a.expect(bruno, http.MethodGet, "/api/groups", nil, http.StatusOK))
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Fatalf("bruno's groups = %+v", groups)
	}

	notifications := decode[[]models.Notification](t, a.expect(bruno, http.MethodGet, "/api/notifications", nil, http.StatusOK))
	if len(notifications) != 1 || notifications[0].Type != models.NotificationTypeGroupAdded {
		t.Fatalf("bruno's notifications = %+v, want one group_added", notifications)
	}

	a.createMemory(bruno, "shared", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false)
	a.createMemory(bruno, "secret", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), true)
	memories := decode[[]models.Memory](t, a.expect(ana, http.MethodGet, base+"/memories", nil, http.StatusOK))
	if len(memories) != 1 || memories[0].Title != "shared" {
		t.Fatalf("group memories = %+v", memories)
	}

	// the only admin cannot step down or leave
	a.expect(ana, http.MethodPatch, base+"/members/"+id(ana.ID), gin.H{"role": "member"}, http.StatusConflict)
	a.expect(ana, http.MethodDelete, base+"/members/"+id(ana.ID), nil, http.StatusConflict)

	a.expect(ana, http.MethodPatch, base+"/members/"+id(bruno.ID), gin.H{"role": "admin"}, http.StatusOK)
	a.expect(bruno, http.MethodPatch, base, gin.H{"description": "us"}, http.StatusOK)
	a.expect(ana, http.MethodDelete, base+"/members/"+id(ana.ID), nil, http.StatusNoContent)
	a.expect(ana, http.MethodGet, base+"/members", nil, http.StatusForbidden)

	a.expect(bruno, http.MethodDelete, base, nil, http.StatusNoContent)
	a.expect(bruno, http.MethodGet, base, nil, http.StatusNotFound)
}

func TestNotifications(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	bruno := a.register("bruno")
	carla := a.register("carla")

	a.expect(bruno, http.MethodPost, "/api/friends/requests", gin.H{"friendId": ana.ID}, http.StatusCreated)
	a.expect(carla, http.MethodPost, "/api/friends/requests", gin.H{"friendId": ana.ID}, http.StatusCreated)

	count := decode[struct {
		Count int64 `json:"count"`
	}](t, a.expect(ana, http.MethodGet, "/api/notifications/unread-count", nil, http.StatusOK))
	if count.Count != 2 {
		t.Fatalf("unread = %d, want 2", count.Count)
	}

	notifications := decode[[]models.Notification](t, a.expect(ana, http.MethodGet, "/api/notifications", nil, http.StatusOK))
	if len(notifications) != 2 || notifications[0].ID < notifications[1].ID {
		t.Fatalf("notifications = %+v, want newest first", notifications)
	}
	newest := notifications[0]

	a.expect(bruno, http.MethodPost, "/api/notifications/"+id(newest.ID)+"/read", nil, http.StatusForbidden)
	read := decode[models.Notification](t, a.expect(ana, http.MethodPost, "/api/notifications/"+id(newest.ID)+"/read", nil, http.StatusOK))
	if !read.IsRead {
		t.Fatal("notification not marked read")
	}

	a.expect(ana, http.MethodPost, "/api/notifications/read-all", nil, http.StatusNoContent)
	count = decode[struct {
		Count int64 `json:"count"`
	}](t, a.expect(ana, http.MethodGet, "/api/notifications/unread-count", nil, http.StatusOK))
	if count.Count != 0 {
		t.Fatalf("unread after read-all = %d, want 0", count.Count)
	}

	a.expect(bruno, http.MethodDelete, "/api/notifications/"+id(newest.ID), nil, http.StatusForbidden)
	a.expect(ana, http.MethodDelete, "/api/notifications/"+id(newest.ID), nil, http.StatusNoContent)
	a.expect(ana, http.MethodDelete, "/api/notifications/"+id(newest.ID), nil, http.StatusNotFound)
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")
	memory := a.createMemory(ana, "spring", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), false)

	rec := a.expect(ana, http.MethodGet, "/api/memories/calendar?year=2024&month=3", nil, http.StatusOK)
	cal := decode[dto.CalendarResponse](t, rec)
	if len(cal.Days) != 42 {
		t.Fatalf("days = %d, want 42", len(cal.Days))
	}
	// March 2024 starts on a Friday
	if cal.Days[0].Date != "2024-02-25" || cal.Days[0].InMonth {
		t.Fatalf("first cell = %+v", cal.Days[0])
	}

	var found bool
	for _, day := range cal.Days {
		if day.Date == "2024-03-15" {
			found = len(day.Memories) == 1 && day.Memories[0].ID == memory.ID
		} else if len(day.Memories) != 0 {
			t.Fatalf("unexpected memories on %s", day.Date)
		}
	}
	if !found {
		t.Fatal("memory missing from 2024-03-15")
	}

	a.expect(ana, http.MethodGet, "/api/memories/calendar?year=2024&month=13", nil, http.StatusBadRequest)
	a.expect(ana, http.MethodGet, "/api/memories/calendar?year=abc", nil, http.StatusBadRequest)
}

func TestUploads(t *testing.T) {
	t.Parallel()

	a := api{t: t, router: newTestRouter(t)}
	ana := a.register("ana")

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	tests := []struct {
		name       string
		files      map[string][]byte
		wantStatus int
	}{
		{name: "png", files: map[string][]byte{"photo.png": png}, wantStatus: http.StatusCreated},
		{name: "text disguised as image", files: map[string][]byte{"photo.png": []byte("just some text")}, wantStatus: http.StatusBadRequest},
		{name: "no files", files: map[string][]byte{}, wantStatus: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			for name, content := range testCase.files {
				part, err := writer.CreateFormFile("images", name)
				if err != nil {
					t.Fatalf("CreateFormFile() error = %v", err)
				}
				part.Write(content)
			}
			writer.Close()

			req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+ana.Token)
			rec := httptest.NewRecorder()
			a.router.ServeHTTP(rec, req)

			if rec.Code != testCase.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, testCase.wantStatus, rec.Body.String())
			}
			if rec.Code != http.StatusCreated {
				return
			}

			resp := decode[struct {
				URLs []string `json:"urls"`
			}](t, rec)
			if len(resp.URLs) != 1 || !strings.HasPrefix(resp.URLs[0], "http://files.test/uploads/") || !strings.HasSuffix(resp.URLs[0], ".png") {
				t.Fatalf("urls = %v", resp.URLs)
			}

			served := httptest.NewRecorder()
			a.router.ServeHTTP(served, httptest.NewRequest(http.MethodGet, strings.TrimPrefix(resp.URLs[0], "http://files.test"), nil))
			if served.Code != http.StatusOK || !bytes.Equal(served.Body.Bytes(), png) {
				t.Fatalf("GET uploaded file = %d", served.Code)
			}
		})
	}
}

package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/skawahara/kotoba-sns-be/internal/auth"
	"github.com/skawahara/kotoba-sns-be/internal/database"
	"github.com/skawahara/kotoba-sns-be/internal/models"
	"github.com/skawahara/kotoba-sns-be/internal/services"
	"github.com/stretchr/testify/require"
)

// testApp wires the full router over a throwaway sqlite database. Requests go
// through the real middleware stack; redirects are not followed so tests can
// assert on status codes and Location headers.
type testApp struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	db     *sql.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router := NewRouter(
		"http://localhost:3000",
		services.NewUserService(db),
		services.NewPostService(db),
		services.NewWordService(db),
		services.NewLikeService(db),
		services.NewFollowService(db),
		services.NewEventService(db),
	)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &testApp{
		t:      t,
		server: server,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		db: db,
	}
}

func (a *testApp) do(method, path string, body any, session *http.Cookie) *http.Response {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.AddCookie(session)
	}

	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	a.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// registerUser signs up and logs in a user, returning the session cookie and
// the user's id.
func (a *testApp) registerUser(name, email string) (*http.Cookie, models.User) {
	a.t.Helper()

	resp := a.do(http.MethodPost, "/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password",
	}, nil)
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode, "signup should redirect")

	resp = a.do(http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": "password",
	}, nil)
	require.Equal(a.t, http.StatusSeeOther, resp.StatusCode, "login should redirect")

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			session = c
		}
	}
	require.NotNil(a.t, session, "login should set a session cookie")

	var user models.User
	a.decode(a.do(http.MethodGet, "/me", nil, session), &user)
	return session, user
}

func (a *testApp) decode(resp *http.Response, v any) {
	a.t.Helper()
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(v))
}

func (a *testApp) bodyString(resp *http.Response) string {
	a.t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return string(raw)
}

// notice extracts the decoded notice cookie attached to a redirect response.
func (a *testApp) notice(resp *http.Response) string {
	a.t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "notice" {
			decoded, err := url.QueryUnescape(c.Value)
			require.NoError(a.t, err)
			return decoded
		}
	}
	return ""
}

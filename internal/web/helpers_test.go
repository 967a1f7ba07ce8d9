package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/VitaminP8/blog/internal/auth"
	"github.com/VitaminP8/blog/internal/mocks"
	"github.com/VitaminP8/blog/internal/password"
	"github.com/VitaminP8/blog/internal/storage/memory"
	"github.com/VitaminP8/blog/internal/user"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	*httptest.Server
	users    *mocks.MockUserStorage
	posts    *mocks.MockPostStorage
	comments *mocks.MockCommentStorage
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	users := memory.NewUserMemoryStorage()
	posts := memory.NewPostMemoryStorage(users)
	comments := memory.NewCommentMemoryStorage(posts, users)

	s := &testServer{
		users:    mocks.NewMockUserStorage(users),
		posts:    mocks.NewMockPostStorage(posts),
		comments: mocks.NewMockCommentStorage(comments),
	}

	hasher, err := password.New(password.Bcrypt)
	require.NoError(t, err)
	sessions, err := auth.NewSessions("test-secret-key", time.Hour, false)
	require.NoError(t, err)

	app := NewApp(zap.NewNop(), s.users, s.posts, s.comments, user.NewAccounts(s.users, hasher), sessions)
	e, err := app.Echo(opts)
	require.NoError(t, err)

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Close)

	return s
}

// fixedNow подменяет дату публикации новых постов на время теста.
func fixedNow(t *testing.T, ts time.Time) {
	t.Helper()

	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

type response struct {
	Code     int
	Body     string
	Location string
}

// browser хранит cookie между запросами и не следует за редиректами.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (s *testServer) newBrowser(t *testing.T) *browser {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: s.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) response {
	b.t.Helper()

	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	return readResponse(b.t, resp)
}

func (b *browser) post(path string, form url.Values) response {
	b.t.Helper()

	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	return readResponse(b.t, resp)
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

// csrfToken открывает страницу с формой и достает из нее CSRF токен.
func (b *browser) csrfToken(path string) string {
	b.t.Helper()

	res := b.get(path)
	m := csrfInput.FindStringSubmatch(res.Body)
	require.Len(b.t, m, 2, "no csrf token on %s", path)
	return m[1]
}

func (b *browser) register(email, pw, name string) response {
	b.t.Helper()

	return b.post("/register", url.Values{
		"email":    {email},
		"password": {pw},
		"name":     {name},
	})
}

func (b *browser) login(email, pw string) response {
	b.t.Helper()

	return b.post("/login", url.Values{
		"email":    {email},
		"password": {pw},
	})
}

func readResponse(t *testing.T, resp *http.Response) response {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{
		Code:     resp.StatusCode,
		Body:     string(body),
		Location: resp.Header.Get("Location"),
	}
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"img_url":  {"https://example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".png"},
		"body":     {"<p>Body of " + title + "</p>"},
	}
}

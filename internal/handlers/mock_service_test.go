package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID  int64
	signUpErr error
	authUser  *models.User
	authErr   error

	signUpCalls        int
	authCalls          int
	lastSignUpUsername string
	lastSignUpPassword string
	lastAuthUsername   string
	lastAuthPassword   string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int64, error) {
	m.signUpCalls++
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	m.authCalls++
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authUser, m.authErr
}

// mockSessions hands out tokens "tok-N" when a new session is first saved
// and keeps stored sessions by token.
type mockSessions struct {
	mu      sync.Mutex
	byToken map[string]*models.Session
	tokens  map[string]string
	next    int
	saves   int
	saveErr error
	loadErr error
}

func newMockSessions() *mockSessions {
	return &mockSessions{byToken: map[string]*models.Session{}, tokens: map[string]string{}}
}

// put registers a session under token, e.g. to simulate a logged-in browser.
func (m *mockSessions) put(token string, s *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.MarkStored()
	m.byToken[token] = s
	m.tokens[s.ID] = token
}

func (m *mockSessions) get(token string) *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byToken[token]
}

func (m *mockSessions) stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byToken)
}

func (m *mockSessions) New() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return &models.Session{ID: fmt.Sprintf("sid-%d", m.next)}
}

func (m *mockSessions) Token(s *models.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[s.ID]
	if !ok {
		return "", service.ErrSessionNotFound
	}
	return token, nil
}

func (m *mockSessions) Load(_ context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	s, ok := m.byToken[token]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessions) Save(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !s.Dirty() {
		return nil
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	if !s.Stored() {
		token := "tok-" + strings.TrimPrefix(s.ID, "sid-")
		m.byToken[token] = s
		m.tokens[s.ID] = token
		s.MarkStored()
	}
	m.saves++
	s.MarkClean()
	return nil
}

func (m *mockSessions) Login(ctx context.Context, s *models.Session, u *models.User) error {
	s.Bind(u.ID, u.Username)
	return m.Save(ctx, s)
}

func (m *mockSessions) Logout(ctx context.Context, s *models.Session) error {
	s.Clear()
	return m.Save(ctx, s)
}

func (m *mockSessions) Purge(context.Context) (int64, error) { return 0, nil }

type mockInventory struct {
	listResp   []models.Medicine
	listErr    error
	getResp    models.Medicine
	getErr     error
	createErr  error
	updateErr  error
	deleteErr  error
	summary    models.InventorySummary
	summaryErr error

	lastSearch      string
	lastCreateUser  int64
	lastInput       service.MedicineInput
	lastID          int64
	createCalls     int
	updateCalls     int
	deleteCalls     int
	summaryRequests int
	mu              sync.Mutex
}

func (m *mockInventory) List(_ context.Context, search string) ([]models.Medicine, error) {
	m.lastSearch = search
	return m.listResp, m.listErr
}

func (m *mockInventory) Get(_ context.Context, id int64) (models.Medicine, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *mockInventory) Create(_ context.Context, userID int64, in service.MedicineInput) (models.Medicine, error) {
	m.createCalls++
	m.lastCreateUser = userID
	m.lastInput = in
	if m.createErr != nil {
		return models.Medicine{}, m.createErr
	}
	return models.Medicine{ID: 1, Name: in.Name, AddedBy: userID}, nil
}

func (m *mockInventory) Update(_ context.Context, id int64, in service.MedicineInput) (models.Medicine, error) {
	m.updateCalls++
	m.lastID = id
	m.lastInput = in
	if m.updateErr != nil {
		return models.Medicine{}, m.updateErr
	}
	return models.Medicine{ID: id, Name: in.Name}, nil
}

func (m *mockInventory) Delete(_ context.Context, id int64) error {
	m.deleteCalls++
	m.lastID = id
	return m.deleteErr
}

func (m *mockInventory) Summary(context.Context) (models.InventorySummary, error) {
	m.mu.Lock()
	m.summaryRequests++
	m.mu.Unlock()
	return m.summary, m.summaryErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, CookieConfig{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newTestService fills unset parts of the service with empty mocks.
func newTestService(auth *mockAuth, sessions *mockSessions, inv *mockInventory) *service.Service {
	if auth == nil {
		auth = &mockAuth{}
	}
	if sessions == nil {
		sessions = newMockSessions()
	}
	if inv == nil {
		inv = &mockInventory{}
	}
	return &service.Service{Authorization: auth, Sessions: sessions, Inventory: inv}
}

// loggedIn registers an authenticated session and returns its cookie token.
func loggedIn(sessions *mockSessions, userID int64, username string) string {
	token := fmt.Sprintf("user-%d", userID)
	s := &models.Session{ID: token}
	s.Bind(userID, username)
	s.MarkClean()
	sessions.put(token, s)
	return token
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: defaultCookieName, Value: token}
}

// do sends a request with the given session token; form, if not nil, is
// posted as application/x-www-form-urlencoded.
func do(t *testing.T, r http.Handler, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(sessionCookie(token))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

package servermanage

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/server/feed"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

type contextKey int

const (
	UserCookie contextKey = iota
)

const DEFAULT_TOKEN_EXPIRY = 30 * time.Minute

// auth for management is in memory as the expected number of operators
// logged in at once is tiny
const UserCookieName = "user_token"

// AdminUser is the stored login record, keyed by username.
type AdminUser struct {
	Username          string `json:"username"`
	EncryptedPassword string `json:"encryptedPassword"`
}

type managementUser struct {
	username   string
	expireTime time.Time
}

type tokenStore struct {
	tokenToUser   map[string]*managementUser
	tokenDuration time.Duration
	mu            sync.RWMutex
}

func (t *tokenStore) getToken(token string) (managementUser, bool) {
	t.refreshTokens()
	t.mu.Lock()
	defer t.mu.Unlock()
	user, ok := t.tokenToUser[token]
	if ok {
		user.expireTime = time.Now().Add(t.tokenDuration)
		return *user, ok
	}
	return managementUser{}, ok
}

func (t *tokenStore) addToken(token string, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokenToUser[token] = &managementUser{
		username:   username,
		expireTime: time.Now().Add(t.tokenDuration),
	}
}

func (t *tokenStore) removeToken(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tokenToUser, token)
}

func (t *tokenStore) refreshTokens() {
	currentTime := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for token, user := range t.tokenToUser {
		if currentTime.After(user.expireTime) {
			delete(t.tokenToUser, token)
		}
	}
}

var memoryTokenStore tokenStore = tokenStore{
	tokenToUser:   map[string]*managementUser{},
	tokenDuration: DEFAULT_TOKEN_EXPIRY,
	mu:            sync.RWMutex{},
}

type manageHandler struct {
	store  docstore.Store
	hub    *feed.Hub
	logger *slog.Logger

	// shared limiter for login attempts; bcrypt is slow and the endpoint
	// should never become a password oracle under load
	loginLimiter *rate.Limiter
}

func getManageHandler(store docstore.Store, hub *feed.Hub, logger *slog.Logger) *manageHandler {
	return &manageHandler{
		store:        store,
		hub:          hub,
		logger:       logger,
		loginLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *manageHandler) login(w http.ResponseWriter, r *http.Request) {
	if !h.loginLimiter.Allow() {
		http.Error(w, http.StatusText(429), 429)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	// the same response for a missing user and a wrong password so the
	// endpoint does not reveal which usernames exist
	errText := "invalid login - verify a user has been added"

	doc, err := h.store.Get(r.Context(), docstore.CollectionAdminUsers, req.Username)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "could not get user", "error", err)
		http.Error(w, errText, http.StatusUnauthorized)
		return
	}
	var user AdminUser
	if err := doc.Decode(&user); err != nil {
		h.logger.ErrorContext(r.Context(), "could not decode user", "error", err)
		http.Error(w, errText, http.StatusUnauthorized)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(req.Password))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "password is not correct", "username", req.Username)
		http.Error(w, errText, http.StatusUnauthorized)
		return
	}

	token := uuid.New().String()
	cookie := &http.Cookie{
		Name:     UserCookieName,
		Value:    token,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	memoryTokenStore.addToken(token, req.Username)
	http.SetCookie(w, cookie)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "username": req.Username})
}

func (h *manageHandler) logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(UserCookieName)
	if err == nil {
		memoryTokenStore.removeToken(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   UserCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *manageHandler) session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(UserCookieName)
	if err != nil {
		http.Error(w, http.StatusText(401), 401)
		return
	}
	user, ok := memoryTokenStore.getToken(cookie.Value)
	if !ok {
		http.Error(w, http.StatusText(401), 401)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"username": user.username})
}

func EnsureLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cookie, err := r.Cookie(UserCookieName)
		if err != nil {
			http.Error(w, http.StatusText(401), 401)
			return
		}

		_, doesExist := memoryTokenStore.getToken(cookie.Value)
		if !doesExist {
			http.Error(w, http.StatusText(401), 401)
			return
		}

		ctx = context.WithValue(ctx, UserCookie, cookie.Value)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

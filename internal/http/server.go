package http

import (
	"container/list"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"aurum/internal/core"
	"aurum/internal/services"
	"aurum/internal/storage"
)

// Inbound ports. The server talks to the services through these so tests
// can swap in fakes.
type (
	AccountAPI interface {
		Register(ctx context.Context, email, password, name string) (storage.User, string, error)
		Login(ctx context.Context, email, password string) (storage.User, string, error)
		GetUser(ctx context.Context, id string) (storage.User, error)
		VerifyToken(token string) (string, error)
	}

	LedgerAPI interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		ListTransactions(ctx context.Context, owner string, f storage.TransactionFilter) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, owner, id string) error

		CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error)
		ListAssets(ctx context.Context, owner string) ([]core.Asset, error)
		UpdateAsset(ctx context.Context, a core.Asset) error
		DeleteAsset(ctx context.Context, owner, id string) error

		CreateLiability(ctx context.Context, l core.Liability) (core.Liability, error)
		ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error)
		UpdateLiability(ctx context.Context, l core.Liability) error
		DeleteLiability(ctx context.Context, owner, id string) error

		SetBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
		DeleteBudget(ctx context.Context, owner, id string) error

		CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
		ListSavingsGoals(ctx context.Context, owner string) ([]core.SavingsGoal, error)
		UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error
		DeleteSavingsGoal(ctx context.Context, owner, id string) error

		CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		ListDebts(ctx context.Context, owner string) ([]core.Debt, error)
		UpdateDebt(ctx context.Context, d core.Debt) error
		DeleteDebt(ctx context.Context, owner, id string) error
	}

	DashboardAPI interface {
		Overview(ctx context.Context, owner string, now core.Date) (services.Overview, error)
		SpendingReport(ctx context.Context, owner string, start, end core.Date) (core.SpendingReport, error)
		CashflowTrend(ctx context.Context, owner string, now core.Date, monthsBack int) ([]core.MonthCashflow, error)
		NetWorthHistory(ctx context.Context, owner string, limit int) ([]storage.NetWorthSnapshot, error)
	}
)

type Server struct {
	http.Server
	accounts    AccountAPI
	ledger      LedgerAPI
	dashboard   DashboardAPI
	trendMonths int
	rateLimiter *rateLimiter

	// Dashboard overviews are cached briefly; any write by the owner
	// invalidates their entry.
	overviewCache *lruCache[services.Overview]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, accounts AccountAPI, ledger LedgerAPI, dashboard DashboardAPI, trendMonths int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		accounts:         accounts,
		ledger:           ledger,
		dashboard:        dashboard,
		trendMonths:      trendMonths,
		rateLimiter:      newRateLimiter(),
		overviewCache:    newLRUCache[services.Overview](100, 1*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.withMiddleware(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("GET /api/auth/me", s.withMiddleware(s.requireAuth(s.handleMe)))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.requireAuth(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.requireAuth(s.handleCreateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /api/assets", s.withMiddleware(s.requireAuth(s.handleListAssets)))
	mux.HandleFunc("POST /api/assets", s.withMiddleware(s.requireAuth(s.handleCreateAsset)))
	mux.HandleFunc("PUT /api/assets/{id}", s.withMiddleware(s.requireAuth(s.handleUpdateAsset)))
	mux.HandleFunc("DELETE /api/assets/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteAsset)))

	mux.HandleFunc("GET /api/liabilities", s.withMiddleware(s.requireAuth(s.handleListLiabilities)))
	mux.HandleFunc("POST /api/liabilities", s.withMiddleware(s.requireAuth(s.handleCreateLiability)))
	mux.HandleFunc("PUT /api/liabilities/{id}", s.withMiddleware(s.requireAuth(s.handleUpdateLiability)))
	mux.HandleFunc("DELETE /api/liabilities/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteLiability)))

	mux.HandleFunc("GET /api/budgets", s.withMiddleware(s.requireAuth(s.handleListBudgets)))
	mux.HandleFunc("POST /api/budgets", s.withMiddleware(s.requireAuth(s.handleSetBudget)))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteBudget)))

	mux.HandleFunc("GET /api/savings-goals", s.withMiddleware(s.requireAuth(s.handleListSavingsGoals)))
	mux.HandleFunc("POST /api/savings-goals", s.withMiddleware(s.requireAuth(s.handleCreateSavingsGoal)))
	mux.HandleFunc("PUT /api/savings-goals/{id}", s.withMiddleware(s.requireAuth(s.handleUpdateSavingsGoal)))
	mux.HandleFunc("DELETE /api/savings-goals/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteSavingsGoal)))

	mux.HandleFunc("GET /api/debts", s.withMiddleware(s.requireAuth(s.handleListDebts)))
	mux.HandleFunc("POST /api/debts", s.withMiddleware(s.requireAuth(s.handleCreateDebt)))
	mux.HandleFunc("PUT /api/debts/{id}", s.withMiddleware(s.requireAuth(s.handleUpdateDebt)))
	mux.HandleFunc("DELETE /api/debts/{id}", s.withMiddleware(s.requireAuth(s.handleDeleteDebt)))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.requireAuth(s.handleDashboard)))
	mux.HandleFunc("GET /api/reports/spending", s.withMiddleware(s.requireAuth(s.handleSpendingReport)))
	mux.HandleFunc("GET /api/reports/cashflow", s.withMiddleware(s.requireAuth(s.handleCashflowTrend)))
	mux.HandleFunc("GET /api/networth/history", s.withMiddleware(s.requireAuth(s.handleNetWorthHistory)))

	return s
}

type contextKey string

const ownerKey contextKey = "owner"

// requireAuth resolves the bearer token and stashes the owner id in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		owner, err := s.accounts.VerifyToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
	}
}

func ownerFrom(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey).(string)
	return owner
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), contextKey("request_id"), requestID)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.overviewCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ready")
}

// LRU cache with TTL and size-based eviction
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries
func (c *lruCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		item := elem.Value.(*cacheItem[T])
		if now.After(item.expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Window resets after one idle minute; up to 60 writes per minute.
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

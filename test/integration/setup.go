package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"order-dashboard/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// migrationsPath is relative to this package directory.
const migrationsPath = "../../migrations"

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, applies the migrations and
// opens a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(connStr, migrationsPath, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB removes all stored preferences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM preferences"); err != nil {
		t.Logf("failed to clean preferences: %v", err)
	}
}

// FakeOrdersAPI is an in-process stand-in for the remote orders backend.
type FakeOrdersAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	orders    []map[string]any
	afterSync []map[string]any
	details   map[string]string
	syncCalls int
	failList  bool
}

// NewFakeOrdersAPI serves the given orders under /api.
func NewFakeOrdersAPI(t *testing.T, orders []map[string]any) *FakeOrdersAPI {
	t.Helper()

	f := &FakeOrdersAPI{orders: orders, details: map[string]string{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)

	return f
}

// BaseURL returns the API base URL with a trailing slash, as users often configure it.
func (f *FakeOrdersAPI) BaseURL() string {
	return f.Server.URL + "/api/"
}

// SetDetail registers a raw JSON body for GET /api/orders/{id}.
func (f *FakeOrdersAPI) SetDetail(id, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[id] = body
}

// SetOrdersAfterSync replaces the order list once a sync has happened.
func (f *FakeOrdersAPI) SetOrdersAfterSync(orders []map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.afterSync = orders
}

// FailList makes GET /api/orders answer 500 with a message body.
func (f *FakeOrdersAPI) FailList(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failList = fail
}

// SyncCalls returns how often POST /api/orders/sync was hit.
func (f *FakeOrdersAPI) SyncCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncCalls
}

func (f *FakeOrdersAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/orders":
		if f.failList {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"Database unavailable"}`))
			return
		}
		json.NewEncoder(w).Encode(f.orders)

	case r.Method == http.MethodPost && r.URL.Path == "/api/orders/sync":
		f.syncCalls++
		if f.afterSync != nil {
			f.orders = f.afterSync
		}
		w.Write([]byte(`{"message":"Fetched orders"}`))

	case r.Method == http.MethodGet && r.URL.Path == "/api/orders/stats":
		w.Write([]byte(`{"totalOrders":2,"totalRevenue":45.5,"avgOrderValue":22.75,"monthlyTotals":[],"statusCounts":[{"id":"Shipped","count":2}]}`))

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/orders/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
		body, ok := f.details[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Order not found"}`))
			return
		}
		w.Write([]byte(body))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// SampleOrders returns two orders in the backend's wire format.
func SampleOrders() []map[string]any {
	return []map[string]any{
		{
			"order_id":      "114-0000001-0000001",
			"purchase_date": "2024-03-15T10:30:00Z",
			"products": []map[string]any{
				{"title": "USB-C Cable", "asin": "B01", "quantity": 2, "price": 12.5},
				{"title": "Desk Lamp", "asin": "B02", "quantity": 1, "price": 20.5},
			},
			"shipping_address": map[string]any{"City": "Seattle", "StateOrRegion": "WA", "PostalCode": "98101", "CountryCode": "US"},
			"paymentMethod":    "Other",
		},
		{
			"order_id":         "114-0000002-0000002",
			"purchase_date":    "2024-04-01T08:00:00Z",
			"products":         []map[string]any{{"title": "Notebook", "asin": "B03", "quantity": 1, "price": nil}},
			"shipping_address": map[string]any{"City": "Austin", "StateOrRegion": "TX"},
			"paymentMethod":    "COD",
		},
	}
}

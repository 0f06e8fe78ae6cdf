package web_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"curtain-pos/internal/adapters/web"
	"curtain-pos/internal/app"
	"curtain-pos/internal/backend"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend emulates the shop's REST backend for the routes under test.
type stubBackend struct {
	mu         sync.Mutex
	quickSells []map[string]any
}

func (b *stubBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/stock", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"_id":"s1","itemName":"Velvet Red","itemType":"Curtain","quantity":10,"cost":900,"sellPrice":1500},
			{"_id":"s2","itemName":"Linen White","itemType":"Curtain","quantity":0,"cost":500,"sellPrice":800},
			{"_id":"s3","itemName":"Brass Rod","itemType":"Poles","quantity":25,"cost":1200,"sellPrice":2000}
		]`)
	})
	r.Post("/orders/quick-sell", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.quickSells = append(b.quickSells, body)
		b.mu.Unlock()
		_, _ = io.WriteString(w, `{"bill":{"_id":"b1","billNo":"B-0042","billTotal":3000,"paidAmount":3000}}`)
	})
	r.Get("/orders/details/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "id") {
		case "missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Order not found"}`)
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"message":"database offline"}`)
		default:
			_, _ = io.WriteString(w, `{"_id":"o1","orderStatus":"pending","balance":500,"customerId":{"_id":"c1","name":"Nimal"}}`)
		}
	})
	return r
}

func (b *stubBackend) sells() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.quickSells)
}

func newTestHandler(t *testing.T) (http.Handler, *stubBackend) {
	t.Helper()
	stub := &stubBackend{}
	upstream := httptest.NewServer(stub.router())
	t.Cleanup(upstream.Close)

	log := zerolog.Nop()
	client := backend.New(upstream.URL, 5*time.Second, log)
	svc := app.NewAppService(client, nil, log, app.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return web.NewHandler(ctx, svc, web.Options{}, log), stub
}

func newTestServer(t *testing.T) (*httptest.Server, *stubBackend) {
	t.Helper()
	h, stub := newTestHandler(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, stub
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

func decodeError(t *testing.T, raw []byte) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, raw := call(t, srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, string(raw))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestIDEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "till-7")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "till-7", resp.Header.Get("X-Request-ID"))
}

func TestQuickSellFlow(t *testing.T) {
	srv, stub := newTestServer(t)

	resp, raw := call(t, srv, http.MethodPost, "/api/sessions", `{"mode":"quick"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var view app.SessionView
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, app.ModeQuickSell, view.Mode)
	base := "/api/sessions/" + view.ID

	resp, _ = call(t, srv, http.MethodPost, base+"/lines/curtain", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, srv, http.MethodPut, base+"/lines/curtain/0/item", `{"itemName":"Linen White"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode, "sold out items cannot be picked")
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, raw).Code)

	resp, _ = call(t, srv, http.MethodPut, base+"/lines/curtain/0/item", `{"itemName":"Velvet Red"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, srv, http.MethodPut, base+"/lines/curtain/0/quantity", `{"quantity":11}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, raw).Code)

	resp, _ = call(t, srv, http.MethodPut, base+"/lines/curtain/0/quantity", `{"quantity":"2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, srv, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_PAYMENT", decodeError(t, raw).Code)
	assert.Equal(t, 0, stub.sells())

	resp, raw = call(t, srv, http.MethodPut, base+"/payment", `{"payment":3000,"paymentType":"card"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.True(t, decimal.NewFromInt(3000).Equal(view.Totals.GrandTotal))

	resp, raw = call(t, srv, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var res app.QuickSellSubmitResult
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, "B-0042", res.Bill.BillNo)
	assert.Empty(t, res.PrintError)

	require.Equal(t, 1, stub.sells())
	sent := stub.quickSells[0]
	assert.Equal(t, "card", sent["paymentType"])
	assert.EqualValues(t, 3000, sent["billTotal"])
}

func TestSessionErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	_, raw := call(t, srv, http.MethodPost, "/api/sessions", `{"mode":"order"}`)
	var view app.SessionView
	require.NoError(t, json.Unmarshal(raw, &view))
	base := "/api/sessions/" + view.ID

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown session", http.MethodGet, "/api/sessions/nope", "", http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"bad mode", http.MethodPost, "/api/sessions", `{"mode":"layaway"}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad category", http.MethodPost, base + "/lines/sofas", "", http.StatusBadRequest, "BAD_REQUEST"},
		{"bad index", http.MethodPut, base + "/lines/curtain/x/item", `{"itemName":"Velvet Red"}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad json", http.MethodPut, base + "/discount", `{`, http.StatusBadRequest, "BAD_REQUEST"},
		{"bad payment type", http.MethodPut, base + "/payment", `{"paymentType":"cheque"}`, http.StatusBadRequest, "INVALID_PAYMENT_TYPE"},
		{"missing customer", http.MethodPost, base + "/submit", "", http.StatusUnprocessableEntity, "MISSING_CUSTOMER_FIELDS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := call(t, srv, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			e := decodeError(t, raw)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.NotEmpty(t, e.RequestID)
		})
	}
}

func TestBackendErrorsMapped(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, raw := call(t, srv, http.MethodGet, "/api/orders/missing", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "NOT_FOUND", e.Code)
	assert.Equal(t, "Order not found", e.Error)

	resp, raw = call(t, srv, http.MethodGet, "/api/orders/broken", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "database offline", decodeError(t, raw).Error)

	resp, raw = call(t, srv, http.MethodGet, "/api/orders/o1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res app.OrderResult
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, "c1", res.Order.CustomerID.ID)
	assert.True(t, decimal.NewFromInt(500).Equal(res.Order.Balance))
}

func TestRequestBodyLimit(t *testing.T) {
	h, _ := newTestHandler(t)

	big := `{"mode":"` + strings.Repeat("q", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(big))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_TOO_LARGE", decodeError(t, rec.Body.Bytes()).Code)
}

func TestCORS(t *testing.T) {
	h := web.CORS("https://till.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantAllow  string
		wantStatus int
	}{
		{"allowed", http.MethodGet, "https://till.example.com", "https://till.example.com", http.StatusOK},
		{"other origin", http.MethodGet, "https://evil.example.com", "", http.StatusOK},
		{"preflight", http.MethodOptions, "https://till.example.com", "https://till.example.com", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/stock", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

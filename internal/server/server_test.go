package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/selimozcann/PhishGuard/internal/history"
	"github.com/selimozcann/PhishGuard/internal/logger"
	"github.com/selimozcann/PhishGuard/internal/model"
	"github.com/selimozcann/PhishGuard/internal/server"
)

func setupServer(t *testing.T, store *history.Store) *httptest.Server {
	t.Helper()
	srv := server.New(server.Config{ListLimit: 10}, store, logger.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postScan(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/scan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestScanEndpoint(t *testing.T) {
	store := history.New(history.Options{Window: 24 * time.Hour})
	ts := setupServer(t, store)

	resp := postScan(t, ts, `{"url":"http://192.168.1.1/login"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var res model.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ResultStatus != model.ResultPhishing || res.RiskScore != 50 || res.Domain != "192.168.1.1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if store.Len() != 1 {
		t.Fatalf("expected scan to be stored, len %d", store.Len())
	}
}

func TestScanUsesRecentHistory(t *testing.T) {
	store := history.New(history.Options{Window: time.Hour})
	cached := model.ScanResult{URL: "https://example.com/", Domain: "example.com", ResultStatus: model.ResultPhishing, RiskScore: 77}
	store.Save(cached)
	ts := setupServer(t, store)

	resp := postScan(t, ts, `{"url":"https://example.com/"}`)
	var res model.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.RiskScore != 77 {
		t.Fatalf("expected cached result, got %+v", res)
	}
	if store.Len() != 1 {
		t.Fatalf("cache hit must not store again, len %d", store.Len())
	}
}

func TestScanRejectsInvalidInput(t *testing.T) {
	store := history.New(history.Options{})
	ts := setupServer(t, store)

	for _, body := range []string{
		`{"url":"not a url"}`,
		`{"url":""}`,
		`{}`,
		`{"url":"example.com"}`,
		`not json`,
	} {
		resp := postScan(t, ts, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.StatusCode)
		}
		var e struct {
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if e.Message != "Invalid URL" || len(e.Errors) == 0 {
			t.Fatalf("%s: unexpected error body %+v", body, e)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("invalid input must not be stored")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := setupServer(t, history.New(history.Options{}))
	resp, err := http.Get(ts.URL + "/api/scan")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed || resp.Header.Get("Allow") != http.MethodPost {
		t.Fatalf("expected 405 with Allow header, got %d %q", resp.StatusCode, resp.Header.Get("Allow"))
	}
}

func TestHistoryAndStats(t *testing.T) {
	store := history.New(history.Options{})
	ts := setupServer(t, store)

	resp, err := http.Get(ts.URL + "/api/history")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var empty []model.HistoryItem
	if err := json.NewDecoder(resp.Body).Decode(&empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty JSON array, got %v", empty)
	}

	for _, u := range []string{"https://example.com/", "http://192.168.1.1/", "http://example.com/"} {
		postScan(t, ts, `{"url":"`+u+`"}`)
	}

	resp, err = http.Get(ts.URL + "/api/history?limit=2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var items []model.HistoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(items) != 2 || items[0].URL != "http://example.com/" || items[0].Status != model.ResultSuspicious {
		t.Fatalf("unexpected history %+v", items)
	}
	if items[0].Time != "just now" {
		t.Fatalf("unexpected relative time %q", items[0].Time)
	}

	resp, err = http.Get(ts.URL + "/api/history?limit=zero")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var st model.Stats
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if st.Total != 3 || len(st.ByStatus) != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.TopDomains[0].Domain != "example.com" || st.TopDomains[0].Count != 2 {
		t.Fatalf("unexpected top domain %+v", st.TopDomains)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	srv := server.New(server.Config{Addr: addr, ReadTimeout: time.Second, WriteTimeout: time.Second}, history.New(history.Options{}), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not come up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected shutdown error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

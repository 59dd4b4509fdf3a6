// Package mockserver provides a mock Binance klines endpoint for
// testing. It serves a fixed bar series over REST so vendor-facing
// tests stay deterministic and offline.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-data/internal/types"
)

// pageSize caps one klines response the way Binance does.
const pageSize = 500

// KlinesRequest records one klines query the server answered.
type KlinesRequest struct {
	Symbol   string
	Interval string
	Start    time.Time
	End      time.Time
}

// MockBinanceServer serves GET /api/v3/klines from fixed bar series.
type MockBinanceServer struct {
	mu sync.RWMutex

	// HTTP server
	httpServer *http.Server
	listener   net.Listener

	// Market data, keyed by symbol and ordered by time ascending
	bars map[string][]types.BarData

	// Queries received so far
	requests []KlinesRequest
}

// NewMockBinanceServer creates a server with no series loaded.
func NewMockBinanceServer() *MockBinanceServer {
	return &MockBinanceServer{
		httpServer: nil,
		listener:   nil,
		bars:       make(map[string][]types.BarData),
		requests:   nil,
	}
}

// SetBars replaces the series served for a symbol. Bars must be
// ordered by time ascending.
func (s *MockBinanceServer) SetBars(symbol string, bars []types.BarData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[symbol] = bars
}

// Requests returns a copy of the klines queries received so far.
func (s *MockBinanceServer) Requests() []KlinesRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]KlinesRequest, len(s.requests))
	copy(requests, s.requests)
	return requests
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockBinanceServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/api/v3/klines", s.handleKlines).Methods("GET")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockBinanceServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *MockBinanceServer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *MockBinanceServer) BaseURL() string {
	return "http://" + s.Address()
}

// handleKlines handles GET /api/v3/klines
func (s *MockBinanceServer) handleKlines(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	interval := r.URL.Query().Get("interval")
	startTimeStr := r.URL.Query().Get("startTime")
	endTimeStr := r.URL.Query().Get("endTime")

	if symbol == "" || interval == "" {
		http.Error(w, "Missing required parameters", http.StatusBadRequest)
		return
	}

	// Parse times; absent bounds cover the whole series
	var startTime, endTime time.Time
	if startTimeStr != "" {
		ms, err := strconv.ParseInt(startTimeStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid startTime", http.StatusBadRequest)
			return
		}
		startTime = time.UnixMilli(ms)
	}
	if endTimeStr != "" {
		ms, err := strconv.ParseInt(endTimeStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid endTime", http.StatusBadRequest)
			return
		}
		endTime = time.UnixMilli(ms)
	}

	s.mu.Lock()
	s.requests = append(s.requests, KlinesRequest{
		Symbol:   symbol,
		Interval: interval,
		Start:    startTime,
		End:      endTime,
	})
	series := s.bars[symbol]
	s.mu.Unlock()

	// Select klines with an open time inside [startTime, endTime],
	// capped at one Binance page
	klines := make([][]interface{}, 0, pageSize)
	for _, bar := range series {
		if !startTime.IsZero() && bar.Time.Before(startTime) {
			continue
		}
		if !endTime.IsZero() && bar.Time.After(endTime) {
			break
		}
		if len(klines) == pageSize {
			break
		}

		// Binance kline format: [openTime, open, high, low, close, volume, closeTime, ...]
		closeTime := bar.Time.Add(bar.Interval.Duration()).UnixMilli() - 1
		klines = append(klines, []interface{}{
			bar.Time.UnixMilli(),                        // Open time
			strconv.FormatFloat(bar.Open, 'f', 8, 64),   // Open
			strconv.FormatFloat(bar.High, 'f', 8, 64),   // High
			strconv.FormatFloat(bar.Low, 'f', 8, 64),    // Low
			strconv.FormatFloat(bar.Close, 'f', 8, 64),  // Close
			strconv.FormatFloat(bar.Volume, 'f', 8, 64), // Volume
			closeTime, // Close time
			"0",       // Quote asset volume
			0,         // Number of trades
			"0",       // Taker buy base asset volume
			"0",       // Taker buy quote asset volume
			"0",       // Ignore
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(klines)
}

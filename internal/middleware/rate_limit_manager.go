package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	OperationLead   = "lead"
	OperationUpload = "upload"
	OperationBackup = "backup"
)

// RateLimitManager manages rate limiters with lifecycle control
type RateLimitManager struct {
	visitors     map[string]*visitor
	visitorsMu   sync.RWMutex
	operations   map[string]map[string]*visitor
	operationsMu sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewRateLimitManager creates a new rate limit manager with context-based lifecycle
func NewRateLimitManager(ctx context.Context) *RateLimitManager {
	managerCtx, cancel := context.WithCancel(ctx)

	m := &RateLimitManager{
		visitors:   make(map[string]*visitor),
		operations: make(map[string]map[string]*visitor),
		ctx:        managerCtx,
		cancel:     cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// GetVisitor retrieves or creates a rate limiter for the given IP
func (m *RateLimitManager) GetVisitor(ip string, requestsPerWindow int, windowSeconds int, burst int) *rate.Limiter {
	if requestsPerWindow <= 0 {
		return nil
	}

	m.visitorsMu.Lock()
	defer m.visitorsMu.Unlock()

	v, exists := m.visitors[ip]
	if !exists {
		if burst < requestsPerWindow {
			burst = requestsPerWindow
		}
		limiter := rate.NewLimiter(windowLimit(requestsPerWindow, windowSeconds), burst)
		m.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// GetOperationLimiter retrieves or creates the limiter of one IP for a named
// operation such as lead submission or uploads.
func (m *RateLimitManager) GetOperationLimiter(ip string, operation string, requestsPerWindow int, windowSeconds int) *rate.Limiter {
	if requestsPerWindow <= 0 || operation == "" {
		return nil
	}

	m.operationsMu.Lock()
	defer m.operationsMu.Unlock()

	limiters, ok := m.operations[operation]
	if !ok {
		limiters = make(map[string]*visitor)
		m.operations[operation] = limiters
	}

	v, exists := limiters[ip]
	if !exists {
		limiter := rate.NewLimiter(windowLimit(requestsPerWindow, windowSeconds), requestsPerWindow)
		limiters[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func windowLimit(requestsPerWindow int, windowSeconds int) rate.Limit {
	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	limitPerSecond := float64(requestsPerWindow) / float64(windowSeconds)
	if limitPerSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(limitPerSecond)
}

// cleanupLoop periodically removes inactive rate limiters
func (m *RateLimitManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

// cleanup removes inactive rate limiters. General visitors expire after three
// minutes, operation limiters after the longest default window.
func (m *RateLimitManager) cleanup(now time.Time) {
	m.visitorsMu.Lock()
	for ip, v := range m.visitors {
		if now.Sub(v.lastSeen) > 3*time.Minute {
			delete(m.visitors, ip)
		}
	}
	m.visitorsMu.Unlock()

	m.operationsMu.Lock()
	for operation, limiters := range m.operations {
		for ip, v := range limiters {
			if now.Sub(v.lastSeen) > time.Hour {
				delete(limiters, ip)
			}
		}
		if len(limiters) == 0 {
			delete(m.operations, operation)
		}
	}
	m.operationsMu.Unlock()
}

// Shutdown stops the cleanup goroutine and waits for it to finish
func (m *RateLimitManager) Shutdown() error {
	m.cancel()
	m.wg.Wait()
	return nil
}

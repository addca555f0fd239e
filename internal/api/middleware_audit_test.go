// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/suite"

	"github.com/UnivaCorporation/tortuga/internal/audit"
)

// fakeAuditStore is a simple in-memory audit store for testing.
type fakeAuditStore struct {
	mu      sync.Mutex
	entries []audit.Entry
	calls   int
	err     error
}

func (f *fakeAuditStore) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return f.err
	}

	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) getEntries() []audit.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make([]audit.Entry, len(f.entries))
	copy(cp, f.entries)
	return cp
}

func (f *fakeAuditStore) getCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type AuditMiddlewareTestSuite struct {
	suite.Suite
}

func (s *AuditMiddlewareTestSuite) TestAuditMiddleware() {
	tests := []struct {
		name         string
		subject      string
		roles        []string
		handlerErr   error
		storeErr     error
		validateFunc func(store *fakeAuditStore)
	}{
		{
			name:    "authenticated request is logged",
			subject: "installer",
			roles:   []string{"read"},
			validateFunc: func(store *fakeAuditStore) {
				s.Eventually(func() bool {
					return len(store.getEntries()) == 1
				}, time.Second, 10*time.Millisecond)

				entry := store.getEntries()[0]
				s.NotEmpty(entry.ID)
				s.Equal("installer", entry.User)
				s.Equal(http.MethodGet, entry.Method)
				s.Equal("/v1/parameters/DNSZone", entry.Path)
				s.Equal(http.StatusOK, entry.ResponseCode)
				s.Equal([]string{"read"}, entry.Roles)
				s.NotEmpty(entry.RequestID)
			},
		},
		{
			name:       "rejected request records the error status",
			subject:    "installer",
			roles:      []string{"monitor"},
			handlerErr: echo.NewHTTPError(http.StatusForbidden, "denied"),
			validateFunc: func(store *fakeAuditStore) {
				s.Eventually(func() bool {
					return len(store.getEntries()) == 1
				}, time.Second, 10*time.Millisecond)

				s.Equal(http.StatusForbidden, store.getEntries()[0].ResponseCode)
			},
		},
		{
			name:    "unauthenticated request is skipped",
			subject: "",
			validateFunc: func(store *fakeAuditStore) {
				s.Never(func() bool {
					return store.getCalls() > 0
				}, 50*time.Millisecond, 10*time.Millisecond)
			},
		},
		{
			name:     "store error is handled gracefully",
			subject:  "installer",
			roles:    []string{"admin"},
			storeErr: errors.New("write failed"),
			validateFunc: func(store *fakeAuditStore) {
				s.Eventually(func() bool {
					return store.getCalls() == 1
				}, time.Second, 10*time.Millisecond)
				s.Empty(store.getEntries())
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			store := &fakeAuditStore{err: tt.storeErr}

			e := echo.New()
			e.Use(middleware.RequestID())
			e.Use(auditMiddleware(store, slog.Default()))
			e.GET("/v1/parameters/:name", func(c echo.Context) error {
				// Simulate scopeMiddleware setting context values.
				if tt.subject != "" {
					c.Set(ContextKeySubject, tt.subject)
					c.Set(ContextKeyRoles, tt.roles)
				}
				if tt.handlerErr != nil {
					return tt.handlerErr
				}
				return c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/parameters/DNSZone", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			tt.validateFunc(store)
		})
	}
}

func (s *AuditMiddlewareTestSuite) TestErrorStatus() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "http error keeps its code",
			err:  echo.NewHTTPError(http.StatusUnauthorized, "no"),
			want: http.StatusUnauthorized,
		},
		{
			name: "other errors are internal",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, errorStatus(tt.err))
		})
	}
}

func TestAuditMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuditMiddlewareTestSuite))
}

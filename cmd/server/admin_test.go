package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acmchapter/recruitment-api/internal/session"
	"github.com/acmchapter/recruitment-api/internal/types"
)

func loginPayload(username, password string) map[string]any {
	return map[string]any{"username": username, "password": password}
}

func sessionCookieFrom(t *testing.T, res *resp) *http.Cookie {
	t.Helper()

	for _, cookie := range res.cookies {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}

func (s *ServerTestSuite) Test_AdminLogin() {
	tests := []struct {
		name           string
		payload        map[string]any
		bodyTester     func(t *testing.T, res *resp)
		expectedStatus int
	}{
		{
			name:           "Valid",
			payload:        loginPayload(adminUsername, adminPassword),
			expectedStatus: http.StatusOK,
			bodyTester: func(t *testing.T, res *resp) {
				body := parseBody(t, res.body)
				assert.Equal(t, true, body["success"], "expected success")

				cookie := sessionCookieFrom(t, res)
				if assert.NotNil(t, cookie, "expected a session cookie") {
					assert.True(
						t,
						s.sessions.ValidateSession(cookie.Value),
						"cookie does not carry a valid session token",
					)
					assert.True(t, cookie.HttpOnly, "cookie must be http-only")
				}
			},
		},
		{
			name:           "WrongPassword",
			payload:        loginPayload(adminUsername, "not the password"),
			expectedStatus: http.StatusUnauthorized,
			bodyTester: func(t *testing.T, res *resp) {
				body := parseBody(t, res.body)
				assert.Equal(t, false, body["success"], "error envelope carries success:false")
				assert.Contains(t, res.body, "Invalid credentials")
				assert.Nil(t, sessionCookieFrom(t, res), "no cookie on failed login")
			},
		},
		{
			name:           "WrongUsername",
			payload:        loginPayload("not-the-admin", adminPassword),
			expectedStatus: http.StatusUnauthorized,
			bodyTester: func(t *testing.T, res *resp) {
				assert.Contains(t, res.body, "Invalid credentials")
				assert.Nil(t, sessionCookieFrom(t, res), "no cookie on failed login")
			},
		},
		{
			name:           "MissingPassword",
			payload:        map[string]any{"username": adminUsername},
			expectedStatus: http.StatusBadRequest,
			bodyTester: func(t *testing.T, res *resp) {
				assertErrorBodyWithFields(t, parseBody(t, res.body))
			},
		},
	}

	for i, test := range tests {
		s.Run(test.name, func() {
			t := s.T()

			// Distinct client per case keeps the login window out of play.
			clientIP := fmt.Sprintf("10.4.0.%d", i+1)
			req := jsonRequest(t, http.MethodPost, s.server.URL+"/admin/auth/", test.payload, clientIP)
			res := doRequest(t, req)

			assert.Equal(t, test.expectedStatus, res.code, "unexpected status: %s", res.body)
			test.bodyTester(t, res)
		})
	}
}

func (s *ServerTestSuite) Test_AdminLoginRateLimited() {
	t := s.T()

	payload := loginPayload(adminUsername, "not the password")

	for range s.config.RateLimit.AdminLogin.MaxRequests {
		req := jsonRequest(t, http.MethodPost, s.server.URL+"/admin/auth/", payload, "10.4.1.1")
		res := doRequest(t, req)
		assert.Equal(t, http.StatusUnauthorized, res.code, "unexpected status: %s", res.body)
	}

	// The limiter runs ahead of credential comparison, so even the right
	// password is refused once the window is full.
	req := jsonRequest(
		t,
		http.MethodPost,
		s.server.URL+"/admin/auth/",
		loginPayload(adminUsername, adminPassword),
		"10.4.1.1",
	)
	res := doRequest(t, req)

	assert.Equal(t, http.StatusTooManyRequests, res.code, "unexpected status: %s", res.body)
	assert.Contains(t, res.body, "Too many login attempts")
	assert.Nil(t, sessionCookieFrom(t, res), "no cookie once throttled")
}

func (s *ServerTestSuite) Test_AdminStatus() {
	token, err := s.sessions.IssueSession()
	s.Require().NoError(err, "failed to issue session token")

	tests := []struct {
		name          string
		cookie        *http.Cookie
		authenticated bool
	}{
		{
			name:          "NoCookie",
			cookie:        nil,
			authenticated: false,
		},
		{
			name:          "ValidSession",
			cookie:        &http.Cookie{Name: session.CookieName, Value: token},
			authenticated: true,
		},
		{
			name:          "GarbageToken",
			cookie:        &http.Cookie{Name: session.CookieName, Value: "not a token"},
			authenticated: false,
		},
	}

	for _, test := range tests {
		s.Run(test.name, func() {
			t := s.T()

			req := jsonRequest(t, http.MethodGet, s.server.URL+"/admin/auth/", nil, "10.4.2.1")
			if test.cookie != nil {
				req.AddCookie(test.cookie)
			}
			res := doRequest(t, req)

			assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)
			assert.Equal(
				t,
				test.authenticated,
				parseBody(t, res.body)["authenticated"],
				"unexpected authentication status",
			)
		})
	}
}

func (s *ServerTestSuite) Test_AdminLogout() {
	t := s.T()

	req := jsonRequest(t, http.MethodDelete, s.server.URL+"/admin/auth/", nil, "10.4.3.1")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)
	assert.Equal(t, true, parseBody(t, res.body)["success"], "expected success")

	cookie := sessionCookieFrom(t, res)
	if assert.NotNil(t, cookie, "expected an expiring session cookie") {
		assert.Empty(t, cookie.Value, "cookie value not cleared")
		assert.Negative(t, cookie.MaxAge, "cookie not expired")
	}
}

func (s *ServerTestSuite) Test_AdminSubmissions() {
	t := s.T()

	seedSubmission(t, s.tx, "23ucs111", types.DomainWebDevelopment)
	seedSubmission(t, s.tx, "23ucs222", types.DomainAIML)

	req := jsonRequest(t, http.MethodGet, s.server.URL+"/admin/submissions/", nil, "10.4.4.1")
	res := doRequest(t, req)
	assert.Equal(t, http.StatusUnauthorized, res.code, "list must require a session: %s", res.body)

	token, err := s.sessions.IssueSession()
	s.Require().NoError(err, "failed to issue session token")

	req = jsonRequest(t, http.MethodGet, s.server.URL+"/admin/submissions/", nil, "10.4.4.1")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	res = doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	parsed := parseBody(t, res.body)
	assert.Equal(t, true, parsed["success"], "expected success")
	assert.Len(t, parsed["data"], 2, "expected both seeded rows")
}

func (s *ServerTestSuite) Test_AdminSecurityStats() {
	t := s.T()

	req := jsonRequest(t, http.MethodGet, s.server.URL+"/admin/security/", nil, "10.4.6.1")
	res := doRequest(t, req)
	assert.Equal(t, http.StatusUnauthorized, res.code, "stats must require a session: %s", res.body)

	// Provoke a failed login so the counters have something to report.
	req = jsonRequest(
		t,
		http.MethodPost,
		s.server.URL+"/admin/auth/",
		loginPayload(adminUsername, "not the password"),
		"10.4.6.2",
	)
	res = doRequest(t, req)
	assert.Equal(t, http.StatusUnauthorized, res.code, "unexpected status: %s", res.body)

	token, err := s.sessions.IssueSession()
	s.Require().NoError(err, "failed to issue session token")

	req = jsonRequest(t, http.MethodGet, s.server.URL+"/admin/security/", nil, "10.4.6.1")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	res = doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	parsed := parseBody(t, res.body)
	assert.Equal(t, true, parsed["success"], "expected success")

	data, ok := parsed["data"].(map[string]any)
	if assert.True(t, ok, "data missing from response") {
		stats, ok := data["error_stats"].(map[string]any)
		if assert.True(t, ok, "error_stats missing from response") {
			// The monitor is process-global, so other tests may have added
			// events; only lower bounds are stable.
			assert.GreaterOrEqual(t, stats["total_24h"], 1.0, "expected at least one event")

			byType, ok := stats["by_type"].(map[string]any)
			if assert.True(t, ok, "by_type missing from response") {
				assert.GreaterOrEqual(
					t,
					byType["failed_login"],
					1.0,
					"failed login should be counted",
				)
			}
		}
	}
}

func (s *ServerTestSuite) Test_CSRF() {
	t := s.T()

	req := jsonRequest(t, http.MethodGet, s.server.URL+"/csrf/", nil, "10.4.5.1")
	res := doRequest(t, req)

	assert.Equal(t, http.StatusOK, res.code, "unexpected status: %s", res.body)

	parsed := parseBody(t, res.body)
	assert.Equal(t, true, parsed["success"], "expected success")

	token, ok := parsed["token"].(string)
	if assert.True(t, ok, "token missing from response") {
		assert.True(t, s.sessions.ValidateCSRF(token), "token does not verify")
		assert.False(
			t,
			s.sessions.ValidateSession(token),
			"a csrf token must never pass for a session",
		)
	}
}

package admin

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	servermiddleware "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/response"
	"github.com/acmchapter/recruitment-api/internal/audit"
	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/security"
	"github.com/acmchapter/recruitment-api/internal/session"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// Used when doing a fake compare in the error case of Login
var defaultHashForError string

// Generate a hash
func init() {
	var err error

	defaultHashForError, err = argon2id.CreateHash(
		"bnZSraUCS+nZh3MI8F3iiXbKFBcAyJhvAB6u/GBJzhC00ZPAQlyYVpQ+aryw7QvE2ZI=",
		argon2id.DefaultParams,
	)
	if err != nil {
		logger.Logger.Error("error creating default hash", "error", err)
		os.Exit(1)
	}
}

// Does a fake hash and compare for a hard coded password. Keeps the wrong
// username path as slow as the wrong password path.
func fakePasswordHash(ctx context.Context) {
	_, span := tracer.Start(ctx, "fakePasswordHash")
	defer span.End()

	_, err := argon2id.ComparePasswordAndHash("i am a very real password", defaultHashForError)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compare fake password with default hash for error")
		return
	}

	span.AddEvent("compared fake password and default hash for error")
}

func (h *Handler) Login(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Login")
	defer span.End()

	var rdata types.AuthRequest

	span.AddEvent("parsing request body")
	err := c.Bind(&rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse request data")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("failed to parse request data"),
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	clientIP := c.RealIP()
	receivedAt := servermiddleware.RequestTime(c)
	auditContext := audit.Context{ClientIP: &clientIP, ReceivedAt: &receivedAt}

	span.SetAttributes(attribute.String("username", rdata.Username))

	if rdata.Username != h.config.Admin.Username {
		span.AddEvent("unknown username")
		// Waste time for unknown username
		fakePasswordHash(ctx)
		audit.LogAdminLogin(auditContext, rdata.Username, false, "invalid_credentials")
		security.Record(security.Event{
			Type:     security.EvtFailedLogin,
			ClientIP: clientIP,
			Endpoint: "/admin/auth/",
			At:       receivedAt,
		})

		span.SetStatus(codes.Ok, "failed login attempt")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusUnauthorized,
			types.StringError("Invalid credentials"),
		)
	}

	span.AddEvent("checking hash")
	match, err := argon2id.ComparePasswordAndHash(rdata.Password, h.config.Admin.PasswordHash)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to compare password and hash")
		return response.InternalServerError
	}

	if !match {
		span.AddEvent("failed login attempt")
		audit.LogAdminLogin(auditContext, rdata.Username, false, "invalid_credentials")
		security.Record(security.Event{
			Type:     security.EvtFailedLogin,
			ClientIP: clientIP,
			Endpoint: "/admin/auth/",
			At:       receivedAt,
		})

		span.SetStatus(codes.Ok, "failed login attempt")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusUnauthorized,
			types.StringError("Invalid credentials"),
		)
	}

	token, err := h.sessions.IssueSession()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to issue session token")
		return response.InternalServerError
	}

	c.SetCookie(h.sessionCookie(token, session.SessionTTL))

	audit.LogAdminLogin(auditContext, rdata.Username, true, "")

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "successful login attempt")
	return c.JSON(http.StatusOK, types.AuthResponse{Success: true})
}

func (h *Handler) Status(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Status")
	defer span.End()

	authenticated := false
	cookie, err := c.Cookie(session.CookieName)
	if err == nil {
		authenticated = h.sessions.ValidateSession(cookie.Value)
	}

	span.SetAttributes(attribute.Bool("authenticated", authenticated))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "reported session status")
	return c.JSON(http.StatusOK, types.AuthStatusResponse{Authenticated: authenticated})
}

// Logout expires the cookie client-side. Tokens are stateless so there is
// nothing to revoke server-side.
func (h *Handler) Logout(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Logout")
	defer span.End()

	clientIP := c.RealIP()
	receivedAt := servermiddleware.RequestTime(c)
	audit.LogAdminLogout(
		audit.Context{ClientIP: &clientIP, ReceivedAt: &receivedAt},
		h.config.Admin.Username,
	)

	expired := h.sessionCookie("", -time.Hour)
	expired.MaxAge = -1
	c.SetCookie(expired)

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "cleared session cookie")
	return c.JSON(http.StatusOK, types.AuthResponse{Success: true})
}

func (h *Handler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.config.Session.SecureCookies,
	}
}

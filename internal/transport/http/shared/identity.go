package shared

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"timeclock/internal/domain/auth"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
)

// Identity returns the caller, writing a 401 when there is none.
func Identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return auth.Identity{}, false
	}
	return identity, true
}

// TargetEmployee picks the single employee an action applies to. Callers act
// on themselves by default; naming another employee needs permission.
func TargetEmployee(identity auth.Identity, requested, permission string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" || identity.Owns(requested) {
		if identity.EmployeeID == "" {
			return "", ErrEmployeeRequired
		}
		return identity.EmployeeID, nil
	}
	if !identity.Can(permission) {
		return "", ErrForbidden
	}
	return requested, nil
}

// ScopeEmployee is TargetEmployee for list reads, where an empty result means
// every employee and is only open to callers holding permission.
func ScopeEmployee(identity auth.Identity, requested, permission string) (string, error) {
	requested = strings.TrimSpace(requested)
	if identity.Can(permission) {
		return requested, nil
	}
	if requested != "" && !identity.Owns(requested) {
		return "", ErrForbidden
	}
	if identity.EmployeeID == "" {
		return "", ErrForbidden
	}
	return identity.EmployeeID, nil
}

type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

// Audit records a decision. Failures are logged; the decision already stands.
func Audit(r *http.Request, auditor Auditor, actorID, action, entityType, entityID string, before, after any) {
	if auditor == nil {
		return
	}
	err := auditor.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), ClientIP(r), before, after)
	if err != nil {
		slog.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}

func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

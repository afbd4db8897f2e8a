package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"pressroom/internal/handler/http/respond"
	authsvc "pressroom/internal/service/auth"
	"pressroom/pkg/ratelimit"
)

// Handler serves the login endpoints.
type Handler struct {
	Service *authsvc.Service
	Limiter *ratelimit.Limiter
	Logger  *slog.Logger
	// Secure marks the session cookie Secure; off for local HTTP.
	Secure bool
}

// Register mounts the login endpoints on the mux. All of them are
// public by design.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST   /auth/otp", http.HandlerFunc(h.RequestCode))
	mux.Handle("POST   /auth/verify", http.HandlerFunc(h.VerifyCode))
	mux.Handle("POST   /auth/logout", http.HandlerFunc(h.Logout))
}

type requestCodeInput struct {
	Email string `json:"email"`
}

// RequestCode issues a one-time login code and delivers it by mail. The
// response does not reveal whether the address is known.
func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var in requestCodeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.Service.RequestCode(r.Context(), in.Email); err != nil {
		if errors.Is(err, authsvc.ErrInvalidEmail) {
			respond.Error(w, http.StatusBadRequest, errors.New("invalid email address"))
			return
		}
		h.Logger.ErrorContext(r.Context(), "failed to issue login code", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	loginCodesIssuedTotal.Inc()
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Login code sent"})
}

type verifyCodeInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type verifyCodeOutput struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyCode exchanges a valid login code for a signed token and a
// session cookie.
func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var in verifyCodeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	out, err := h.Service.VerifyCode(r.Context(), in.Email, in.Code)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidEmail):
			respond.Error(w, http.StatusBadRequest, errors.New("invalid email address"))
		case errors.Is(err, authsvc.ErrTooManyAttempts):
			loginsTotal.WithLabelValues("throttled").Inc()
			respond.Error(w, http.StatusTooManyRequests, errors.New("too many attempts"))
		case errors.Is(err, authsvc.ErrCodeInvalid):
			loginsTotal.WithLabelValues("rejected").Inc()
			respond.Error(w, http.StatusUnauthorized, errors.New("invalid or expired code"))
		default:
			h.Logger.ErrorContext(r.Context(), "failed to verify login code", slog.String("error", err.Error()))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    out.SessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	loginsTotal.WithLabelValues("accepted").Inc()
	respond.JSON(w, http.StatusOK, verifyCodeOutput{
		Token: out.Token,
		User:  userJSON{ID: out.User.ID, Email: out.User.Email},
	})
}

// Logout destroys the session behind the cookie, if any, and clears it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.Service.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// allow applies the per-IP rate limit. A limiter failure fails open so
// logins keep working.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.Limiter == nil {
		return true
	}

	decision, err := h.Limiter.Allow(r.Context(), clientIP(r))
	if err != nil {
		h.Logger.WarnContext(r.Context(), "rate limit check failed", slog.String("error", err.Error()))
		return true
	}
	if !decision.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
		respond.Error(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

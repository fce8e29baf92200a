package httpapi

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/toolly/toolly/internal/common"
)

type signupRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email,omitempty"`
	TOTPSecret string `json:"totpSecret,omitempty"`
	TOTPCode   string `json:"totpCode,omitempty"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.users.Signup(r.Context(), req.Username, req.Password, req.Email, req.TOTPSecret, req.TOTPCode)
	if err != nil {
		if errors.Is(err, common.ErrInvalidTOTPCode) {
			writeErrorMessage(w, http.StatusBadRequest, "invalid authentication code")
			return
		}
		writeError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}

	if res.Requires2FA {
		writeJSON(w, http.StatusOK, map[string]any{
			"requires2FA":  true,
			"pendingToken": res.PendingToken,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token})
}

type validate2FARequest struct {
	PendingToken string `json:"pendingToken"`
	Code         string `json:"code"`
}

func (s *Server) handleValidate2FA(w http.ResponseWriter, r *http.Request) {
	var req validate2FARequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.users.Validate2FA(r.Context(), req.PendingToken, req.Code)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type passwordResetRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Username, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, common.ErrInvalidTOTPCode) {
			writeErrorMessage(w, http.StatusBadRequest, "invalid authentication code")
			return
		}
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (s *Server) handle2FASetup(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authorization required")
		return
	}

	setup, err := s.users.Setup2FA(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"secret":     setup.Secret,
		"otpauthURL": setup.ProvisioningURL,
	})
}

type enable2FARequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

func (s *Server) handle2FAEnable(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req enable2FARequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.users.Enable2FA(r.Context(), userID, req.Secret, req.Code); err != nil {
		if errors.Is(err, common.ErrInvalidTOTPCode) {
			writeErrorMessage(w, http.StatusBadRequest, "invalid authentication code")
			return
		}
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "two-factor authentication enabled"})
}

func (s *Server) handleUserExists(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeErrorMessage(w, http.StatusBadRequest, "username is required")
		return
	}

	exists, err := s.users.UsernameExists(r.Context(), username)
	if err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

const csrfTokenLength = 32

// handleCSRFToken issues the double-submit pair: the token goes out both as a
// cookie and in the body, and mutating requests must present both.
func (s *Server) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, csrfTokenLength)
	if _, err := rand.Read(buf); err != nil {
		writeError(r.Context(), w, s.logger, err)
		return
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     common.CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

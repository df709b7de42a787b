package http

import (
	"net/http"

	"churchapp/internal/dto"
	"churchapp/internal/service"
)

// ResetTokenParser resolves the signed token carried by the emailed
// password-reset link back to the account email.
type ResetTokenParser interface {
	Parse(token string) (email string, err error)
}

type authHandler struct {
	auth   service.AuthService
	tokens service.TokenService
	links  ResetTokenParser
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *authHandler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.VerifyEmail(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Message{Message: "email verified"})
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *authHandler) requestReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Message{Message: "password reset email sent"})
}

// confirmReset accepts the account email in the body, or resolves it
// from the ?token= parameter carried by the emailed link.
func (h *authHandler) confirmReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirm
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			email, err := h.links.Parse(token)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, dto.Error{Error: "invalid reset token"})
				return
			}
			req.Email = email
		}
	}
	if err := h.auth.ConfirmPasswordReset(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Message{Message: "password reset successful"})
}

// logout revokes the token that authenticated this request. The key
// is re-read from the header; the singleton token model means the next
// login mints a fresh one.
func (h *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	key := tokenFromHeader(r.Header.Get("Authorization"))
	if err := h.tokens.Revoke(r.Context(), key); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Message{Message: "logged out"})
}

func (h *authHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	var req dto.ProfileUpdate
	if !decode(w, r, &req) {
		return
	}
	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *authHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := h.auth.DeleteAccount(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.Message{Message: "account deleted"})
}

func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/aussiebroadwan/claims/pkg/httpx"
	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Identities *service.IdentityService
}

// HandleRegister godoc
//
//	@Summary		Register an identity
//	@Description	Creates a new identity and returns an access token for it. Role defaults to EMPLOYEE.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		claimsdk.RegisterRequest			true	"Registration details"
//	@Success		201		{object}	claimsdk.AuthResponse
//	@Failure		400		{object}	claimsdk.ValidationErrorResponse	"Invalid fields"
//	@Failure		409		{object}	claimsdk.ErrorResponse				"Email already registered"
//	@Failure		429		{object}	claimsdk.ErrorResponse				"Rate limit exceeded"
//	@Router			/v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req claimsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	profile, token, err := h.Identities.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse(profile, token))
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access token. Unknown emails and wrong passwords are indistinguishable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		claimsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	claimsdk.AuthResponse
//	@Failure		400		{object}	claimsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	claimsdk.ErrorResponse	"Invalid credentials or inactive account"
//	@Failure		429		{object}	claimsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req claimsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	profile, token, err := h.Identities.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slogx.FromContext(r.Context()).Info("login rejected", "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(profile, token))
}

func authResponse(p domain.Profile, t domain.AccessToken) claimsdk.AuthResponse {
	return claimsdk.AuthResponse{
		AccessToken: t.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(t.ExpiresAt).Seconds()),
		ExpiresAt:   t.ExpiresAt,
		Identity:    toIdentity(p),
	}
}

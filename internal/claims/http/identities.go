package http

import (
	"net/http"

	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/aussiebroadwan/claims/pkg/httpx"
)

// IdentitiesHandler serves the caller's profile and identity administration.
type IdentitiesHandler struct {
	Identities *service.IdentityService
}

// HandleMe godoc
//
//	@Summary		Current identity
//	@Description	Returns the profile of the identity the bearer token belongs to.
//	@Tags			Identities
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	claimsdk.Identity
//	@Failure		401	{object}	claimsdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/me [get]
func (h *IdentitiesHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.Identities.Profile(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(profile))
}

// HandleList godoc
//
//	@Summary		List identities
//	@Description	Lists every identity, newest first. Admin only.
//	@Tags			Identities
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	claimsdk.IdentityList
//	@Failure		401	{object}	claimsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403	{object}	claimsdk.ErrorResponse	"Not an admin"
//	@Router			/v1/identities [get]
func (h *IdentitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	profiles, err := h.Identities.ListIdentities(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := claimsdk.IdentityList{Identities: make([]claimsdk.Identity, 0, len(profiles)), Count: len(profiles)}
	for _, p := range profiles {
		out.Identities = append(out.Identities, toIdentity(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate an identity
//	@Description	Blocks login and invalidates outstanding tokens of the identity on their next use. Admin only.
//	@Tags			Identities
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Identity ID"
//	@Success		200	{object}	claimsdk.Identity
//	@Failure		400	{object}	claimsdk.ValidationErrorResponse	"Cannot deactivate yourself"
//	@Failure		403	{object}	claimsdk.ErrorResponse				"Not an admin"
//	@Failure		404	{object}	claimsdk.ErrorResponse				"Unknown identity"
//	@Router			/v1/identities/{id}/deactivate [post]
func (h *IdentitiesHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// HandleActivate godoc
//
//	@Summary		Activate an identity
//	@Description	Restores login for a deactivated identity. Admin only.
//	@Tags			Identities
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Identity ID"
//	@Success		200	{object}	claimsdk.Identity
//	@Failure		403	{object}	claimsdk.ErrorResponse	"Not an admin"
//	@Failure		404	{object}	claimsdk.ErrorResponse	"Unknown identity"
//	@Router			/v1/identities/{id}/activate [post]
func (h *IdentitiesHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *IdentitiesHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	profile, err := h.Identities.SetActive(r.Context(), caller, r.PathValue("id"), active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(profile))
}

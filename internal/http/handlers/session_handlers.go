package handlers

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
)

// SignInHandler godoc
// @Summary Sign in
// @Description Records the shopper of a profile. A request carrying a valid profile token keeps its profile; otherwise a new profile is created. No password is involved.
// @Tags session
// @Accept json
// @Produce json
// @Param user body SignInRequest true "Shopper name and email"
// @Success 201 {object} SessionResponse
// @Failure 400 {array} ValidationError
// @Router /session [post]
func (s *Server) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	id := profileID(r)
	var token string
	var err error
	if id == "" {
		id, token, err = s.tokens.NewProfile()
	} else {
		token, err = s.tokens.Issue(id)
	}
	if err != nil {
		s.fail(w, r, err, "issue profile token")
		return
	}

	user, err := s.sessions.SignIn(r.Context(), id, req.Name, req.Email)
	if err != nil {
		s.fail(w, r, err, "sign in")
		return
	}

	s.respond(w, r, http.StatusCreated, SessionResponse{Token: token, User: user})
}

// GetSessionHandler godoc
// @Summary Current user
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {string} string "Missing or invalid token"
// @Failure 404 {string} string "Not signed in"
// @Router /session [get]
func (s *Server) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.CurrentUser(r.Context(), profileID(r))
	if errors.Is(err, session.ErrNotSignedIn) {
		http.Error(w, "not signed in", http.StatusNotFound)
		return
	}
	if err != nil {
		s.fail(w, r, err, "load session")
		return
	}
	s.respond(w, r, http.StatusOK, user)
}

// SignOutHandler godoc
// @Summary Sign out
// @Description Forgets the shopper and the conversation. The cart is kept.
// @Tags session
// @Security BearerAuth
// @Success 204
// @Failure 401 {string} string "Missing or invalid token"
// @Router /session [delete]
func (s *Server) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(r.Context(), profileID(r)); err != nil {
		s.fail(w, r, err, "sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

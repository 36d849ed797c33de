package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/middleware"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// decodeRequest reads and validates a request DTO, answering 400 itself when
// either fails.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := readJSON(w, r, req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return false
	}
	if errs := s.validateRequest(req); len(errs) > 0 {
		s.respond(w, r, http.StatusBadRequest, errs)
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		middleware.Logger(r.Context(), s.log).WithError(err).Warn("could not write response")
	}
}

func profileID(r *http.Request) string {
	id, _ := middleware.ProfileID(r.Context())
	return id
}

// fail answers a session error with the matching status. Unknown errors are
// logged with context and hidden behind a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, action string) {
	log := middleware.Logger(r.Context(), s.log)

	switch {
	case errors.Is(err, session.ErrInvalidUser), errors.Is(err, session.ErrEmptyMessage):
		http.Error(w, errorText(err), http.StatusBadRequest)
	case errors.Is(err, session.ErrNotSignedIn):
		http.Error(w, "sign in first", http.StatusUnauthorized)
	case errors.Is(err, session.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, session.ErrOutOfStock):
		http.Error(w, "product is out of stock", http.StatusConflict)
	case r.Context().Err() != nil:
		log.WithError(err).Info("client went away")
	default:
		log.WithError(errors.Wrap(err, action)).Error("request failed")
		http.Error(w, "could not "+action, http.StatusInternalServerError)
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidUser):
		return session.ErrInvalidUser.Error()
	case errors.Is(err, session.ErrEmptyMessage):
		return session.ErrEmptyMessage.Error()
	}
	return err.Error()
}

package handlers

import (
	"net/http"
)

// GetMessagesHandler godoc
// @Summary Conversation history
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Message
// @Failure 401 {string} string "Not signed in"
// @Router /chat/messages [get]
func (s *Server) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	history, err := s.sessions.History(r.Context(), profileID(r))
	if err != nil {
		s.fail(w, r, err, "load messages")
		return
	}
	s.respond(w, r, http.StatusOK, history)
}

// SendMessageHandler godoc
// @Summary Send a message to the assistant
// @Description Appends the message and the assistant reply to the conversation
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body ChatMessageRequest true "Message text"
// @Success 200 {object} session.SendResult
// @Failure 400 {array} ValidationError
// @Failure 401 {string} string "Not signed in"
// @Failure 429 {string} string "Too many requests"
// @Router /chat/messages [post]
func (s *Server) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	res, err := s.sessions.Send(r.Context(), profileID(r), req.Text)
	if err != nil {
		s.fail(w, r, err, "send message")
		return
	}
	s.respond(w, r, http.StatusOK, res)
}

// ResetChatHandler godoc
// @Summary Reset the conversation
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Message
// @Failure 401 {string} string "Not signed in"
// @Router /chat/reset [post]
func (s *Server) ResetChatHandler(w http.ResponseWriter, r *http.Request) {
	history, err := s.sessions.ResetChat(r.Context(), profileID(r))
	if err != nil {
		s.fail(w, r, err, "reset chat")
		return
	}
	s.respond(w, r, http.StatusOK, history)
}

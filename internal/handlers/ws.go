package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/store"
)

// Connect upgrades to a WebSocket where every text message is a batch of
// commands. Each batch is applied atomically and answered with the session
// state, or with a line error when the batch was rejected.
func (h *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var session Session
	if err := h.sessions.Get(id, &session); err != nil {
		h.fail(w, err)
		return
	}

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer c.Close()

	log := h.log.WithField("session", id)
	log.Debug("websocket connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("unable to read message")
			}
			return
		}
		if mt != websocket.TextMessage {
			log.WithField("type", mt).Warn("unexpected message type")
			return
		}

		reply, err := h.apply(id, string(message))
		if err != nil {
			log.WithError(err).Error("unable to apply commands")
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""))
			return
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("unable to write message")
			return
		}
	}
}

// apply runs a batch against the stored session. Command errors become a
// [LineErrorDTO] reply; anything else is returned.
func (h *GameHandler) apply(id string, text string) (any, error) {
	var (
		session Session
		chorded bool
	)
	err := h.sessions.Update(id, func(s *Session) error {
		var err error
		if chorded, err = s.Game.ExecuteBatch(text, h.rnd); err != nil {
			return err
		}
		s.stamp(h.now())
		session = *s
		return nil
	})

	var lineErr *game.LineError
	switch {
	case errors.As(err, &lineErr):
		return LineErrorDTO{Line: lineErr.Line, Error: lineErr.Err.Error()}, nil
	case errors.Is(err, store.ErrNotFound):
		h.log.WithFields(logrus.Fields{"session": id}).Info("session expired")
		return wrapError(errors.New("game not found")), nil
	case err != nil:
		return nil, err
	}

	dto := NewGameSessionDTO(&session)
	dto.Chorded = &chorded
	return dto, nil
}

package handlers

import (
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/game"
	"github.com/vancomm/minesweeper/internal/store"
)

const maxBatchBytes = 64 << 10

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *store.Store[Session]
	upgrader websocket.Upgrader
	rnd      *rand.Rand
	now      func() time.Time
}

// NewGameHandler wires game endpoints to sessions. rnd is only used while
// the store is locked, which keeps it safe to share between requests.
func NewGameHandler(
	log logrus.FieldLogger,
	sessions *store.Store[Session],
	upgrader websocket.Upgrader,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		upgrader: upgrader,
		rnd:      rnd,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// fail maps err to a status code and a JSON error body.
func (h *GameHandler) fail(w http.ResponseWriter, err error) {
	var lineErr *game.LineError
	switch {
	case errors.As(err, &lineErr):
		sendStatusJSON(w, h.log, http.StatusBadRequest, LineErrorDTO{
			Line:  lineErr.Line,
			Error: lineErr.Err.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		sendStatusJSON(w, h.log, http.StatusNotFound, wrapError(errors.New("game not found")))
	case errors.Is(err, game.ErrGameOver):
		sendStatusJSON(w, h.log, http.StatusConflict, wrapError(err))
	case errors.Is(err, errBadRequest),
		errors.Is(err, ErrBadMove),
		errors.Is(err, game.ErrInvalidParams),
		errors.Is(err, game.ErrOutOfBounds):
		sendStatusJSON(w, h.log, http.StatusBadRequest, wrapError(err))
	default:
		h.log.WithError(err).Error("unable to handle request")
		sendStatusJSON(w, h.log, http.StatusInternalServerError, wrapError(errors.New("internal error")))
	}
}

func (h *GameHandler) Levels(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, game.Levels)
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseGameParams(r.URL.Query())
	if err != nil {
		h.fail(w, err)
		return
	}

	g, err := game.New(params)
	if err != nil {
		h.fail(w, err)
		return
	}

	session := Session{
		ID:        store.NewKey(),
		Game:      *g,
		StartedAt: h.now(),
	}
	if err := h.sessions.Set(session.ID, session); err != nil {
		h.fail(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"session": session.ID,
		"params":  params.String(),
	}).Debug("created game session")

	sendJSONOrLog(w, h.log, NewGameSessionDTO(&session))
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var session Session
	if err := h.sessions.Get(r.PathValue("id"), &session); err != nil {
		h.fail(w, err)
		return
	}
	sendJSONOrLog(w, h.log, NewGameSessionDTO(&session))
}

// update runs fn on the stored session and replies with its new state.
func (h *GameHandler) update(
	w http.ResponseWriter, r *http.Request,
	fn func(s *Session) (chorded *bool, err error),
) {
	var (
		session Session
		chorded *bool
	)
	err := h.sessions.Update(r.PathValue("id"), func(s *Session) error {
		var err error
		if chorded, err = fn(s); err != nil {
			return err
		}
		s.stamp(h.now())
		session = *s
		return nil
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	dto := NewGameSessionDTO(&session)
	dto.Chorded = chorded
	sendJSONOrLog(w, h.log, dto)
}

func (h *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	verb, err := ParseGameMove(query.Get("move"))
	if err != nil {
		h.fail(w, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.update(w, r, func(s *Session) (*bool, error) {
		chorded, err := s.Game.Execute(game.Command{Verb: verb, Pos: pos}, h.rnd)
		if err != nil {
			return nil, err
		}
		if verb == game.Chord {
			return &chorded, nil
		}
		return nil, nil
	})
}

func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *Session) (*bool, error) {
		s.Game.Restart()
		return nil, nil
	})
}

func (h *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *Session) (*bool, error) {
		s.Game.Forfeit()
		return nil, nil
	})
}

// Batch accepts newline-separated commands in the request body:
//
//	o row col // open a tile
//	f row col // flag a tile
//	c row col // chord a tile
//	r         // restart
//
// Commands are applied in order and interpretation stops at game over. If
// any command is malformed nothing is stored and the response carries the
// line number and an error message.
func (h *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		h.fail(w, errors.Join(errBadRequest, err))
		return
	}

	h.update(w, r, func(s *Session) (*bool, error) {
		chorded, err := s.Game.ExecuteBatch(string(body), h.rnd)
		if err != nil {
			return nil, err
		}
		return &chorded, nil
	})
}

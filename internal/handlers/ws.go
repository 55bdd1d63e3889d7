package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-agent/internal/solver"
)

// Watch upgrades the connection and lets the client drive the agent with
// text commands: "step" plays a single move, "solve" plays out the rest
// of the game, one JSON message per move either way.
func (h Session) Watch(w http.ResponseWriter, r *http.Request) {
	row, s, ok := h.fetch(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	writeMove := func(move solver.Move, status solver.Status) bool {
		err := c.WriteJSON(MoveDTO{
			Move:   move,
			Status: status.String(),
			Grid:   s.State().Player,
		})
		if err != nil {
			h.logger.Error("websocket write failed", "error", err)
		}
		return err == nil
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		switch command := strings.TrimSpace(string(message)); command {
		case "step":
			if move, status, ok := s.Step(); ok && !writeMove(move, status) {
				return
			}
		case "solve":
			for {
				move, status, ok := s.Step()
				if !ok {
					break
				}
				if !writeMove(move, status) {
					return
				}
				if status != solver.On {
					break
				}
			}
		default:
			h.logger.Debug("unknown watch command", "command", command)
		}

		row, err = h.save(r.Context(), row, s)
		if err != nil {
			h.logger.Error("unable to update session in db", "error", err)
			return
		}
	}
}

// Package ws is the ConnectionHandler: WebSocket upgrade, envelope
// decoding, and dispatch to the right RoomEngine operation.
package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/scythe504/yeet-backend/internal/auth"
	"github.com/scythe504/yeet-backend/internal/board"
	"github.com/scythe504/yeet-backend/internal/game"
	"github.com/scythe504/yeet-backend/internal/registry"
)

var errInvalidLetter = errors.New("ws: PLACE letter must be exactly one rune")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inbound is the shape of every client-to-server message.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type placeTileRequest struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Letter    string `json:"letter"`
	HandIndex int    `json:"hand_index"`
}

type updateSettingsRequest struct {
	Mode       string `json:"mode"`
	Lang       string `json:"lang"`
	MaxPlayers int    `json:"max_players"`
}

type drawRequest struct {
	Count int `json:"count"`
}

type destroyTileRequest struct {
	HandIndex int `json:"hand_index"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type startTimerRequest struct {
	Duration int `json:"duration"`
}

// Handler wires a registry and session verifier into an http.HandlerFunc
// suitable for mux route registration.
type Handler struct {
	Registry *registry.Registry
	Verifier auth.Verifier
}

// ServeHTTP upgrades the connection, resolves or creates the target room,
// seats the player, sends them a private INIT with their id and the room's
// current state, and runs the read loop until disconnect.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomCode := vars["roomCode"]
	if roomCode == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "player"
	}
	color := r.URL.Query().Get("color")
	if color == "" {
		color = "#3b82f6"
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "normal"
	}

	playerID := h.resolvePlayerID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	room := h.Registry.GetOrCreate(roomCode, lang, mode, 8)
	p := game.NewPlayer(playerID, name, color, conn)
	if err := room.AddPlayer(p); err != nil {
		log.Printf("[ws] room %s rejected player %s: %v", roomCode, playerID, err)
		_ = conn.WriteJSON(game.Envelope{Type: game.TypeError, Data: game.ErrorPayload{Message: err.Error()}})
		conn.Close()
		return
	}

	if err := p.SafeWriteJSON(game.Envelope{Type: game.TypeInit, Data: game.InitPayload{PlayerID: playerID, State: room.Snapshot()}}); err != nil {
		log.Printf("[ws] failed to send INIT to %s: %v", playerID, err)
	}

	h.readLoop(conn, room, p, playerID)
}

// resolvePlayerID decodes the session cookie if present and valid,
// otherwise mints a guest id — an AuthError here never blocks the
// connection, it only decides whose identity the socket carries.
func (h *Handler) resolvePlayerID(r *http.Request) string {
	cookie, err := r.Cookie("session_id")
	if err != nil || h.Verifier == nil {
		return auth.NewGuestID()
	}
	claims, err := h.Verifier.Decode(cookie.Value)
	if err != nil {
		return auth.NewGuestID()
	}
	return claims.UserID
}

func (h *Handler) readLoop(conn *websocket.Conn, room *game.RoomEngine, p *game.Player, playerID string) {
	defer func() {
		room.RemovePlayer(playerID)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[ws] player %s disconnected: %v", playerID, err)
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[ws] player %s sent malformed envelope: %v", playerID, err)
			continue
		}

		if err := h.dispatch(room, playerID, msg); err != nil {
			log.Printf("[ws] player %s: %s failed: %v", playerID, msg.Type, err)
			if sendErr := p.SafeWriteJSON(game.Envelope{Type: game.TypeError, Data: game.ErrorPayload{Message: err.Error()}}); sendErr != nil {
				log.Printf("[ws] failed to send ERROR to %s: %v", playerID, sendErr)
			}
		}
	}
}

func (h *Handler) dispatch(room *game.RoomEngine, playerID string, msg inbound) error {
	switch msg.Type {
	case "START_GAME":
		return room.BeginCountdown(playerID)

	case "PLACE":
		var req placeTileRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		letters := []rune(req.Letter)
		if len(letters) != 1 {
			return errInvalidLetter
		}
		return room.PlaceTile(playerID, board.Point{X: req.X, Y: req.Y}, letters[0], req.HandIndex)

	case "REROLL_HAND":
		return room.Reroll(playerID)

	case "UPDATE_SETTINGS":
		var req updateSettingsRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		return room.UpdateSettings(playerID, req.Mode, req.Lang, req.MaxPlayers)

	case "DRAW":
		var req drawRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		return room.Draw(playerID, req.Count)

	case "DESTROY_TILE":
		var req destroyTileRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		return room.Destroy(playerID, req.HandIndex)

	case "CHAT":
		var req chatRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		return room.Chat(playerID, req.Message)

	case "START_TIMER":
		var req startTimerRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		return room.StartTimer(playerID, req.Duration)

	case "END_GAME":
		return room.EndGame(playerID)

	case "DESTROY_ROOM":
		return room.DestroyRoom(playerID)

	default:
		log.Printf("[ws] unknown message type %q from %s", msg.Type, playerID)
		return nil
	}
}

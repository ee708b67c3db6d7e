package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/utils"
)

const sessionUserKey = "user_id"

// WSHandler pushes change notifications to a user's open clients so
// dashboards refresh without polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive so idle dashboard tabs survive proxy timeouts.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		if userID, ok := s.Get(sessionUserKey); ok {
			log.Printf("[WS] client connected - User: %s", utils.MaskID(userID.(string)))
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		if userID, ok := s.Get(sessionUserKey); ok {
			log.Printf("[WS] client disconnected - User: %s", utils.MaskID(userID.(string)))
		}
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("[WS] error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades an authenticated request, tagging the session with the
// user ID so broadcasts stay per-user.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.UserID(c)
	keys := map[string]interface{}{sessionUserKey: userID}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("[WS] failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate notifies every session belonging to the user that a
// resource changed.
func (h *WSHandler) BroadcastUpdate(userID, resource string) {
	msg, err := json.Marshal(gin.H{"type": resource + "_updated", "at": time.Now().UTC()})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get(sessionUserKey)
		return exists && id == userID
	})
	if err != nil {
		log.Printf("[WS] broadcast error for user %s: %v", utils.MaskID(userID), err)
	}
}

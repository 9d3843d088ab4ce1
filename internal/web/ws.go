package web

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// handleWS speaks the same request/reply shape as POST /chat over a
// websocket, one JSON message per turn.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 4 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range s.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger().Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		reply := s.reply(r.Context(), req.Message)

		if err := conn.WriteJSON(chatResponse{Response: reply}); err != nil {
			s.logger().Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

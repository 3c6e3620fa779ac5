package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/docmind-ai/multirag-be/types"
)

// WebSocketService answers questions over a websocket connection, streaming
// the generation as delta messages before the final answer with citations.
type WebSocketService struct {
	answer   *AnswerService
	upgrader websocket.Upgrader
}

func NewWebSocketService(answer *AnswerService) *WebSocketService {
	return &WebSocketService{
		answer: answer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	// Set connection properties
	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			conn.WriteMessage(messageType, []byte("Error processing message"))
			log.Println("Unmarshal error:", err)
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			conn.WriteMessage(messageType, []byte("Error processing message"))
			log.Println("Marshal error:", err)
			continue
		}

		switch req.Type {
		case types.TypeWebsocketQuery:
			var payload types.WebSocketQueryPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, "invalid query payload")
				continue
			}

			s.writeJSON(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketProcessing,
				Payload: types.WebSocketProcessingResponse{Message: "Retrieving context"},
			})

			res, err := s.answer.AnswerStream(ctx, payload.Question, 0, func(delta string) {
				s.writeJSON(conn, types.WebSocketResponse{
					Type:    types.TypeWebsocketDelta,
					Payload: types.WebSocketDeltaResponse{Delta: delta},
				})
			})
			if err != nil {
				if errors.Is(err, types.ErrIndexNotInitialized) || errors.Is(err, types.ErrEmptyQuestion) {
					s.writeError(conn, err.Error())
				} else {
					log.Println("AI error:", err)
					s.writeError(conn, "failed to answer question")
				}
				continue
			}

			s.writeJSON(conn, types.WebSocketResponse{
				Type: types.TypeWebsocketAnswer,
				Payload: types.WebSocketAnswerResponse{
					Answer:    res.Answer,
					Citations: res.Citations,
				},
			})
		case types.TypeWebsocketPing:
			s.writeJSON(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			})
		default:
			log.Println("Invalid message type:", req.Type)
		}
	}
}

func (s *WebSocketService) writeJSON(conn *websocket.Conn, msg types.WebSocketResponse) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("Write error:", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	s.writeJSON(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketProcessingResponse{Message: message},
	})
}

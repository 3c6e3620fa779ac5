package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketQuery      = "query"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketDelta      = "delta"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketQueryPayload struct {
	Question string `json:"question"`
}

// WebSocketDeltaResponse carries one streamed fragment of the answer.
type WebSocketDeltaResponse struct {
	Delta string `json:"delta"`
}

type WebSocketAnswerResponse struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

type WebSocketProcessingResponse struct {
	Message string `json:"message"`
}

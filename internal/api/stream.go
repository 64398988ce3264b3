package api

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"greenhalal/backend/internal/metrics"
	"greenhalal/backend/internal/scoring"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadLimit    = 64 << 10
)

// StreamEvent is the websocket payload answering one submitted record.
type StreamEvent struct {
	Type       string              `json:"type"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
	Message    string              `json:"message,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// serveStream answers each inbound record with a fresh evaluation until the client leaves.
// Messages on one connection are handled in order.
func (s *Server) serveStream(conn *websocket.Conn) {
	metrics.StreamClients.Inc()
	remote := conn.RemoteAddr().String()
	logrus.WithField("remote", remote).Info("evaluation websocket connected")
	defer func() {
		metrics.StreamClients.Dec()
		_ = conn.Close()
	}()

	conn.SetReadLimit(streamReadLimit)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Warn("evaluation websocket unexpected close")
			} else {
				logrus.WithField("remote", remote).Info("evaluation websocket closed")
			}
			return
		}

		event := s.streamEvent(payload)
		if err := writeEvent(conn, event); err != nil {
			logrus.WithError(err).WithField("remote", remote).Warn("write evaluation event")
			return
		}
	}
}

func (s *Server) streamEvent(payload []byte) StreamEvent {
	var rec scoring.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return StreamEvent{Type: "error", Message: "invalid record: " + err.Error()}
	}
	eval, err := s.evaluate(rec, channelStream)
	if err != nil {
		return StreamEvent{Type: "error", Message: err.Error()}
	}
	resp := eval.response()
	return StreamEvent{Type: "evaluation", Evaluation: &resp}
}

func writeEvent(conn *websocket.Conn, event StreamEvent) error {
	event.Timestamp = time.Now().UTC()
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}

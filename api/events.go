package api

import (
	"context"
	"net/http"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtpubsub "github.com/cometbft/cometbft/libs/pubsub"
	"github.com/cometbft/cometbft/libs/pubsub/query"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/misterexcel/FutDAO/app"
)

// EventSubscribed is the first message on every event stream. It is sent
// once the subscription is live.
const EventSubscribed = "subscribed"

const eventBuffer = 100

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EventMessage struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

func newEventMessage(event abcitypes.Event) EventMessage {
	msg := EventMessage{
		Type:       event.Type,
		Attributes: make(map[string]string, len(event.Attributes)),
	}
	for _, attr := range event.Attributes {
		msg.Attributes[attr.Key] = attr.Value
	}
	return msg
}

// handleEvents streams ledger events matching the query parameter, e.g.
// /events?query=ledger.event='vote_cast'. Without a query every event is
// sent.
func (s *Server) handleEvents(c *gin.Context) {
	var q cmtpubsub.Query = app.QueryAll
	if raw := c.Query("query"); raw != "" {
		parsed, err := query.New(raw)
		if err != nil {
			abortInvalid(c, err)
			return
		}
		q = parsed
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Info("websocket upgrade fail", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := s.app.EventBus()
	subscriber := "ws-" + uuid.NewString()
	sub, err := bus.Subscribe(ctx, subscriber, q, eventBuffer)
	if err != nil {
		s.logger.Error("subscribe fail", "query", q.String(), "err", err)
		_ = conn.WriteJSON(ErrorResponse{Code: CodeInternal, Error: err.Error()})
		return
	}
	defer func() {
		if err := bus.UnsubscribeAll(context.Background(), subscriber); err != nil {
			s.logger.Debug("unsubscribe fail", "subscriber", subscriber, "err", err)
		}
	}()
	s.logger.Info("event stream opened", "subscriber", subscriber, "query", q.String())

	if err := conn.WriteJSON(EventMessage{
		Type:       EventSubscribed,
		Attributes: map[string]string{"query": q.String()},
	}); err != nil {
		return
	}

	// the client never sends anything; reading only notices it going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-sub.Canceled():
			s.logger.Info("event stream canceled", "subscriber", subscriber, "err", sub.Err())
			return
		case msg := <-sub.Out():
			event, ok := msg.Data().(abcitypes.Event)
			if !ok {
				continue
			}
			if err := conn.WriteJSON(newEventMessage(event)); err != nil {
				s.logger.Info("event stream write fail", "subscriber", subscriber, "err", err)
				return
			}
		}
	}
}

package app

import (
	"context"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	cmtpubsub "github.com/cometbft/cometbft/libs/pubsub"
	"github.com/cometbft/cometbft/libs/pubsub/query"
)

// EventTypeKey is attached to every published event so subscribers can
// select by kind, e.g. "ledger.event='vote_cast'".
const EventTypeKey = "ledger.event"

const defaultCapacity = 100

// QueryAll matches every ledger event.
var QueryAll = query.MustCompile(EventTypeKey + " EXISTS")

// EventBus fans ledger events out to subscribers. Subscriptions use the
// cometbft query language over the flattened event attributes.
type EventBus struct {
	logger cmtlog.Logger
	pubsub *cmtpubsub.Server
}

func NewEventBus(logger cmtlog.Logger) *EventBus {
	logger = logger.With("module", "eventbus")
	s := cmtpubsub.NewServer(cmtpubsub.BufferCapacity(defaultCapacity))
	s.SetLogger(logger)
	return &EventBus{
		logger: logger,
		pubsub: s,
	}
}

func (b *EventBus) Start() error {
	return b.pubsub.Start()
}

func (b *EventBus) Stop() error {
	return b.pubsub.Stop()
}

func (b *EventBus) Subscribe(ctx context.Context, subscriber string, q cmtpubsub.Query, outCapacity ...int) (*cmtpubsub.Subscription, error) {
	return b.pubsub.Subscribe(ctx, subscriber, q, outCapacity...)
}

func (b *EventBus) UnsubscribeAll(ctx context.Context, subscriber string) error {
	return b.pubsub.UnsubscribeAll(ctx, subscriber)
}

// PublishEvent implements state.EventSink.
func (b *EventBus) PublishEvent(event abcitypes.Event) {
	if err := b.pubsub.PublishWithEvents(context.Background(), event, FlattenEvent(event)); err != nil {
		b.logger.Error("publish event fail", "type", event.Type, "err", err)
	}
}

// FlattenEvent turns event into the composite-key map used for query
// matching: one "<type>.<key>" entry per attribute plus EventTypeKey.
func FlattenEvent(event abcitypes.Event) map[string][]string {
	out := make(map[string][]string, len(event.Attributes)+1)
	out[EventTypeKey] = []string{event.Type}
	for _, attr := range event.Attributes {
		key := event.Type + "." + attr.Key
		out[key] = append(out[key], attr.Value)
	}
	return out
}

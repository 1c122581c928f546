package ws

// MarketHandlers are the typed callbacks for the market-data stream. Any of
// them may be nil. Order book callbacks receive the pair the event was
// published for.
type MarketHandlers struct {
	OnOrderBookUpdate     func(pair string, update OrderBookUpdate)
	OnMarketSummaryUpdate func(update MarketSummaryUpdate)
	OnNewTrade            func(trade MarketTrade)
}

// MarketSession streams public market data. Credentials are optional; when
// supplied the session authenticates at the handshake like the account
// stream. The default subscriptions are sent right after authentication (or
// after open for anonymous sessions) and are re-sent on every reconnect, so
// a restored connection carries the same streams as the one it replaced.
type MarketSession struct {
	*Session
	handlers      MarketHandlers
	subscriptions []Subscription
}

// NewMarketSession creates a market-data stream session with a default
// subscription set. An empty set is allowed; streams can then be added later
// via Subscribe.
func NewMarketSession(cfg Config, subscriptions []Subscription, handlers MarketHandlers) (*MarketSession, error) {
	if !cfg.Credentials.IsZero() {
		if err := cfg.Credentials.Validate(); err != nil {
			return nil, err
		}
	}

	s := &MarketSession{
		handlers:      handlers,
		subscriptions: subscriptions,
	}
	s.Session = newSession(cfg, TradePath, hooks{
		name:     "market",
		postAuth: s.restoreSubscriptions,
		dispatch: s.dispatchTable(),
	})
	return s, nil
}

func (s *MarketSession) restoreSubscriptions(ses *Session) {
	if len(s.subscriptions) == 0 {
		return
	}
	if err := ses.Subscribe(s.subscriptions...); err != nil {
		ses.emitError(err)
	}
}

func (s *MarketSession) dispatchTable() map[string]func(Message) {
	return map[string]func(Message){
		EventAggregatedOrderbookUpdate: func(msg Message) {
			if s.handlers.OnOrderBookUpdate == nil {
				return
			}
			dispatchPayload(s.Session, msg, func(update OrderBookUpdate) {
				s.handlers.OnOrderBookUpdate(msg.CurrencyPairSymbol, update)
			})
		},
		EventMarketSummaryUpdate: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnMarketSummaryUpdate)
		},
		EventNewTrade: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnNewTrade)
		},
	}
}

package ws

import (
	"encoding/json"

	"valr/pkg/errors"
)

// AccountHandlers are the typed callbacks for the account stream. Any of
// them may be nil.
type AccountHandlers struct {
	OnBalanceUpdate     func(BalanceUpdate)
	OnOrderUpdate       func(OrderUpdate)
	OnOrderProcessed    func(OrderProcessed)
	OnAccountTrade      func(AccountTrade)
	OnFailedCancelOrder func(FailedCancelOrder)
}

// AccountSession streams account-scoped events: order lifecycle, balance
// changes and fills. It cannot be used anonymously; construction fails
// without a valid credential pair. Account events are pushed by the server
// without an explicit subscription.
type AccountSession struct {
	*Session
	handlers AccountHandlers
}

// NewAccountSession creates an account stream session.
func NewAccountSession(cfg Config, handlers AccountHandlers) (*AccountSession, error) {
	if cfg.Credentials.IsZero() {
		return nil, errors.ErrWSCredentialsRequired
	}
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}

	s := &AccountSession{handlers: handlers}
	s.Session = newSession(cfg, AccountPath, hooks{
		name:     "account",
		dispatch: s.dispatchTable(),
	})
	return s, nil
}

func (s *AccountSession) dispatchTable() map[string]func(Message) {
	return map[string]func(Message){
		EventBalanceUpdate: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnBalanceUpdate)
		},
		EventOrderStatusUpdate: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnOrderUpdate)
		},
		EventOrderProcessed: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnOrderProcessed)
		},
		EventNewAccountTrade: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnAccountTrade)
		},
		EventFailedCancelOrder: func(msg Message) {
			dispatchPayload(s.Session, msg, s.handlers.OnFailedCancelOrder)
		},
	}
}

// dispatchPayload decodes the payload of msg and hands it to fn. A payload
// that fails to decode is reported like any other parse failure; the session
// stays up.
func dispatchPayload[T any](s *Session, msg Message, fn func(T)) {
	if fn == nil {
		return
	}
	var payload T
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		s.emitError(errors.Wrapf(errors.ErrWSMessageParse, "%s payload: %v", msg.Type, err))
		return
	}
	fn(payload)
}

package ws

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Control message types sent by the client.
const (
	messageTypePing        = "PING"
	messageTypeSubscribe   = "SUBSCRIBE"
	messageTypeUnsubscribe = "UNSUBSCRIBE"
)

// Account event types pushed on /ws/account.
const (
	EventBalanceUpdate     = "BALANCE_UPDATE"
	EventOrderStatusUpdate = "ORDER_STATUS_UPDATE"
	EventOrderProcessed    = "ORDER_PROCESSED"
	EventNewAccountTrade   = "NEW_ACCOUNT_TRADE"
	EventFailedCancelOrder = "FAILED_CANCEL_ORDER"
)

// Market event types pushed on /ws/trade.
const (
	EventAggregatedOrderbookUpdate = "AGGREGATED_ORDERBOOK_UPDATE"
	EventMarketSummaryUpdate       = "MARKET_SUMMARY_UPDATE"
	EventNewTrade                  = "NEW_TRADE"
)

// Message is the generic inbound frame: a type discriminator plus a
// type-specific payload. Unknown types are delivered here and ignored by the
// typed dispatch layer, so new server-side events never break a session.
type Message struct {
	Type               string          `json:"type"`
	CurrencyPairSymbol string          `json:"currencyPairSymbol,omitempty"`
	Data               json.RawMessage `json:"data,omitempty"`
}

// Subscription names one event stream, optionally narrowed to pairs.
type Subscription struct {
	Event string   `json:"event"`
	Pairs []string `json:"pairs,omitempty"`
}

type subscribeRequest struct {
	Type          string         `json:"type"`
	Subscriptions []Subscription `json:"subscriptions"`
}

type pingMessage struct {
	Type string `json:"type"`
}

// BalanceUpdate reports a wallet change on the account stream.
type BalanceUpdate struct {
	Currency struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortName"`
	} `json:"currency"`
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OrderUpdate reports an order lifecycle transition on the account stream.
type OrderUpdate struct {
	OrderID           string          `json:"orderId"`
	CustomerOrderID   string          `json:"customerOrderId,omitempty"`
	OrderStatusType   string          `json:"orderStatusType"`
	CurrencyPair      string          `json:"currencyPair"`
	OriginalPrice     decimal.Decimal `json:"originalPrice"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	OriginalQuantity  decimal.Decimal `json:"originalQuantity"`
	OrderSide         string          `json:"orderSide"`
	OrderType         string          `json:"orderType"`
	FailedReason      string          `json:"failedReason,omitempty"`
	OrderUpdatedAt    time.Time       `json:"orderUpdatedAt"`
	OrderCreatedAt    time.Time       `json:"orderCreatedAt"`
}

// OrderProcessed reports terminal acceptance or failure of a placed order.
type OrderProcessed struct {
	OrderID         string          `json:"orderId"`
	CustomerOrderID string          `json:"customerOrderId,omitempty"`
	Success         bool            `json:"success"`
	FailureReason   string          `json:"failureReason,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// AccountTrade reports a fill against one of the account's orders.
type AccountTrade struct {
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrencyPair string          `json:"currencyPair"`
	TradedAt     time.Time       `json:"tradedAt"`
	Side         string          `json:"side"`
	OrderID      string          `json:"orderId"`
	ID           string          `json:"id"`
}

// FailedCancelOrder reports a cancel request the exchange rejected.
type FailedCancelOrder struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// OrderBookLevel is one aggregated price level.
type OrderBookLevel struct {
	Side       string          `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	OrderCount int             `json:"orderCount"`
}

// OrderBookUpdate is a full aggregated book snapshot for one pair.
type OrderBookUpdate struct {
	Asks       []OrderBookLevel `json:"Asks"`
	Bids       []OrderBookLevel `json:"Bids"`
	LastChange time.Time        `json:"LastChange"`
}

// MarketSummaryUpdate is the rolling 24h summary for one pair.
type MarketSummaryUpdate struct {
	CurrencyPairSymbol string          `json:"currencyPairSymbol"`
	AskPrice           decimal.Decimal `json:"askPrice"`
	BidPrice           decimal.Decimal `json:"bidPrice"`
	LastTradedPrice    decimal.Decimal `json:"lastTradedPrice"`
	PreviousClosePrice decimal.Decimal `json:"previousClosePrice"`
	BaseVolume         decimal.Decimal `json:"baseVolume"`
	HighPrice          decimal.Decimal `json:"highPrice"`
	LowPrice           decimal.Decimal `json:"lowPrice"`
	Created            time.Time       `json:"created"`
	ChangeFromPrevious decimal.Decimal `json:"changeFromPrevious"`
}

// MarketTrade is one public trade print on the market stream.
type MarketTrade struct {
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrencyPair string          `json:"currencyPair"`
	TradedAt     time.Time       `json:"tradedAt"`
	TakerSide    string          `json:"takerSide"`
}

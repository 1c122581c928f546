package rest

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side defines buy or sell direction as the exchange spells it.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TimeInForce enumerates supported order time policies.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

// ServerTime is the exchange clock, useful for diagnosing signature
// time-window rejections.
type ServerTime struct {
	EpochTime int64     `json:"epochTime"`
	Time      time.Time `json:"time"`
}

// Currency describes a listed asset.
type Currency struct {
	Symbol        string `json:"symbol"`
	IsActive      bool   `json:"isActive"`
	ShortName     string `json:"shortName"`
	LongName      string `json:"longName"`
	DecimalPlaces int32  `json:"decimalPlaces,string"`
}

// CurrencyPair describes a tradable market.
type CurrencyPair struct {
	Symbol         string          `json:"symbol"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	ShortName      string          `json:"shortName"`
	Active         bool            `json:"active"`
	MinBaseAmount  decimal.Decimal `json:"minBaseAmount"`
	MaxBaseAmount  decimal.Decimal `json:"maxBaseAmount"`
	MinQuoteAmount decimal.Decimal `json:"minQuoteAmount"`
	MaxQuoteAmount decimal.Decimal `json:"maxQuoteAmount"`
	TickSize       decimal.Decimal `json:"tickSize"`
}

// MarketSummary is the 24h rollup for a pair.
type MarketSummary struct {
	CurrencyPair       string          `json:"currencyPair"`
	AskPrice           decimal.Decimal `json:"askPrice"`
	BidPrice           decimal.Decimal `json:"bidPrice"`
	LastTradedPrice    decimal.Decimal `json:"lastTradedPrice"`
	PreviousClosePrice decimal.Decimal `json:"previousClosePrice"`
	BaseVolume         decimal.Decimal `json:"baseVolume"`
	QuoteVolume        decimal.Decimal `json:"quoteVolume"`
	HighPrice          decimal.Decimal `json:"highPrice"`
	LowPrice           decimal.Decimal `json:"lowPrice"`
	Created            time.Time       `json:"created"`
	ChangeFromPrevious decimal.Decimal `json:"changeFromPrevious"`
}

// OrderBookEntry is one price level of the book.
type OrderBookEntry struct {
	Side         Side            `json:"side"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	CurrencyPair string          `json:"currencyPair"`
	OrderCount   int             `json:"orderCount"`
}

// OrderBook is an aggregated snapshot of resting orders.
type OrderBook struct {
	Asks       []OrderBookEntry `json:"Asks"`
	Bids       []OrderBookEntry `json:"Bids"`
	LastChange time.Time        `json:"LastChange"`
}

// Trade is one public trade print.
type Trade struct {
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrencyPair string          `json:"currencyPair"`
	TradedAt     time.Time       `json:"tradedAt"`
	TakerSide    Side            `json:"takerSide"`
	SequenceID   int64           `json:"sequenceId"`
	ID           string          `json:"id"`
	QuoteVolume  decimal.Decimal `json:"quoteVolume"`
}

// Balance is the wallet state for a single currency.
type Balance struct {
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TransactionType tags a ledger record.
type TransactionType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Transaction is one account ledger record.
type Transaction struct {
	TransactionType TransactionType        `json:"transactionType"`
	DebitCurrency   string                 `json:"debitCurrency,omitempty"`
	DebitValue      decimal.Decimal        `json:"debitValue,omitempty"`
	CreditCurrency  string                 `json:"creditCurrency,omitempty"`
	CreditValue     decimal.Decimal        `json:"creditValue,omitempty"`
	FeeCurrency     string                 `json:"feeCurrency,omitempty"`
	FeeValue        decimal.Decimal        `json:"feeValue,omitempty"`
	EventAt         time.Time              `json:"eventAt"`
	AdditionalInfo  map[string]interface{} `json:"additionalInfo,omitempty"`
}

// LimitOrderRequest places a resting order at a fixed price.
type LimitOrderRequest struct {
	Side            Side            `json:"side"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Pair            string          `json:"pair"`
	PostOnly        bool            `json:"postOnly,omitempty"`
	CustomerOrderID string          `json:"customerOrderId,omitempty"`
	TimeInForce     TimeInForce     `json:"timeInForce,omitempty"`
}

// MarketOrderRequest executes immediately against the book. Exactly one of
// BaseAmount or QuoteAmount must be set.
type MarketOrderRequest struct {
	Side            Side            `json:"side"`
	Pair            string          `json:"pair"`
	BaseAmount      decimal.Decimal `json:"baseAmount,omitempty"`
	QuoteAmount     decimal.Decimal `json:"quoteAmount,omitempty"`
	CustomerOrderID string          `json:"customerOrderId,omitempty"`
}

// OrderIDResponse acknowledges order placement; fills arrive asynchronously
// on the account WebSocket.
type OrderIDResponse struct {
	ID string `json:"id"`
}

// OrderStatus is the current lifecycle state of an order.
type OrderStatus struct {
	OrderID           string          `json:"orderId"`
	OrderStatusType   string          `json:"orderStatusType"`
	CurrencyPair      string          `json:"currencyPair"`
	OriginalPrice     decimal.Decimal `json:"originalPrice"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	OriginalQuantity  decimal.Decimal `json:"originalQuantity"`
	OrderSide         Side            `json:"orderSide"`
	OrderType         string          `json:"orderType"`
	FailedReason      string          `json:"failedReason,omitempty"`
	CustomerOrderID   string          `json:"customerOrderId,omitempty"`
	OrderUpdatedAt    time.Time       `json:"orderUpdatedAt"`
	OrderCreatedAt    time.Time       `json:"orderCreatedAt"`
}

// OpenOrder is one entry of the open-orders listing.
type OpenOrder struct {
	OrderID           string          `json:"orderId"`
	Side              Side            `json:"side"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	Price             decimal.Decimal `json:"price"`
	CurrencyPair      string          `json:"currencyPair"`
	CreatedAt         time.Time       `json:"createdAt"`
	OriginalQuantity  decimal.Decimal `json:"originalQuantity"`
	FilledPercentage  decimal.Decimal `json:"filledPercentage"`
	CustomerOrderID   string          `json:"customerOrderId,omitempty"`
	Type              string          `json:"type"`
	Status            string          `json:"status"`
	TimeInForce       TimeInForce     `json:"timeInForce"`
}

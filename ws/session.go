package ws

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"valr/metrics"
	"valr/pkg/errors"
	"valr/pkg/logger"
	"valr/pkg/reconnect"
	"valr/signing"
)

const (
	defaultBaseURL        = "wss://api.valr.com"
	defaultPingInterval   = 30 * time.Second
	defaultReconnectDelay = 5 * time.Second
	handshakeTimeout      = 10 * time.Second
	writeTimeout          = 5 * time.Second
)

// Socket paths served by the exchange.
const (
	AccountPath = "/ws/account"
	TradePath   = "/ws/trade"
)

// Handlers are the generic session callbacks. All of them are optional and
// all of them are invoked serially: transport reads, the reconnect timer and
// the keep-alive ticker never run a handler concurrently with another for the
// same session.
type Handlers struct {
	// OnOpen fires when the transport connection is established.
	OnOpen func()
	// OnAuthenticated fires after OnOpen when credentials were supplied.
	// Handshake-level auth is assumed successful once the socket opens.
	OnAuthenticated func()
	// OnMessage receives every parseable inbound frame, including types the
	// typed dispatch layer does not recognize.
	OnMessage func(Message)
	// OnClose fires with the transport close code and reason.
	OnClose func(code int, reason string)
	// OnReconnecting fires before each reconnection attempt, carrying the
	// attempt number.
	OnReconnecting func(attempt int)
	// OnError receives connection failures, parse failures and the terminal
	// max-reconnect error. The session never panics or stops on a bad frame.
	OnError func(error)
}

// hooks is the capability set a concrete session kind plugs into the shared
// core: a label for logs and metrics, a post-authentication action, and the
// mapping from inbound type tags to typed handlers.
type hooks struct {
	name     string
	postAuth func(*Session)
	dispatch map[string]func(Message)
}

// Config configures a WebSocket session.
type Config struct {
	// BaseURL overrides the production host, mainly for tests.
	BaseURL      string
	Credentials  signing.Credentials
	SubaccountID string

	// DisableAutoReconnect turns off reconnection after unintentional closes.
	DisableAutoReconnect bool
	// ReconnectDelay is the fixed wait between attempts (default 5s).
	ReconnectDelay time.Duration
	// MaxReconnectAttempts bounds consecutive attempts (0 = unlimited).
	MaxReconnectAttempts int
	// PingInterval is the keep-alive cadence (default 30s).
	PingInterval time.Duration

	Dialer   *websocket.Dialer
	Logger   *logger.Logger
	Handlers Handlers
}

// Session is the shared connection state machine: it owns at most one live
// transport connection, authenticates via handshake headers, dispatches
// inbound frames and schedules reconnection after unexpected closes.
type Session struct {
	cfg   Config
	path  string
	hooks hooks

	dialer *websocket.Dialer
	log    *logger.Logger
	recon  *reconnect.Manager

	mu               sync.Mutex
	conn             *websocket.Conn
	connecting       bool
	connected        bool
	authenticated    bool
	intentionalClose bool
	reconnectTimer   *time.Timer
	pingStop         chan struct{}

	writeMu sync.Mutex
}

func newSession(cfg Config, path string, h hooks) *Session {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.PingInterval == 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get().With("component", "valr_ws", "session", h.name)
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	}

	return &Session{
		cfg:    cfg,
		path:   path,
		hooks:  h,
		dialer: dialer,
		log:    cfg.Logger,
		recon: reconnect.NewManager(reconnect.Config{
			Delay:       cfg.ReconnectDelay,
			MaxAttempts: cfg.MaxReconnectAttempts,
		}, cfg.Logger),
	}
}

// Connect opens the transport connection and, when credentials are
// configured, authenticates at the handshake via signed headers. Calling
// Connect while a connection is pending or open is a no-op. Completion is
// signalled through the OnOpen/OnAuthenticated handlers, not by this call
// returning.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.connecting || s.connected {
		s.mu.Unlock()
		return nil
	}
	s.connecting = true
	s.intentionalClose = false
	s.mu.Unlock()

	header := http.Header{}
	authed := !s.cfg.Credentials.IsZero()
	if authed {
		// Signature is computed over GET + socket path + empty body; auth
		// happens at the handshake, not as an in-band message.
		ts := signing.Timestamp()
		sig := signing.Sign(s.cfg.Credentials.APISecret, ts, http.MethodGet, s.path, "", s.cfg.SubaccountID)

		header.Set(signing.HeaderAPIKey, s.cfg.Credentials.APIKey)
		header.Set(signing.HeaderSignature, sig)
		header.Set(signing.HeaderTimestamp, strconv.FormatInt(ts, 10))
		if s.cfg.SubaccountID != "" {
			header.Set(signing.HeaderSubaccountID, s.cfg.SubaccountID)
		}
	}

	s.log.Infow("Connecting", "url", s.cfg.BaseURL+s.path)
	conn, resp, err := s.dialer.DialContext(ctx, s.cfg.BaseURL+s.path, header)
	if err != nil {
		if resp != nil {
			err = errors.Wrapf(err, "connect %s: http %d", s.path, resp.StatusCode)
		} else {
			err = errors.Wrapf(err, "connect %s", s.path)
		}

		s.mu.Lock()
		s.connecting = false
		intentional := s.intentionalClose
		s.mu.Unlock()

		s.emitError(err)
		if !intentional && !s.cfg.DisableAutoReconnect {
			s.scheduleReconnect()
		}
		return err
	}

	s.mu.Lock()
	if s.intentionalClose {
		// Disconnect arrived while the dial was in flight. The session must
		// stay closed; discard the fresh connection without installing it.
		s.connecting = false
		s.mu.Unlock()
		conn.Close()
		s.log.Infow("Discarding connection dialed after disconnect")
		return nil
	}
	s.conn = conn
	s.connecting = false
	s.connected = true
	s.authenticated = authed
	s.recon.RecordSuccess()
	var pingStop chan struct{}
	if authed {
		pingStop = make(chan struct{})
		s.pingStop = pingStop
	}
	s.mu.Unlock()

	metrics.WSConnected.WithLabelValues(s.hooks.name).Set(1)
	s.log.Infow("Connected", "authenticated", authed)

	s.emit(s.cfg.Handlers.OnOpen)
	if authed {
		s.emit(s.cfg.Handlers.OnAuthenticated)
	}
	// The post-auth hook (e.g. default subscriptions) runs strictly after the
	// authenticated event, and for anonymous sessions right after open.
	if s.hooks.postAuth != nil {
		s.hooks.postAuth(s)
	}
	if authed {
		go s.pingLoop(pingStop)
	}

	go s.readLoop(conn)
	return nil
}

// Disconnect closes the session intentionally: it cancels any pending
// reconnect timer, closes the transport and suppresses further automatic
// reconnection until Connect is called again. Safe to call repeatedly and
// from within handlers.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	s.intentionalClose = true
	if s.reconnectTimer != nil {
		s.reconnectTimer.Stop()
		s.reconnectTimer = nil
	}
	s.recon.Reset()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// IsConnected reports whether the transport is currently open
func (s *Session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// IsAuthenticated reports whether the session authenticated on the current
// connection; always false while disconnected
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// ReconnectStats exposes the reconnection counters
func (s *Session) ReconnectStats() reconnect.Stats {
	return s.recon.GetStats()
}

// Send serializes payload (unless it is already raw bytes) and writes it as
// one text frame. Fails with ErrWSNotConnected when the transport is not open.
func (s *Session) Send(payload interface{}) error {
	s.mu.Lock()
	conn := s.conn
	connected := s.connected
	s.mu.Unlock()

	if !connected || conn == nil {
		return errors.ErrWSNotConnected
	}

	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshal outbound message")
		}
		data = raw
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Subscribe sends a fire-and-forget SUBSCRIBE command. Acknowledgment, if
// any, arrives asynchronously as a generic message.
func (s *Session) Subscribe(subs ...Subscription) error {
	return s.Send(subscribeRequest{Type: messageTypeSubscribe, Subscriptions: subs})
}

// Unsubscribe sends a fire-and-forget UNSUBSCRIBE command.
func (s *Session) Unsubscribe(subs ...Subscription) error {
	return s.Send(subscribeRequest{Type: messageTypeUnsubscribe, Subscriptions: subs})
}

func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.handleClose(conn, err)
			return
		}
		s.handleMessage(data)
	}
}

func (s *Session) handleMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		// A bad frame is reported but never tears the connection down.
		metrics.WSMessages.WithLabelValues(s.hooks.name, "unparseable").Inc()
		s.emitError(errors.Wrapf(errors.ErrWSMessageParse, "%v", err))
		return
	}

	metrics.WSMessages.WithLabelValues(s.hooks.name, msg.Type).Inc()

	if h := s.cfg.Handlers.OnMessage; h != nil {
		h(msg)
	}
	if fn, ok := s.hooks.dispatch[msg.Type]; ok {
		fn(msg)
	}
	// Unrecognized type tags are ignored at the typed layer.
}

func (s *Session) handleClose(conn *websocket.Conn, err error) {
	s.mu.Lock()
	if s.conn != conn {
		// Reader of an already replaced connection.
		s.mu.Unlock()
		return
	}
	s.conn = nil
	s.connected = false
	s.authenticated = false
	intentional := s.intentionalClose
	if s.pingStop != nil {
		close(s.pingStop)
		s.pingStop = nil
	}
	s.mu.Unlock()

	metrics.WSConnected.WithLabelValues(s.hooks.name).Set(0)

	code, reason := closeCodeReason(err)
	s.log.Infow("Connection closed", "code", code, "reason", reason, "intentional", intentional)
	if h := s.cfg.Handlers.OnClose; h != nil {
		h(code, reason)
	}

	if !intentional && !s.cfg.DisableAutoReconnect {
		s.scheduleReconnect()
	}
}

func (s *Session) scheduleReconnect() {
	s.mu.Lock()
	if s.intentionalClose {
		// Deliberate shutdown raced the close handler; no attempt is burned
		// and no reconnecting event fires.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if !s.recon.ShouldRetry() {
		err := errors.Wrapf(errors.ErrWSMaxReconnectAttempts, "%s: giving up after %d attempts", s.path, s.recon.Attempts())
		s.log.Errorw("Reconnect budget exhausted", "attempts", s.recon.Attempts())
		s.emitError(err)
		return
	}

	attempt := s.recon.RecordAttempt()
	metrics.WSReconnects.WithLabelValues(s.hooks.name).Inc()

	if h := s.cfg.Handlers.OnReconnecting; h != nil {
		h(attempt)
	}

	s.mu.Lock()
	if s.intentionalClose {
		s.mu.Unlock()
		return
	}
	s.reconnectTimer = time.AfterFunc(s.recon.Delay(), func() {
		s.mu.Lock()
		s.reconnectTimer = nil
		intentional := s.intentionalClose
		s.mu.Unlock()
		if intentional {
			return
		}
		_ = s.Connect(context.Background())
	})
	s.mu.Unlock()
}

// pingLoop sends the keep-alive PING on a fixed interval while the session is
// connected and authenticated. Exactly one loop runs per successful
// authentication; stop is closed atomically with the connected/authenticated
// flags going false, so loops never accumulate across reconnects.
func (s *Session) pingLoop(stop chan struct{}) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := s.Send(pingMessage{Type: messageTypePing}); err != nil {
				s.log.Warnw("Keep-alive ping failed", "error", err)
			}
		}
	}
}

func (s *Session) emit(h func()) {
	if h != nil {
		h()
	}
}

func (s *Session) emitError(err error) {
	if h := s.cfg.Handlers.OnError; h != nil {
		h(err)
	}
}

func closeCodeReason(err error) (int, string) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, closeErr.Text
	}
	return websocket.CloseAbnormalClosure, err.Error()
}

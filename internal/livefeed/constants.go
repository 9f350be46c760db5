package livefeed

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientBufferSize is the per-connection outbound queue; slow clients drop messages
	ClientBufferSize = 32

	// ControlBufferSize is the buffer size for register/unregister channels
	ControlBufferSize = 16

	// ReadBufferSize and WriteBufferSize size the websocket I/O buffers
	ReadBufferSize  = 1024
	WriteBufferSize = 1024
)

// Connection settings
const (
	WriteWait  = 10 * time.Second
	PongWait   = 60 * time.Second
	PingPeriod = (PongWait * 9) / 10

	// MaxInboundMessageSize caps client frames; the feed is one-directional
	MaxInboundMessageSize = 512
)

// Message types sent to clients
const (
	TypeConnected   = "connected"
	TypeCaseDrop    = "case_drop"
	TypeUpgradeWin  = "upgrade_win"
	TypeMinigameWin = "minigame_win"
)

// Log messages
const (
	LogMsgClientConnected    = "Live feed client connected"
	LogMsgClientDisconnected = "Live feed client disconnected"
	LogMsgUpgradeFailed      = "Live feed websocket upgrade failed"
	LogMsgBroadcastDropped   = "Live feed broadcast buffer full, dropping message"
	LogMsgBadPayload         = "Live feed ignored event with undecodable payload"
	LogMsgSubscribed         = "Live feed subscribed to events"
)

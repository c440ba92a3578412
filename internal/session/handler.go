package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hkanpak21/StellarAW/internal/domain"
	"github.com/hkanpak21/StellarAW/internal/guidance"
	"github.com/hkanpak21/StellarAW/internal/info"
)

// promptIntent extracts an asset token from free-text prompts like
// "tell me about XLM" / "what is USDC" / "info on BTC".
var promptIntent = regexp.MustCompile(`(?i)(?:tell me about|info on|what is|about)\s+(\w+)`)

// assetInfoProvider is the aggregation pipeline entry point the handler
// routes asset queries to.
type assetInfoProvider interface {
	GetAssetInfo(ctx context.Context, query string) (*domain.AggregatedReport, error)
}

// messageWriter delivers one outbound frame. *websocket.Conn writes are not
// concurrency-safe, so the handler serializes all sends behind its own
// mutex.
type messageWriter interface {
	WriteJSON(v any) error
}

// Handler owns one client session. It parses inbound frames, routes them to
// the aggregation pipeline or the guidance capability, and emits the
// ack → result → complete sequence per request. A malformed or failing
// request must never terminate the connection: every per-message fault is
// converted into a single error frame.
type Handler struct {
	pipeline assetInfoProvider

	writeMu sync.Mutex
	writer  messageWriter
}

// NewHandler creates a session handler bound to one connection writer.
func NewHandler(pipeline assetInfoProvider, writer messageWriter) *Handler {
	return &Handler{pipeline: pipeline, writer: writer}
}

// Welcome emits the connection-open informational message.
func (h *Handler) Welcome() {
	h.send(ServerMessage{
		Type:    TypeInfo,
		Content: "Connected to Stellar Wallet App. Ask about any Stellar asset!",
	})
}

// HandleMessage processes one inbound frame. Multiple frames may be in
// flight concurrently on the same session; each request's own message
// sequence stays ordered because sends are serialized, while interleaving
// between concurrent requests is an accepted property of the protocol.
func (h *Handler) HandleMessage(ctx context.Context, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Message handling panic recovered", slog.Any("panic", r))
			h.sendError("Failed to process your message")
		}
	}()

	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.Warn("Rejected malformed frame", slog.Any("error", err))
		h.sendError("Invalid message format: Could not parse JSON")
		return
	}

	switch {
	case msg.Type == TypeTrustlineGuidance:
		if msg.Payload == nil || msg.Payload.AssetCode == "" || msg.Payload.Issuer == "" {
			h.sendError("Invalid trustline guidance request: Missing asset code or issuer")
			return
		}
		h.handleTrustlineGuidance(msg.Payload.AssetCode, msg.Payload.Issuer)

	case msg.Type == TypeSwapGuidance:
		h.handleSwapGuidance()

	case msg.Type == TypeSmartWalletGuidance:
		h.handleSmartWalletGuidance()

	case msg.Type == "" && msg.Prompt != "":
		h.handlePrompt(ctx, msg.Prompt)

	default:
		slog.Warn("Rejected unrecognized message", slog.String("type", msg.Type))
		h.sendError("Invalid message format: Expected type or prompt field")
	}
}

func (h *Handler) handleTrustlineGuidance(assetCode, issuer string) {
	h.send(ServerMessage{
		Type:    TypeInfo,
		Content: "Checking asset safety and providing guidance...",
	})

	g := guidance.Trustline(assetCode, issuer)
	h.send(ServerMessage{
		Type:      TypeGuidance,
		Content:   g.Text,
		Title:     g.Title,
		Text:      g.Text,
		Risky:     g.Risky,
		AssetCode: g.AssetCode,
		Issuer:    g.Issuer,
	})

	h.send(ServerMessage{Type: TypeComplete, Content: "Guidance complete"})
}

func (h *Handler) handleSwapGuidance() {
	h.send(ServerMessage{
		Type:    TypeInfo,
		Content: "Providing guidance on asset swaps...",
	})

	g := guidance.Swap()
	h.send(ServerMessage{
		Type:    TypeGuidance,
		Content: g.Text,
		Title:   g.Title,
		Text:    g.Text,
	})

	h.send(ServerMessage{Type: TypeComplete, Content: "Guidance complete"})
}

func (h *Handler) handleSmartWalletGuidance() {
	h.send(ServerMessage{
		Type:    TypeInfo,
		Content: "Providing guidance on smart wallet usage...",
	})

	g := guidance.SmartWallet()
	h.send(ServerMessage{
		Type:    TypeGuidance,
		Content: g.Text,
		Title:   g.Title,
		Text:    g.Text,
	})

	h.send(ServerMessage{Type: TypeComplete, Content: "Guidance complete"})
}

func (h *Handler) handlePrompt(ctx context.Context, prompt string) {
	h.send(ServerMessage{
		Type:    TypeInfo,
		Content: "Processing your request...",
	})

	match := promptIntent.FindStringSubmatch(prompt)
	if match == nil {
		h.send(ServerMessage{
			Type:    TypeInfo,
			Content: `I can provide information about Stellar assets. Try asking "tell me about XLM" or "tell me about USDC".`,
		})
		h.send(ServerMessage{Type: TypeComplete, Content: "Response complete"})
		return
	}

	h.handleAssetInfoRequest(ctx, match[1])
}

func (h *Handler) handleAssetInfoRequest(ctx context.Context, query string) {
	reply, err := h.pipeline.GetAssetInfo(ctx, query)
	if err != nil {
		if errors.Is(err, info.ErrAssetNotFound) {
			h.sendError(fmt.Sprintf("Sorry, I couldn't find information about %s on the Stellar network.", query))
		} else {
			h.sendError(fmt.Sprintf("An error occurred: %s", err))
		}
		h.send(ServerMessage{Type: TypeComplete, Content: "Response complete"})
		return
	}

	h.sendAssetCard(reply)
	h.send(ServerMessage{
		Type:    TypeComplete,
		Content: "Response complete",
		Partial: reply.Partial,
	})
}

func (h *Handler) sendAssetCard(reply *domain.AggregatedReport) {
	h.send(ServerMessage{
		Type:    TypeAssetCard,
		Content: reply.Report,
		Asset:   reply.Asset.String(),
		Price:   cardPrice(reply.PriceUSD),
		Change:  cardChange(reply.Change24hPct),
		Supply:  reply.Supply,
		Flags: &CardFlags{
			Suspicious: reply.Flags.Suspicious,
			Details:    reply.Flags.Details,
		},
		Sources: reply.Sources,
		Report:  reply.Report,
	})
}

func (h *Handler) sendError(content string) {
	h.send(ServerMessage{Type: TypeError, Content: content})
}

func (h *Handler) send(msg ServerMessage) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := h.writer.WriteJSON(msg); err != nil {
		slog.Warn("Session write failed", slog.Any("error", err))
	}
}

// cardPrice formats the display price of an asset card: 6 decimals under a
// cent, 2 otherwise.
func cardPrice(price *decimal.Decimal) string {
	if price == nil {
		return "Unknown"
	}
	places := int32(2)
	if price.Abs().LessThan(decimal.NewFromFloat(0.01)) {
		places = 6
	}
	return "$" + price.StringFixed(places)
}

// cardChange formats the display 24h change with an explicit sign.
func cardChange(change *float64) string {
	if change == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%+.2f%%", *change)
}

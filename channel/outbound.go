package channel

import (
	"context"
	"fmt"

	"github.com/goliatone/go-whatsapp-kapso/core"
)

const (
	DeliveryModeDirect = "direct"
	ChunkerModeText    = "text"
	TextChunkLimit     = 4000
)

type SendTextRequest struct {
	To        string
	Text      string
	AccountID string
	Config    core.Config
}

type OutboundResult struct {
	Channel   string `json:"channel"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Chunks    int    `json:"chunks"`
}

func (*Plugin) DeliveryMode() string { return DeliveryModeDirect }

func (*Plugin) ChunkerMode() string { return ChunkerModeText }

func (*Plugin) TextChunkLimit() int { return TextChunkLimit }

// Chunk splits text into consecutive pieces of at most limit characters.
// Joining the pieces gives back text. Empty text has no chunks and a
// non-positive limit keeps text whole.
func Chunk(text string, limit int) []string {
	if text == "" {
		return []string{}
	}
	if limit <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// SendText resolves the account, normalizes the target and sends text in
// chunks through the relay. It stops at the first failed chunk; MessageID
// is the id of the last chunk delivered.
func (p *Plugin) SendText(ctx context.Context, req SendTextRequest) OutboundResult {
	out := OutboundResult{Channel: core.ChannelID}

	account, err := p.ResolveAccount(req.Config, req.AccountID)
	if err != nil {
		out.Error = core.MapError(err).Message
		return out
	}
	to, ok := p.NormalizeTarget(req.To)
	if !ok {
		out.Error = fmt.Sprintf("Invalid WhatsApp target: %s", req.To)
		return out
	}

	for _, chunk := range Chunk(req.Text, TextChunkLimit) {
		result := p.sender.Send(ctx, to, chunk, account)
		if !result.Success {
			out.Error = result.Error
			core.Log(ctx, p.logger, "error", "outbound chunk failed", map[string]any{
				"account_id": account.AccountID,
				"to":         to,
				"chunk":      out.Chunks + 1,
				"error":      result.Error,
			})
			return out
		}
		out.Chunks++
		out.MessageID = result.MessageID
	}
	out.Success = out.Chunks > 0
	if !out.Success {
		out.Error = "Message text is empty"
	}
	return out
}

package notify

import (
	"context"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// SendJewelry delivers the spec §4.7 jewelry message.
func (n *Notifier) SendJewelry(ctx context.Context, m *models.JewelryMatch, latency time.Duration, channel, channelID string) (SendResult, error) {
	return n.send(ctx, channel, channelID, jewelryMessage(m, latency))
}

// SendGemstone delivers the spec §4.7 gemstone message.
func (n *Notifier) SendGemstone(ctx context.Context, m *models.GemstoneMatch, latency time.Duration, channel, channelID string) (SendResult, error) {
	return n.send(ctx, channel, channelID, gemstoneMessage(m, latency))
}

// SendTestBypass delivers the spec §4.7 compact test-bypass message.
func (n *Notifier) SendTestBypass(ctx context.Context, itemType models.ItemType, sellerName, title, url, channel, channelID string) (SendResult, error) {
	return n.send(ctx, channel, channelID, testBypassMessage(itemType, sellerName, title, url))
}

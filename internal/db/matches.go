package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealhunter/ebay-hunter/pkg/models"
	"github.com/jackc/pgx/v5"
)

// ErrConflict is returned by the Insert* methods when (task_id, ebay_listing_id)
// already exists: spec §4.6/§7 treats this as "already handled", not an error
// to surface.
var ErrConflict = errors.New("match already exists")

func matchTable(itemType models.ItemType) (string, error) {
	switch itemType {
	case models.ItemTypeJewelry:
		return "matches_jewelry", nil
	case models.ItemTypeGemstone:
		return "matches_gemstone", nil
	case models.ItemTypeWatch:
		return "matches_watch", nil
	default:
		return "", fmt.Errorf("unknown item type %q", itemType)
	}
}

// ExistsMatch reports whether a match row already exists for (task, listing).
func (s *Store) ExistsMatch(ctx context.Context, itemType models.ItemType, taskID int64, ebayListingID string) (bool, error) {
	table, err := matchTable(itemType)
	if err != nil {
		return false, err
	}
	var exists bool
	sql := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE task_id = $1 AND ebay_listing_id = $2)`, table)
	if err := s.pool.QueryRow(ctx, sql, taskID, ebayListingID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// InsertJewelryMatch inserts a jewelry match row, returning ErrConflict if
// (task_id, ebay_listing_id) already exists.
func (s *Store) InsertJewelryMatch(ctx context.Context, m *models.JewelryMatch) (int64, error) {
	sql := `
		INSERT INTO matches_jewelry
		(task_id, user_id, ebay_listing_id, ebay_title, ebay_url, listed_price, shipping_cost,
		 currency, buy_format, seller_feedback, found_at, item_creation_date, status,
		 karat, weight_g, metal_type, melt_value, profit_scrap, break_even, suggested_offer)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (task_id, ebay_listing_id) DO NOTHING
		RETURNING id`
	var id int64
	err := s.pool.QueryRow(ctx, sql,
		m.TaskID, m.UserID, m.EbayListingID, m.EbayTitle, m.EbayURL, m.ListedPrice, m.ShippingCost,
		m.Currency, m.BuyFormat, m.SellerFeedback, m.FoundAt, m.ItemCreationDate, models.MatchNew,
		m.Karat, m.WeightG, m.MetalType, m.MeltValue, m.ProfitScrap, m.BreakEven, m.SuggestedOffer,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("insert jewelry match: %w", err)
	}
	return id, nil
}

// InsertGemstoneMatch inserts a gemstone match row.
func (s *Store) InsertGemstoneMatch(ctx context.Context, m *models.GemstoneMatch) (int64, error) {
	sql := `
		INSERT INTO matches_gemstone
		(task_id, user_id, ebay_listing_id, ebay_title, ebay_url, listed_price, shipping_cost,
		 currency, buy_format, seller_feedback, found_at, item_creation_date, status,
		 stone_type, shape, carat, colour, clarity, cert_lab, treatment, is_natural,
		 deal_score, risk_score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		ON CONFLICT (task_id, ebay_listing_id) DO NOTHING
		RETURNING id`
	var id int64
	err := s.pool.QueryRow(ctx, sql,
		m.TaskID, m.UserID, m.EbayListingID, m.EbayTitle, m.EbayURL, m.ListedPrice, m.ShippingCost,
		m.Currency, m.BuyFormat, m.SellerFeedback, m.FoundAt, m.ItemCreationDate, models.MatchNew,
		m.StoneType, m.Shape, m.Carat, m.Colour, m.Clarity, m.CertLab, m.Treatment, m.IsNatural,
		m.DealScore, m.RiskScore,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("insert gemstone match: %w", err)
	}
	return id, nil
}

// InsertWatchMatch inserts a watch match row.
func (s *Store) InsertWatchMatch(ctx context.Context, m *models.WatchMatch) (int64, error) {
	sql := `
		INSERT INTO matches_watch
		(task_id, user_id, ebay_listing_id, ebay_title, ebay_url, listed_price, shipping_cost,
		 currency, buy_format, seller_feedback, found_at, item_creation_date, status,
		 case_material, band_material, movement, dial_color, year, brand, model)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (task_id, ebay_listing_id) DO NOTHING
		RETURNING id`
	var id int64
	err := s.pool.QueryRow(ctx, sql,
		m.TaskID, m.UserID, m.EbayListingID, m.EbayTitle, m.EbayURL, m.ListedPrice, m.ShippingCost,
		m.Currency, m.BuyFormat, m.SellerFeedback, m.FoundAt, m.ItemCreationDate, models.MatchNew,
		m.CaseMaterial, m.BandMaterial, m.Movement, m.DialColor, m.Year, m.Brand, m.Model,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("insert watch match: %w", err)
	}
	return id, nil
}

// UpdateNotification records the outcome of a Notifier.Send call against a
// match row (spec §4.6/§9's linear insert -> notify -> update saga).
func (s *Store) UpdateNotification(ctx context.Context, itemType models.ItemType, id int64, sent bool, slackTS, slackChannelID string) error {
	table, err := matchTable(itemType)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`UPDATE %s SET notification_sent = $1, slack_message_ts = $2, slack_channel_id = $3 WHERE id = $4`, table)
	_, err = s.pool.Exec(ctx, sql, sent, slackTS, slackChannelID, id)
	return err
}

// UnsentMatch is one row from ListUnsent, joined with the owning task's
// Slack routing so RetryPass can reconstruct a Notifier payload.
type UnsentMatch struct {
	ItemType       models.ItemType
	JewelryMatch   *models.JewelryMatch
	GemstoneMatch  *models.GemstoneMatch
	SlackChannel   string
	SlackChannelID string
}

// ListUnsentJewelry loads up to limit jewelry matches with
// notification_sent=false, newest first, joined with the task's channel.
func (s *Store) ListUnsentJewelry(ctx context.Context, limit int) ([]UnsentMatch, error) {
	sql := `
		SELECT m.id, m.task_id, m.user_id, m.ebay_listing_id, m.ebay_title, m.ebay_url,
		       m.listed_price, m.shipping_cost, m.currency, m.buy_format, m.seller_feedback,
		       m.found_at, m.item_creation_date, m.status, m.notification_sent,
		       m.karat, m.weight_g, m.metal_type, m.melt_value, m.profit_scrap, m.break_even,
		       m.suggested_offer, t.slack_channel, t.slack_channel_id
		FROM matches_jewelry m
		JOIN tasks t ON t.id = m.task_id
		WHERE m.notification_sent = false
		ORDER BY m.found_at DESC
		LIMIT $1`
	rows, err := s.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsent jewelry: %w", err)
	}
	defer rows.Close()

	var out []UnsentMatch
	for rows.Next() {
		var m models.JewelryMatch
		var statusStr string
		var channel, channelID *string
		if err := rows.Scan(
			&m.ID, &m.TaskID, &m.UserID, &m.EbayListingID, &m.EbayTitle, &m.EbayURL,
			&m.ListedPrice, &m.ShippingCost, &m.Currency, &m.BuyFormat, &m.SellerFeedback,
			&m.FoundAt, &m.ItemCreationDate, &statusStr, &m.NotificationSent,
			&m.Karat, &m.WeightG, &m.MetalType, &m.MeltValue, &m.ProfitScrap, &m.BreakEven,
			&m.SuggestedOffer, &channel, &channelID,
		); err != nil {
			return nil, err
		}
		m.Status = models.MatchStatus(statusStr)
		row := UnsentMatch{ItemType: models.ItemTypeJewelry, JewelryMatch: &m}
		if channel != nil {
			row.SlackChannel = *channel
		}
		if channelID != nil {
			row.SlackChannelID = *channelID
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListUnsentGemstone is ListUnsentJewelry's gemstone twin.
func (s *Store) ListUnsentGemstone(ctx context.Context, limit int) ([]UnsentMatch, error) {
	sql := `
		SELECT m.id, m.task_id, m.user_id, m.ebay_listing_id, m.ebay_title, m.ebay_url,
		       m.listed_price, m.shipping_cost, m.currency, m.buy_format, m.seller_feedback,
		       m.found_at, m.item_creation_date, m.status, m.notification_sent,
		       m.stone_type, m.shape, m.carat, m.colour, m.clarity, m.cert_lab, m.treatment,
		       m.is_natural, m.deal_score, m.risk_score, t.slack_channel, t.slack_channel_id
		FROM matches_gemstone m
		JOIN tasks t ON t.id = m.task_id
		WHERE m.notification_sent = false
		ORDER BY m.found_at DESC
		LIMIT $1`
	rows, err := s.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("list unsent gemstone: %w", err)
	}
	defer rows.Close()

	var out []UnsentMatch
	for rows.Next() {
		var m models.GemstoneMatch
		var statusStr string
		var channel, channelID *string
		if err := rows.Scan(
			&m.ID, &m.TaskID, &m.UserID, &m.EbayListingID, &m.EbayTitle, &m.EbayURL,
			&m.ListedPrice, &m.ShippingCost, &m.Currency, &m.BuyFormat, &m.SellerFeedback,
			&m.FoundAt, &m.ItemCreationDate, &statusStr, &m.NotificationSent,
			&m.StoneType, &m.Shape, &m.Carat, &m.Colour, &m.Clarity, &m.CertLab, &m.Treatment,
			&m.IsNatural, &m.DealScore, &m.RiskScore, &channel, &channelID,
		); err != nil {
			return nil, err
		}
		m.Status = models.MatchStatus(statusStr)
		row := UnsentMatch{ItemType: models.ItemTypeGemstone, GemstoneMatch: &m}
		if channel != nil {
			row.SlackChannel = *channel
		}
		if channelID != nil {
			row.SlackChannelID = *channelID
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindMatchBySlackMessage resolves a match row by (channel, ts) for the
// reaction receiver, trying jewelry then gemstone (spec §4.12). Watch
// matches aren't reaction-addressable per spec's enumerated lookup order.
func (s *Store) FindMatchBySlackMessage(ctx context.Context, channelID, ts string) (itemType models.ItemType, id int64, found bool, err error) {
	var jID int64
	err = s.pool.QueryRow(ctx, `SELECT id FROM matches_jewelry WHERE slack_channel_id = $1 AND slack_message_ts = $2`, channelID, ts).Scan(&jID)
	if err == nil {
		return models.ItemTypeJewelry, jID, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", 0, false, err
	}

	var gID int64
	err = s.pool.QueryRow(ctx, `SELECT id FROM matches_gemstone WHERE slack_channel_id = $1 AND slack_message_ts = $2`, channelID, ts).Scan(&gID)
	if err == nil {
		return models.ItemTypeGemstone, gID, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, false, nil
	}
	return "", 0, false, err
}

// UpdateMatchStatus sets status on a match row regardless of its current
// value (spec §9: un-reacting does not revert it).
func (s *Store) UpdateMatchStatus(ctx context.Context, itemType models.ItemType, id int64, status models.MatchStatus) error {
	table, err := matchTable(itemType)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2`, table)
	_, err = s.pool.Exec(ctx, sql, status, id)
	return err
}

// WriteHealthMetric appends a worker_health_metrics row.
func (s *Store) WriteHealthMetric(ctx context.Context, m models.HealthMetric) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO worker_health_metrics
		(cycle_timestamp, cycle_duration_ms, tasks_processed, tasks_failed,
		 total_items_found, total_matches, total_excluded, memory_usage_mb)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.CycleTimestamp, m.CycleDurationMS, m.TasksProcessed, m.TasksFailed,
		m.TotalItemsFound, m.TotalMatches, m.TotalExcluded, m.MemoryUsageMB)
	return err
}

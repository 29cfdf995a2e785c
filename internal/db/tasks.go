package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// ListActive returns every task with status='active', in the order the
// scheduler should process them.
func (s *Store) ListActive(ctx context.Context) ([]*models.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, item_type, status, min_price, max_price,
		       poll_interval, min_seller_feedback, exclude_keywords, listing_format,
		       conditions, item_location, jewelry_filters, watch_filters,
		       gemstone_filters, min_profit_margin, last_run, slack_channel,
		       slack_channel_id, created_at, updated_at
		FROM tasks
		WHERE status = 'active'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var itemType, status string
	var excludeKeywords, listingFormat, conditions []string
	var jewelryJSON, watchJSON, gemstoneJSON []byte
	var itemLocation, slackChannel, slackChannelID *string

	if err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &itemType, &status, &t.MinPrice, &t.MaxPrice,
		&t.PollIntervalSeconds, &t.MinSellerFeedback, &excludeKeywords, &listingFormat,
		&conditions, &itemLocation, &jewelryJSON, &watchJSON, &gemstoneJSON,
		&t.MinProfitMargin, &t.LastRun, &slackChannel, &slackChannelID,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.ItemType = models.ItemType(itemType)
	t.Status = models.TaskStatus(status)
	if itemLocation != nil {
		t.ItemLocation = *itemLocation
	}
	if slackChannel != nil {
		t.SlackChannel = *slackChannel
	}
	if slackChannelID != nil {
		t.SlackChannelID = *slackChannelID
	}

	t.ExcludeKeywords = make(map[string]bool, len(excludeKeywords))
	for _, k := range excludeKeywords {
		t.ExcludeKeywords[k] = true
	}
	t.ListingFormats = make(map[models.ListingFormat]bool, len(listingFormat))
	for _, f := range listingFormat {
		t.ListingFormats[models.ListingFormat(f)] = true
	}
	t.Conditions = make(map[models.Condition]bool, len(conditions))
	for _, c := range conditions {
		t.Conditions[models.Condition(c)] = true
	}

	switch t.ItemType {
	case models.ItemTypeJewelry:
		var j jewelryFiltersJSON
		if len(jewelryJSON) > 0 {
			if err := json.Unmarshal(jewelryJSON, &j); err != nil {
				return nil, fmt.Errorf("unmarshal jewelry_filters: %w", err)
			}
		}
		t.Filters.Jewelry = toModelJewelry(&j)
	case models.ItemTypeGemstone:
		var g gemstoneFiltersJSON
		if len(gemstoneJSON) > 0 {
			if err := json.Unmarshal(gemstoneJSON, &g); err != nil {
				return nil, fmt.Errorf("unmarshal gemstone_filters: %w", err)
			}
		}
		t.Filters.Gemstone = toModelGemstone(&g)
	case models.ItemTypeWatch:
		var w watchFiltersJSON
		if len(watchJSON) > 0 {
			if err := json.Unmarshal(watchJSON, &w); err != nil {
				return nil, fmt.Errorf("unmarshal watch_filters: %w", err)
			}
		}
		t.Filters.Watch = toModelWatch(&w)
	}

	return &t, nil
}

// UpdateLastRun advances last_run so a failing or abandoned task can't hog
// the scheduler loop (spec §5).
func (s *Store) UpdateLastRun(ctx context.Context, taskID int64, when time.Time) error {
	_, err := s.pool.Exec(ctx, `UPDATE tasks SET last_run = $1, updated_at = now() WHERE id = $2`, when, taskID)
	return err
}

// UpdateSlackChannel persists a newly-provisioned channel back to the task
// row (spec §4.8 step 5).
func (s *Store) UpdateSlackChannel(ctx context.Context, taskID int64, channel, channelID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE tasks SET slack_channel = $1, slack_channel_id = $2, updated_at = now()
		WHERE id = $3`, channel, channelID, taskID)
	return err
}

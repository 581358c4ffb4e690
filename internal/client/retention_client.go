// Package client calls a remote retention server.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/server"
	"github.com/at-ishikawa/retention/internal/srs"
	"github.com/at-ishikawa/retention/internal/statistics"
)

const defaultTimeout = 10 * time.Second

// RetentionClient is an HTTP client of the retention routes.
// Error responses are mapped back to the srs sentinel errors.
type RetentionClient struct {
	client *resty.Client
}

// NewRetentionClient creates a client of the server at baseURL.
func NewRetentionClient(baseURL string) *RetentionClient {
	return &RetentionClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// ReportQuality posts a quality report.
func (c *RetentionClient) ReportQuality(ctx context.Context, report srs.QualityReport) (*srs.ScheduleUpdateResult, error) {
	quality := report.Quality
	req := server.ReportRequest{
		ItemID:         report.ItemID,
		OwnerID:        report.OwnerID,
		Quality:        &quality,
		ResponseTimeMs: int(report.ResponseLatency / time.Millisecond),
	}
	if !report.Timestamp.IsZero() {
		req.Timestamp = &report.Timestamp
	}

	var result srs.ScheduleUpdateResult
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&server.ErrorResponse{}).
		Post(server.RoutePrefix + "/report")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return &result, nil
}

// DueItems fetches the owner's due items. limit <= 0 uses the server default.
func (c *RetentionClient) DueItems(ctx context.Context, ownerID string, limit int) ([]srs.Item, error) {
	req := c.client.R().
		SetContext(ctx).
		SetPathParam("owner_id", ownerID).
		SetResult(&server.DueItemsResponse{}).
		SetError(&server.ErrorResponse{})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	res, err := req.Get(server.RoutePrefix + "/due/{owner_id}")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*server.DueItemsResponse).DueItems, nil
}

// AddItem seeds an item.
func (c *RetentionClient) AddItem(ctx context.Context, ownerID, contentRef, itemID string) (*srs.Item, error) {
	var created srs.Item
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(server.AddItemRequest{OwnerID: ownerID, ContentRef: contentRef, ItemID: itemID}).
		SetResult(&created).
		SetError(&server.ErrorResponse{}).
		Post(server.RoutePrefix + "/items")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetItem fetches one item.
func (c *RetentionClient) GetItem(ctx context.Context, itemID string) (*srs.Item, error) {
	var it srs.Item
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("item_id", itemID).
		SetResult(&it).
		SetError(&server.ErrorResponse{}).
		Get(server.RoutePrefix + "/items/{item_id}")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return &it, nil
}

// ReviewHistory fetches the recorded reviews of an item.
func (c *RetentionClient) ReviewHistory(ctx context.Context, itemID string) ([]learning.ReviewLog, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("item_id", itemID).
		SetResult(&server.ReviewHistoryResponse{}).
		SetError(&server.ErrorResponse{}).
		Get(server.RoutePrefix + "/items/{item_id}/reviews")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*server.ReviewHistoryResponse).Reviews, nil
}

// Statistics fetches the owner's statistics.
func (c *RetentionClient) Statistics(ctx context.Context, ownerID string) (*statistics.OwnerStatistics, error) {
	var stats statistics.OwnerStatistics
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("owner_id", ownerID).
		SetResult(&stats).
		SetError(&server.ErrorResponse{}).
		Get(server.RoutePrefix + "/stats/{owner_id}")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return &stats, nil
}

func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: request failed > %w", srs.ErrStorage, err)
	}
	if !res.IsError() {
		return nil
	}

	message := string(res.Body())
	if body, ok := res.Error().(*server.ErrorResponse); ok && body.Error != "" {
		message = body.Error
	}
	return fmt.Errorf("%w: status code: %d, body: %s", sentinelFor(res.StatusCode(), message), res.StatusCode(), message)
}

// sentinelFor reverses server.StatusCode. Statuses shared by two errors are told apart by the message prefix.
func sentinelFor(status int, message string) error {
	switch status {
	case http.StatusBadRequest:
		if strings.HasPrefix(message, srs.ErrInvalidQuality.Error()) {
			return srs.ErrInvalidQuality
		}
		return srs.ErrInvalidArgument
	case http.StatusNotFound:
		return srs.ErrItemNotFound
	case http.StatusConflict:
		if strings.HasPrefix(message, srs.ErrOwnerMismatch.Error()) {
			return srs.ErrOwnerMismatch
		}
		return srs.ErrItemExists
	default:
		return srs.ErrStorage
	}
}

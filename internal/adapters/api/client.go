// Package api implements the Backend port against the FocusMate REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
)

// Client is an HTTP client for the FocusMate backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Ensure Client implements ports.Backend.
var _ ports.Backend = (*Client)(nil)

// New creates a backend client.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// getJSON performs a GET and decodes the JSON response into out. GETs are
// idempotent, so transient failures are retried with backoff.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Warn("Failed to close response body", "error", closeErr)
				}
			}()

			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return fmt.Errorf("HTTP %d", resp.StatusCode)
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("Retrying GET", "url", u, "attempt", n, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

// postJSON performs a single-shot POST. Mutations are never retried
// automatically; the caller decides whether a failure is user-visible.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("POST %s: HTTP %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// SetStudying flips the remote presence flag.
func (c *Client) SetStudying(ctx context.Context, userID int, studying bool) error {
	return c.postJSON(ctx, "/user/status", map[string]any{
		"is_studying": studying,
		"user_id":     userID,
	}, nil)
}

// SaveSession persists a finished interval and returns the outcome.
func (c *Client) SaveSession(ctx context.Context, req ports.SaveSessionRequest) (*domain.SessionOutcome, error) {
	var resp struct {
		Minutes     int  `json:"minutes"`
		BadgeEarned bool `json:"badge_earned"`
	}
	err := c.postJSON(ctx, "/focus/save", map[string]any{
		"duration_seconds": req.DurationSeconds,
		"note":             req.Note,
		"user_id":          req.UserID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.SessionOutcome{
		DurationSeconds: req.DurationSeconds,
		Minutes:         resp.Minutes,
		BadgeEarned:     resp.BadgeEarned,
		Note:            req.Note,
	}, nil
}

// UploadPhoto stores a completion photo.
func (c *Client) UploadPhoto(ctx context.Context, req ports.PhotoUpload) error {
	body := map[string]any{
		"user_id":      req.UserID,
		"image_base64": req.ImageBase64,
	}
	if req.Description != "" {
		body["description"] = req.Description
	}
	return c.postJSON(ctx, "/camera/upload", body, nil)
}

// LatestUnread probes for the most recent unread message.
func (c *Client) LatestUnread(ctx context.Context, userID int) (*domain.UnreadProbe, error) {
	var probe domain.UnreadProbe
	q := url.Values{"user_id": {strconv.Itoa(userID)}}

	// The probe runs every few seconds; a failed poll self-heals on the
	// next tick, so this GET is deliberately single-shot.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/messages/unread/latest?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll unread: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("poll unread: HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		return nil, fmt.Errorf("decode probe: %w", err)
	}
	return &probe, nil
}

// MarkRead records a read receipt for a message.
func (c *Client) MarkRead(ctx context.Context, messageID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/api/v1/messages/%d/read", messageID), nil, nil)
}

// SendMessage delivers a nudge to a friend.
func (c *Client) SendMessage(ctx context.Context, senderID, receiverID int, content string) error {
	return c.postJSON(ctx, "/api/v1/messages", map[string]any{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"content":     content,
	}, nil)
}

// FriendIDs returns the user's friend graph as ids.
func (c *Client) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	var resp struct {
		FriendIDs []int `json:"friend_ids"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/new-friends/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.FriendIDs, nil
}

// FriendStatuses resolves presence for a set of friend ids.
func (c *Client) FriendStatuses(ctx context.Context, ids []int) ([]domain.Friend, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	// current_timer is nullable in the API; decode through a pointer.
	var raw []struct {
		FriendID     int     `json:"friend_id"`
		Name         string  `json:"name"`
		Studying     bool    `json:"is_studying"`
		CurrentTimer *string `json:"current_timer"`
	}
	q := url.Values{"ids": {strings.Join(parts, ",")}}
	if err := c.getJSON(ctx, "/api/v1/friends/status", q, &raw); err != nil {
		return nil, err
	}

	friends := make([]domain.Friend, 0, len(raw))
	for _, r := range raw {
		f := domain.Friend{
			ID:       r.FriendID,
			Name:     r.Name,
			Studying: r.Studying,
		}
		if f.Name == "" {
			f.Name = "Unknown Friend"
		}
		if r.CurrentTimer != nil {
			f.CurrentTimer = *r.CurrentTimer
		}
		friends = append(friends, f)
	}
	return friends, nil
}

// RecordStatus returns the user's badge count and title.
func (c *Client) RecordStatus(ctx context.Context, userID int) (*domain.RecordStatus, error) {
	var rec domain.RecordStatus
	q := url.Values{"user_id": {strconv.Itoa(userID)}}
	if err := c.getJSON(ctx, "/api/v1/user/record_status", q, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// WeeklyFocus returns per-day focus minutes for the trailing week.
func (c *Client) WeeklyFocus(ctx context.Context, userID int) ([]domain.DailyFocus, error) {
	var days []domain.DailyFocus
	q := url.Values{"user_id": {strconv.Itoa(userID)}}
	if err := c.getJSON(ctx, "/focus/weekly", q, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Deadlines returns the user's deadline list.
func (c *Client) Deadlines(ctx context.Context, userID int) ([]domain.Deadline, error) {
	var items []domain.Deadline
	q := url.Values{"user_id": {strconv.Itoa(userID)}}
	if err := c.getJSON(ctx, "/deadlines/get-deadlines", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddDeadline creates a deadline entry.
func (c *Client) AddDeadline(ctx context.Context, userID int, task, date string) error {
	return c.postJSON(ctx, "/deadlines/add-item", map[string]any{
		"user_id":       userID,
		"task":          task,
		"deadline_date": date,
		"is_done":       false,
	}, nil)
}

// EditDeadline renames and/or redates an entry.
func (c *Client) EditDeadline(ctx context.Context, userID, id int, task, date string) error {
	return c.postJSON(ctx, "/deadlines/edit-item", map[string]any{
		"user_id":       userID,
		"id":            id,
		"task":          task,
		"deadline_date": date,
	}, nil)
}

// RemoveDeadline deletes an entry.
func (c *Client) RemoveDeadline(ctx context.Context, userID, id int) error {
	return c.postJSON(ctx, "/deadlines/remove-item", map[string]any{
		"id":      id,
		"user_id": userID,
	}, nil)
}

// SetDeadlineDone toggles completion.
func (c *Client) SetDeadlineDone(ctx context.Context, userID, id int, done bool) error {
	return c.postJSON(ctx, "/deadlines/click-done", map[string]any{
		"id":      id,
		"is_done": done,
		"user_id": userID,
	}, nil)
}

// SetDeadlineDoing toggles the current-doing marker.
func (c *Client) SetDeadlineDoing(ctx context.Context, userID, id int, doing bool) error {
	return c.postJSON(ctx, "/deadlines/doing-item", map[string]any{
		"id":            id,
		"current_doing": doing,
		"user_id":       userID,
	}, nil)
}

// ReorderDeadlines persists a new display order.
func (c *Client) ReorderDeadlines(ctx context.Context, userID int, orderedIDs []int) error {
	body := make([]map[string]any, len(orderedIDs))
	for i, id := range orderedIDs {
		body[i] = map[string]any{
			"id":            id,
			"user_id":       userID,
			"display_order": i + 1,
		}
	}
	return c.postJSON(ctx, "/deadlines/reorder", body, nil)
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.winapps.traveljournal/internal/middleware"
	models "io.winapps.traveljournal/internal/models/account"
	entrymodels "io.winapps.traveljournal/internal/models/entries"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	entryCacheTTL = 24 * time.Hour
)

type EntryHandler struct {
	entries EntryStore
	redis   *redis.Client
	logger  *zap.SugaredLogger
}

// NewEntryHandler creates a new entry handler. redisClient may be nil, which
// disables entry caching.
func NewEntryHandler(entries EntryStore, redisClient *redis.Client, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		redis:   redisClient,
		logger:  logger,
	}
}

// ListEntries returns every entry, all users see all entries.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	entries, err := h.entries.FindEntries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]entrymodels.EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, entryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateEntry creates a journal entry. The owner comes from the bearer token
// when one was supplied; otherwise the entry has no owner.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req entrymodels.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if req.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location is required"})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}

	var ownerID *int64
	if userID, ok := middleware.UserID(c); ok {
		ownerID = &userID
	}

	id, err := h.entries.CreateEntry(c.Request.Context(), req.Location, date, req.Description, ownerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.cacheEntry(c.Request.Context(), &models.Entry{
		ID:          id,
		Location:    req.Location,
		Date:        date,
		Description: req.Description,
		UserID:      ownerID,
	})

	c.JSON(http.StatusCreated, entrymodels.CreateEntryResponse{ID: id})
}

// GetEntry returns one entry with its date formatted to seconds.
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	ctx := c.Request.Context()

	if entry, ok := h.cachedEntry(ctx, id); ok {
		c.JSON(http.StatusOK, entryResponse(entry))
		return
	}

	entry, err := h.entries.FindEntryByID(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.cacheEntry(ctx, entry)

	c.JSON(http.StatusOK, entryResponse(entry))
}

// UpdateEntry applies a partial update: omitted fields keep their current
// values. The date accepts either date-time or date-only form.
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	var req entrymodels.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := c.Request.Context()

	entry, err := h.entries.FindEntryByID(ctx, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Date != nil {
		date, err := parseUpdateDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD HH:MM:SS or YYYY-MM-DD format"})
			return
		}
		entry.Date = date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	if err := h.entries.UpdateEntry(ctx, entry); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.invalidateEntry(ctx, id)

	c.JSON(http.StatusOK, gin.H{"message": "Entry updated successfully"})
}

// DeleteEntry removes the entry; its photos and tag links cascade.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	ctx := c.Request.Context()

	if err := h.entries.DeleteEntry(ctx, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.invalidateEntry(ctx, id)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

// parseUpdateDate tries the date-time layout first, then falls back to the
// date-only layout.
func parseUpdateDate(value string) (time.Time, error) {
	if date, err := time.Parse(dateTimeLayout, value); err == nil {
		return date, nil
	}
	return time.Parse(dateLayout, value)
}

func entryResponse(entry *models.Entry) entrymodels.EntryResponse {
	return entrymodels.EntryResponse{
		ID:          entry.ID,
		Location:    entry.Location,
		Date:        entry.Date.Format(dateTimeLayout),
		Description: entry.Description,
		UserID:      entry.UserID,
	}
}

// cacheEntry stores the entry in Redis, best-effort.
func (h *EntryHandler) cacheEntry(ctx context.Context, entry *models.Entry) {
	if h.redis == nil {
		return
	}
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return
	}
	key := fmt.Sprintf("entry:%d", entry.ID)
	if err := h.redis.Set(ctx, key, entryJSON, entryCacheTTL).Err(); err != nil && h.logger != nil {
		h.logger.Warnw("failed to cache entry", "key", key, "error", err)
	}
}

func (h *EntryHandler) cachedEntry(ctx context.Context, id int64) (*models.Entry, bool) {
	if h.redis == nil {
		return nil, false
	}
	raw, err := h.redis.Get(ctx, fmt.Sprintf("entry:%d", id)).Result()
	if err != nil {
		return nil, false
	}
	var entry models.Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

func (h *EntryHandler) invalidateEntry(ctx context.Context, id int64) {
	if h.redis == nil {
		return
	}
	key := fmt.Sprintf("entry:%d", id)
	if err := h.redis.Del(ctx, key).Err(); err != nil && h.logger != nil {
		h.logger.Warnw("failed to invalidate entry cache", "key", key, "error", err)
	}
}

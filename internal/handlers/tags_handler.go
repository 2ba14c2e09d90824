package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	entrymodels "io.winapps.traveljournal/internal/models/entries"
	tagmodels "io.winapps.traveljournal/internal/models/tags"
)

type TagHandler struct {
	entries EntryStore
	tags    TagStore
	logger  *zap.SugaredLogger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(entries EntryStore, tags TagStore, logger *zap.SugaredLogger) *TagHandler {
	return &TagHandler{
		entries: entries,
		tags:    tags,
		logger:  logger,
	}
}

// ListTags returns every tag.
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tags.FindTags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]tagmodels.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, tagmodels.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// CreateTag creates a tag with a unique name.
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req tagmodels.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	id, err := h.tags.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, tagmodels.TagResponse{ID: id, Name: req.Name})
}

// DeleteTag removes a tag; its entry links cascade.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if err := h.tags.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// ListEntryTags returns the tags attached to an entry.
func (h *TagHandler) ListEntryTags(c *gin.Context) {
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.entries.FindEntryByID(ctx, entryID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	tags, err := h.tags.FindTagsByEntry(ctx, entryID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]tagmodels.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, tagmodels.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	c.JSON(http.StatusOK, responses)
}

// AttachTag links an existing tag to an entry. Attaching the same tag twice is
// a no-op.
func (h *TagHandler) AttachTag(c *gin.Context) {
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	var req entrymodels.AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.entries.FindEntryByID(ctx, entryID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if _, err := h.tags.FindTagByID(ctx, req.TagID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.tags.AttachTag(ctx, entryID, req.TagID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tag attached successfully"})
}

// DetachTag removes the link between an entry and a tag.
func (h *TagHandler) DetachTag(c *gin.Context) {
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	tagID, ok := idParam(c, "tag_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if err := h.tags.DetachTag(c.Request.Context(), entryID, tagID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag detached successfully"})
}

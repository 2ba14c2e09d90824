package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	photomodels "io.winapps.traveljournal/internal/models/photos"
)

type PhotoHandler struct {
	entries EntryStore
	photos  PhotoStore
	logger  *zap.SugaredLogger
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(entries EntryStore, photos PhotoStore, logger *zap.SugaredLogger) *PhotoHandler {
	return &PhotoHandler{
		entries: entries,
		photos:  photos,
		logger:  logger,
	}
}

// ListPhotos returns all photos owned by an entry.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
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

	photos, err := h.photos.FindPhotosByEntry(ctx, entryID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]photomodels.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		responses = append(responses, photomodels.PhotoResponse{ID: photo.ID, URL: photo.URL})
	}
	c.JSON(http.StatusOK, responses)
}

// AddPhoto persists a photo URL under an entry.
func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	var req photomodels.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.entries.FindEntryByID(ctx, entryID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	photo, err := h.photos.CreatePhoto(ctx, entryID, req.URL)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, photomodels.PhotoResponse{ID: photo.ID, URL: photo.URL})
}

// DeletePhoto removes a photo, matching both the photo id and the entry id so
// the wrong entry's path cannot delete it.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	entryID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	photoID, ok := idParam(c, "photo_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	if err := h.photos.DeletePhoto(c.Request.Context(), entryID, photoID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

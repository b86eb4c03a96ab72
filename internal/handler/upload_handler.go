package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/atelierhq/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadImage stores an uploaded image and returns its public URL. A missing
// bucket is reported as a distinct signal, not a generic failure, so the
// form can switch to external-URL entry instead of retrying.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image in request")
		return
	}

	folder := strings.TrimSpace(c.PostForm("folder"))
	if folder == "" {
		folder = "uploads"
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read uploaded image")
		return
	}
	defer src.Close()

	url, err := a.media.Upload(src, file.Header.Get("Content-Type"), file.Size, folder)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBucketMissing):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message":        "storage bucket not found, use an external URL instead",
				"bucket_missing": true,
			})
		case errors.Is(err, storage.ErrFileType),
			errors.Is(err, storage.ErrFileTooLarge),
			errors.Is(err, storage.ErrNotAnImage):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteUpload removes a stored object by its URL. URLs the gateway never
// issued are acknowledged without touching anything.
func (a *API) DeleteUpload(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		respondError(c, http.StatusBadRequest, "url is required")
		return
	}

	if err := a.media.Delete(url); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			respondError(c, http.StatusNotFound, "object not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// StorageStatus exposes the capability probe so the editor can decide which
// upload mode to offer before the user picks a file.
func (a *API) StorageStatus(c *gin.Context) {
	capability := a.media.Probe()
	payload := gin.H{"available": capability.State == storage.Available}
	if capability.State != storage.Available {
		payload["reason"] = capability.Reason
	}
	c.JSON(http.StatusOK, payload)
}

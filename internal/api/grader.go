package api

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxHomeworkImageBytes caps uploaded sheet photos. The whole file is held
// in memory as a data URI, so the cap keeps one session from pinning
// arbitrary amounts of it.
const maxHomeworkImageBytes = 8 << 20 // 8 MB

// HandleUploadImage reads the uploaded homework photo fully into memory,
// encodes it as a data URI and loads it into the grader view, discarding
// any prior report.
func (h *Handler) HandleUploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	if fileHeader.Size > maxHomeworkImageBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the 8 MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file is not an image"})
		return
	}

	dataURI := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	sess := h.session(c)
	if err := sess.Homework.LoadImage(dataURI); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Homework.Snapshot())
}

// HandleGrade runs one grading call against the loaded image.
func (h *Handler) HandleGrade(c *gin.Context) {
	sess := h.session(c)
	if err := sess.Homework.Grade(c.Request.Context(), h.Gateway); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Homework.Snapshot())
}

// HandleRemoveImage discards the image and any report.
func (h *Handler) HandleRemoveImage(c *gin.Context) {
	sess := h.session(c)
	sess.Homework.Remove()
	c.JSON(http.StatusOK, sess.Homework.Snapshot())
}

// HandleGetGrader returns the grader view snapshot.
func (h *Handler) HandleGetGrader(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Homework.Snapshot())
}

package api

import (
	"net/http"

	"smartstudy/internal/models"

	"github.com/gin-gonic/gin"
)

type setTopicRequest struct {
	Topic string `json:"topic"`
}

// HandleSetTopic updates the generation form's topic field.
func (h *Handler) HandleSetTopic(c *gin.Context) {
	var req setTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess := h.session(c)
	sess.Questions.SetTopic(req.Topic)
	c.JSON(http.StatusOK, sess.Questions.Snapshot())
}

type setDifficultyRequest struct {
	Difficulty models.Difficulty `json:"difficulty" binding:"required"`
}

// HandleSetDifficulty updates the difficulty selector.
func (h *Handler) HandleSetDifficulty(c *gin.Context) {
	var req setDifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess := h.session(c)
	if err := sess.Questions.SetDifficulty(req.Difficulty); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Questions.Snapshot())
}

type toggleTypeRequest struct {
	Type models.QuestionType `json:"type" binding:"required"`
}

// HandleToggleType flips one question type in the selected-types set.
func (h *Handler) HandleToggleType(c *gin.Context) {
	var req toggleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess := h.session(c)
	if err := sess.Questions.ToggleType(req.Type); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Questions.Snapshot())
}

type generateRequest struct {
	Count int `json:"count"`
}

// HandleGenerate runs one generation call and returns the resulting view
// snapshot. Illustrations keep resolving after this returns; clients poll
// the snapshot for them.
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	count := req.Count
	if count == 0 {
		count = h.DefaultCount
	}
	if count < 1 || count > h.MaxCount {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 10"})
		return
	}

	sess := h.session(c)
	if err := sess.Questions.Generate(c.Request.Context(), h.Gateway, count); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Questions.Snapshot())
}

// HandleClearQuestions discards the current batch.
func (h *Handler) HandleClearQuestions(c *gin.Context) {
	sess := h.session(c)
	sess.Questions.Clear()
	c.JSON(http.StatusOK, sess.Questions.Snapshot())
}

// HandleToggleReveal flips one card's answer-reveal flag.
func (h *Handler) HandleToggleReveal(c *gin.Context) {
	sess := h.session(c)
	revealed, err := sess.Questions.ToggleReveal(c.Param("questionId"))
	if err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revealed": revealed})
}

// HandleGetGenerator returns the generator view snapshot.
func (h *Handler) HandleGetGenerator(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Questions.Snapshot())
}

package api

import (
	"errors"
	"log"
	"net/http"

	"smartstudy/internal/view"

	"github.com/gin-gonic/gin"
)

// Handler contains the API handlers' dependencies.
type Handler struct {
	Sessions *view.Manager
	Gateway  view.Gateway

	// DefaultCount is used when a generation request carries no count.
	DefaultCount int
	// MaxCount caps how many questions one request may ask for.
	MaxCount int
}

// NewHandler creates a new Handler.
func NewHandler(sessions *view.Manager, gw view.Gateway, defaultCount int) *Handler {
	if defaultCount < 1 {
		defaultCount = 3
	}
	return &Handler{
		Sessions:     sessions,
		Gateway:      gw,
		DefaultCount: defaultCount,
		MaxCount:     10,
	}
}

// session returns the view session the middleware resolved for this
// request.
func (h *Handler) session(c *gin.Context) *view.Session {
	return c.MustGet(sessionContextKey).(*view.Session)
}

// viewError maps view errors onto HTTP statuses. Validation failures are
// the caller's fault, busy means a call is already in flight, and
// everything else is a service failure surfaced as a generic warning.
func (h *Handler) viewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, view.ErrBusy):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, view.ErrEmptyTopic),
		errors.Is(err, view.ErrNoTypes),
		errors.Is(err, view.ErrNoImage),
		errors.Is(err, view.ErrAlreadyGraded),
		errors.Is(err, view.ErrUnknownQuestion),
		errors.Is(err, view.ErrUnknownMode),
		errors.Is(err, view.ErrBadDifficulty),
		errors.Is(err, view.ErrBadType),
		errors.Is(err, view.ErrBadImage):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "the assistant is unavailable, please try again"})
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.Sessions.Len()})
}

// HandleGetSession returns the whole session snapshot: shell mode plus
// both views.
func (h *Handler) HandleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).Snapshot())
}

type setModeRequest struct {
	Mode view.Mode `json:"mode" binding:"required"`
}

// HandleSetMode switches the shell between the generator and grader views.
func (h *Handler) HandleSetMode(c *gin.Context) {
	var req setModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess := h.session(c)
	if err := sess.SetMode(req.Mode); err != nil {
		h.viewError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": sess.Mode()})
}

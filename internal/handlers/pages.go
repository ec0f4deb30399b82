package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smowhabuth/SKBday/internal/auth"
	"github.com/smowhabuth/SKBday/internal/dto"
	"github.com/smowhabuth/SKBday/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "session_id"

	firstDay = 1
	lastDay  = 3
)

// PageHandler serves the guest-facing pages: login, day views and comments.
type PageHandler struct {
	sessions *auth.Store
	users    *service.UserService
	comments *service.CommentService
}

// NewPageHandler returns a new PageHandler.
func NewPageHandler(sessions *auth.Store, users *service.UserService, comments *service.CommentService) *PageHandler {
	return &PageHandler{sessions: sessions, users: users, comments: comments}
}

// Root sends authenticated guests to day 1, carrying their access code so
// the link stays shareable, and everyone else to the login form.
func (h *PageHandler) Root(c *gin.Context) {
	if u := auth.UserFromContext(c); u != nil {
		c.Redirect(http.StatusFound, "/day/1?code="+u.AccessCode)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form. ?error=invalid shows the retry notice,
// ?code= prefills the field (QR deep link).
func (h *PageHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error": c.Query("error"),
		"Code":  c.Query("code"),
	})
}

// Login authenticates the submitted access code and establishes a session.
func (h *PageHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/login?error=invalid")
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), form.AccessCode)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Redirect(http.StatusFound, "/login?error=invalid")
			return
		}
		c.String(http.StatusInternalServerError, "Login failed")
		return
	}
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Login failed")
		return
	}
	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(sessionCookieName, h.sessions.Sign(sessionID), maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Day renders one day's page with its comments newest first. Days outside
// 1..3 bounce back to the root.
func (h *PageHandler) Day(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("dayNumber"))
	if err != nil || day < firstDay || day > lastDay {
		c.Redirect(http.StatusFound, "/")
		return
	}
	list, err := h.comments.ListByDay(c.Request.Context(), day)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading comments")
		return
	}
	nextDay := 0
	if day < lastDay {
		nextDay = day + 1
	}
	c.HTML(http.StatusOK, "day.html", gin.H{
		"User":      auth.UserFromContext(c),
		"Comments":  list,
		"DayNumber": day,
		"NextDay":   nextDay,
	})
}

// PostComment stores a comment for the submitted day and returns to that
// day's view. The day value is parsed but deliberately not range-checked;
// only the view path enforces bounds.
func (h *PageHandler) PostComment(c *gin.Context) {
	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := strconv.Atoi(form.Day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day"})
		return
	}
	user := auth.UserFromContext(c)
	if _, err := h.comments.Post(c.Request.Context(), user.ID, day, form.Text); err != nil {
		c.String(http.StatusInternalServerError, "Error saving comment")
		return
	}
	c.Redirect(http.StatusFound, "/day/"+form.Day+"?code="+user.AccessCode)
}

package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/smowhabuth/SKBday/internal/dto"
	"github.com/smowhabuth/SKBday/internal/qr"
	"github.com/smowhabuth/SKBday/internal/service"

	"github.com/gin-gonic/gin"
)

// friends is the fixed provisioning list for /generate-codes.
var friends = []struct {
	Name string
	Code string
}{
	{"Sarah", "SZA42"},
	{"Mike", "MIK89"},
	{"Emily", "EMY33"},
}

// AdminHandler serves provisioning, admin and diagnostic routes. None of
// these are session-gated; they mirror the app's original surface.
type AdminHandler struct {
	users   *service.UserService
	baseURL string
}

// NewAdminHandler returns a new AdminHandler.
func NewAdminHandler(users *service.UserService, baseURL string) *AdminHandler {
	return &AdminHandler{users: users, baseURL: baseURL}
}

type codeCard struct {
	Name string
	Code string
	URL  string
	// template.URL so html/template doesn't strip the data: scheme.
	QR template.URL
}

// GenerateCodes upserts the friend list and renders a shareable login URL
// plus QR image for each. Any store or encoder failure aborts the batch.
func (h *AdminHandler) GenerateCodes(c *gin.Context) {
	cards := make([]codeCard, 0, len(friends))
	for _, f := range friends {
		if _, err := h.users.Upsert(c.Request.Context(), f.Name, f.Code); err != nil {
			c.String(http.StatusInternalServerError, "Error generating codes")
			return
		}
		u := qr.LoginURL(h.baseURL, f.Code)
		img, err := qr.DataURL(u)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error generating codes")
			return
		}
		cards = append(cards, codeCard{Name: f.Name, Code: f.Code, URL: u, QR: template.URL(img)})
	}
	c.HTML(http.StatusOK, "codes.html", gin.H{"QRCodes": cards})
}

// AdminUsers renders the full user list.
func (h *AdminHandler) AdminUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading users")
		return
	}
	c.HTML(http.StatusOK, "admin-users.html", gin.H{"Users": users})
}

// AddUser creates a user from the admin form. The code is uppercased
// before storage.
func (h *AdminHandler) AddUser(c *gin.Context) {
	var form dto.AddUserForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusInternalServerError, "Error adding user")
		return
	}
	code := strings.ToUpper(form.AccessCode)
	if _, err := h.users.Create(c.Request.Context(), form.Name, code); err != nil {
		c.String(http.StatusInternalServerError, "Error adding user")
		return
	}
	c.Redirect(http.StatusFound, "/admin/users")
}

// DebugUsers dumps all users as JSON. Diagnostic only; raw error text is
// echoed on failure.
func (h *AdminHandler) DebugUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.UserResponse{
			ID:         u.ID,
			AccessCode: u.AccessCode,
			Name:       u.Name,
			IsAdmin:    u.IsAdmin,
			CreatedAt:  u.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, out)
}

// GenerateQR renders a QR login image for an arbitrary code, with the
// matching user if one exists.
func (h *AdminHandler) GenerateQR(c *gin.Context) {
	code := c.Param("code")
	u := qr.LoginURL(h.baseURL, code)
	img, err := qr.DataURL(u)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error generating QR")
		return
	}
	data := gin.H{"QR": template.URL(img), "URL": u, "User": nil}
	user, err := h.users.GetByAccessCode(c.Request.Context(), code)
	if err == nil {
		data["User"] = &user
	} else if !errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusInternalServerError, "Error generating QR")
		return
	}
	c.HTML(http.StatusOK, "qr-code.html", data)
}

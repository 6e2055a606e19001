package auth

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/middleware"
	"github.com/simp-lee/adminboard/internal/pkg"
)

// CookieSettings controls the session cookie written on login and cleared on
// logout. The cookie is always HttpOnly.
type CookieSettings struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int // seconds
}

// PictureSettings controls where profile pictures are stored and how large
// they may be.
type PictureSettings struct {
	Dir          string
	MaxSizeBytes int64
}

var allowedPictureExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc     Service
	cookie  CookieSettings
	picture PictureSettings
}

// NewHandler creates a new AuthHandler with the given service, cookie, and
// profile picture settings.
func NewHandler(svc Service, cookie CookieSettings, picture PictureSettings) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie, picture: picture}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), domain.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "user registered successfully",
		Data:    user,
	})
}

// Login handles POST /api/v1/auth/login. On success the session token is set
// as an HttpOnly cookie and the authenticated user is returned.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, h.cookie.MaxAge)
	pkg.Success(c, user)
}

// Logout handles POST /api/v1/auth/logout. It clears the session cookie; the
// endpoint succeeds whether or not a session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	pkg.Success(c, nil)
}

// Me handles GET /api/v1/auth/me. Requires the Session middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

// UploadPicture handles POST /api/v1/auth/me/picture. The multipart "picture"
// file is stored under the uploads directory and its URL is saved on the
// session user's record.
func (h *AuthHandler) UploadPicture(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "picture file is required", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPictureExts[ext] {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "unsupported image type: "+ext, nil))
		return
	}
	if h.picture.MaxSizeBytes > 0 && file.Size > h.picture.MaxSizeBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "picture exceeds the maximum allowed size", nil))
		return
	}

	filename := fmt.Sprintf("avatar_%d_%d%s", userID, time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.picture.Dir, filename)); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "failed to store picture", err))
		return
	}

	user, err := h.svc.UpdateProfilePicture(c.Request.Context(), userID, "/uploads/"+filename)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

// DeletePicture handles DELETE /api/v1/auth/me/picture. It clears the stored
// picture URL; deleting an absent picture succeeds.
func (h *AuthHandler) DeletePicture(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.svc.UpdateProfilePicture(c.Request.Context(), userID, "")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarmaan6204/nutri-tracker/middlewares"
	"github.com/mdarmaan6204/nutri-tracker/services"
)

type AuthController struct {
	auth       *services.AuthService
	cookieAge  int
	secure     bool
	production bool
}

func NewAuthController(auth *services.AuthService, tokens *services.TokenService, production bool) *AuthController {
	return &AuthController{
		auth:       auth,
		cookieAge:  int(tokens.TTL().Seconds()),
		secure:     production,
		production: production,
	}
}

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "name, username and password are required")
		return
	}

	user, token, err := h.auth.Signup(c.Request.Context(), input.Name, input.Username, input.Password)
	if err != nil {
		respondError(c, h.production, err)
		return
	}

	// Dual-channel delivery: cookie for browser clients, token in the
	// body for cross-origin clients that cannot use cookies.
	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "username and password are required")
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, h.production, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Logout clears the session cookie. The token itself stays valid until
// its natural expiry; there is no server-side revocation list.
func (h *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthController) Profile(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, token, h.cookieAge, "/", "", h.secure, true)
}

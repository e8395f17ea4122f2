package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authserver/internal/service"
)

type AuthHandler interface {
	Login(c *gin.Context)
	Register(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService service.AuthService, log *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, log: log}
}

func (h *authHandler) Login(c *gin.Context) {
	username, passwordhash, ok := h.credentials(c)
	if !ok {
		return
	}

	tok, err := h.authService.Login(username, passwordhash)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUser):
			// 409 for an unregistered username is a preserved quirk of the
			// external contract; convention would be 404 or 401.
			setError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			setError(c, http.StatusUnauthorized, err.Error())
		default:
			h.log.Error("Login failed", zap.String("username", username), zap.Error(err))
			setError(c, http.StatusInternalServerError, "Something broke!", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login", "token": tok})
}

func (h *authHandler) Register(c *gin.Context) {
	username, passwordhash, ok := h.credentials(c)
	if !ok {
		return
	}

	tok, err := h.authService.Register(username, passwordhash)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			setError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrRegisterStorage):
			setError(c, http.StatusInternalServerError, err.Error())
		default:
			h.log.Error("Registration failed", zap.String("username", username), zap.Error(err))
			setError(c, http.StatusInternalServerError, "Something broke!", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registered successfully", "token": tok})
}

// credentials binds the raw JSON body and runs the presence/emptiness
// validation. On failure it writes the 400 response itself.
func (h *authHandler) credentials(c *gin.Context) (string, string, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		setError(c, http.StatusBadRequest, service.ErrMissingBody.Error())
		return "", "", false
	}

	username, passwordhash, err := service.CredentialsFromBody(body)
	if err != nil {
		setError(c, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	return username, passwordhash, true
}

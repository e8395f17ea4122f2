package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authserver/internal/service"
)

type UsersHandler interface {
	List(c *gin.Context)
	Delete(c *gin.Context)
}

type usersHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

func NewUsersHandler(authService service.AuthService, log *zap.Logger) UsersHandler {
	return &usersHandler{authService: authService, log: log}
}

func (h *usersHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.ListUsers())
}

func (h *usersHandler) Delete(c *gin.Context) {
	username := c.Param("username")

	if err := h.authService.DeleteUser(username); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			setError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAdminUndeletable):
			// 400 rather than 403 is a preserved quirk of the external
			// contract.
			setError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDeleteStorage):
			setError(c, http.StatusInternalServerError, err.Error())
		default:
			h.log.Error("Delete user failed", zap.String("username", username), zap.Error(err))
			setError(c, http.StatusInternalServerError, "Something broke!", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully deleted user"})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authserver/internal/weather_client"
)

type WeatherHandler interface {
	City(c *gin.Context)
}

type weatherHandler struct {
	client *weather_client.Client
	log    *zap.Logger
}

func NewWeatherHandler(client *weather_client.Client, log *zap.Logger) WeatherHandler {
	return &weatherHandler{client: client, log: log}
}

// City relays the upstream weather report for the requested city. Any
// upstream failure collapses into a single 400 with the cause as details.
func (h *weatherHandler) City(c *gin.Context) {
	city := c.Param("city")

	report, err := h.client.CityWeather(c.Request.Context(), city)
	if err != nil {
		h.log.Warn("Weather lookup failed", zap.String("city", city), zap.Error(err))
		setError(c, http.StatusBadRequest, fmt.Sprintf("error when retrieving data for %s", city), err.Error())
		return
	}

	c.JSON(http.StatusOK, report)
}

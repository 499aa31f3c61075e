package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketscan/ticketscan/internal/airports"
	"github.com/ticketscan/ticketscan/internal/models"
)

func ListAirports(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]airports.Airport{
		"origins":      airports.Origins(),
		"destinations": airports.Destinations(),
	})
}

func GetAirport(c echo.Context) error {
	airport, ok := airports.Lookup(c.Param("code"))
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "unknown airport code",
			Code:    http.StatusNotFound,
		})
	}
	return c.JSON(http.StatusOK, airport)
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/servo2go/internal/motor"
)

type motorState struct {
	Direction motor.Direction `json:"direction"`
}

func registerMotorEndpoints(rest *echo.Echo, m motor.Driver) {
	group := rest.Group("/motor")

	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, motorState{Direction: m.GetDirection()}, indentationChar)
	})
	group.POST("/:"+urlParamDirection+"/", func(c echo.Context) error {
		return driveMotor(c, m)
	})
}

func driveMotor(c echo.Context, m motor.Driver) error {
	direction, err := motor.ParseDirection(c.Param(urlParamDirection))
	if err != nil {
		return returnBadRequest(c, err)
	}

	if err := m.Drive(direction); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, motorState{Direction: m.GetDirection()}, indentationChar)
}

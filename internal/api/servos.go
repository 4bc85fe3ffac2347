package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/servo2go/internal/servo"
	"github.com/qdm12/reprint"
)

func registerServoEndpoints(rest *echo.Echo) {
	group := rest.Group("/servo")

	group.GET("/", getServos)
	group.GET("/:"+urlParamId+"/", getServo)
	group.POST("/:"+urlParamId+"/angle/:"+urlParamAngle+"/", setServoAngle)
	group.POST("/:"+urlParamId+"/stop/", stopServo)
}

// returns a list of all currently configured servos
func getServos(c echo.Context) error {
	data := reprint.This(servo.Statuses())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getServo(c echo.Context) error {
	id := c.Param(urlParamId)

	s, exists := servo.ServoMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, s.GetStatus(), indentationChar)
}

func setServoAngle(c echo.Context) error {
	id := c.Param(urlParamId)

	s, exists := servo.ServoMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	angle, err := strconv.Atoi(c.Param(urlParamAngle))
	if err != nil {
		return returnBadRequest(c, fmt.Errorf("invalid angle '%s'", c.Param(urlParamAngle)))
	}

	if err := s.SetAngle(angle); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, s.GetStatus(), indentationChar)
}

func stopServo(c echo.Context) error {
	id := c.Param(urlParamId)

	s, exists := servo.ServoMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	immediate := false
	if value := c.QueryParam(queryImmediate); len(value) > 0 {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return returnBadRequest(c, fmt.Errorf("invalid value for %s: '%s'", queryImmediate, value))
		}
		immediate = parsed
	}

	if err := s.Stop(immediate); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, s.GetStatus(), indentationChar)
}

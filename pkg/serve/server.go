package serve

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Prediction is the body of a successful /invocations response.
type Prediction struct {
	Prediction string `json:"prediction"`
	Advice     string `json:"advice"`
}

// BuildServer routes the SageMaker container contract onto svc.
func BuildServer(svc *Service, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.DefaultHTTPErrorHandler(err, c)
		e.Logger.Error(err)
	}
	e.Use(middleware.Recover())
	e.Use(LogHandlerFunc)

	e.GET("/ping", func(c echo.Context) error {
		if err := svc.Healthy(); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "Healthy"})
	})

	e.POST("/invocations", func(c echo.Context) error {
		if err := svc.Healthy(); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		in, err := DecodeInput(c.Request().Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		class, err := svc.Predict(in)
		if err != nil {
			if errors.Is(err, ErrNotLoaded) {
				return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
			}
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, Prediction{Prediction: class, Advice: Advice(class)})
	})

	return e
}

// LogHandlerFunc logs each request and its response through the echo logger.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		begin := time.Now()
		c.Logger().Infof("< request @[%s] %s %s", begin, meth, path)

		var err error
		defer func() {
			end := time.Now()
			c.Logger().Infof(
				"> response @[%s] status = %d (for request @[%s] %s %s) in %v / error = %+v",
				end, c.Response().Status, begin, meth, path, end.Sub(begin), err,
			)
		}()

		err = next(c)
		return err
	}
}

// SetLevel sets the echo logger level from debug, info, warn, error or off.
// Anything else falls back to warn.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}

package feedback

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// IntentHTTPError maps a Begin failure onto the HTTP reply: a processing
// intent is a conflict (the first confirm owns it), anything else is gone.
func IntentHTTPError(err error) *echo.HTTPError {
	if errors.Is(err, ErrIntentProcessing) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusGone, err.Error())
}

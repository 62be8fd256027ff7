package navigate

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Navigator sends the client to another route. It ends the request.
type Navigator interface {
	RedirectTo(route string) error
}

type echoNavigator struct{ c echo.Context }

func New(c echo.Context) Navigator { return echoNavigator{c: c} }

// RedirectTo answers 303 so a form POST turns into a GET of route.
func (n echoNavigator) RedirectTo(route string) error {
	return n.c.Redirect(http.StatusSeeOther, route)
}

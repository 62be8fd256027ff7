package echoServer

import (
	"invoicedash/app/echoServer/controller/auth"
	"invoicedash/app/echoServer/controller/invoice"
	"invoicedash/app/echoServer/jwtx"
	"invoicedash/app/echoServer/routecache"

	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *auth.Controller
	Invoice *invoice.Controller
	Cache   *routecache.Store

	AuthSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/login", c.Auth.LoginPage, RedirectIfSignedIn(c.AuthSecret))
	e.POST("/login", c.Auth.Login)
	e.POST("/logout", c.Auth.Logout)

	// Dashboard, session required
	dash := e.Group("/dashboard", RequireSession(c.AuthSecret))
	dash.GET("/customers", c.Invoice.Customers)

	inv := dash.Group("/invoices", c.Cache.Middleware(jwtx.ClientKey))
	inv.GET("", c.Invoice.List)
	inv.POST("", c.Invoice.Create)
	inv.GET("/:id", c.Invoice.Detail)
	inv.POST("/:id", c.Invoice.Update)
	inv.PUT("/:id", c.Invoice.Update)
	inv.POST("/:id/delete", c.Invoice.Delete)
	inv.DELETE("/:id", c.Invoice.Delete)
}

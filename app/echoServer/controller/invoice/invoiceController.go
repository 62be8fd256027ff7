package invoice

import (
	"errors"
	"log/slog"
	"net/http"

	"invoicedash/app/echoServer/jwtx"
	"invoicedash/app/echoServer/navigate"
	"invoicedash/model"
	invoicesvc "invoicedash/service/invoice"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc invoicesvc.Service
	Log *slog.Logger
}

// Create
// @Summary      Create invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        customerId  formData  string  true  "customer id"
// @Param        amount      formData  number  true  "amount in dollars"
// @Param        status      formData  string  true  "pending | paid"
// @Success      303  "redirect to /dashboard/invoices"
// @Failure      422  {object}  model.State
// @Failure      500  {object}  model.State
// @Router       /dashboard/invoices [post]
func (h *Controller) Create(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid form"})
	}
	res := h.Svc.Create(c.Request().Context(), model.State{}, form)
	return h.respond(c, res)
}

// Update
// @Summary      Update invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id          path      string  true  "invoice id"
// @Param        customerId  formData  string  true  "customer id"
// @Param        amount      formData  number  true  "amount in dollars"
// @Param        status      formData  string  true  "pending | paid"
// @Success      303  "redirect to /dashboard/invoices"
// @Failure      422  {object}  model.State
// @Failure      500  {object}  model.State
// @Router       /dashboard/invoices/{id} [post]
func (h *Controller) Update(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid form"})
	}
	res := h.Svc.Update(c.Request().Context(), c.Param("id"), form)
	return h.respond(c, res)
}

// Delete
// @Summary      Delete invoice
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "invoice id"
// @Success      200  {object}  model.State
// @Failure      500  {object}  model.State
// @Router       /dashboard/invoices/{id}/delete [post]
func (h *Controller) Delete(c echo.Context) error {
	res := h.Svc.Delete(c.Request().Context(), c.Param("id"))
	return h.respond(c, res)
}

// GET /dashboard/invoices?query=&page=
func (h *Controller) List(c echo.Context) error {
	var req ListReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"page": "gte 1"}})
	}
	page, err := h.Svc.List(c.Request().Context(), req.Query, req.Page)
	if err != nil {
		h.Log.Error("invoice list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database Error: Failed to fetch invoices."})
	}
	return c.JSON(http.StatusOK, page)
}

// GET /dashboard/invoices/:id
func (h *Controller) Detail(c echo.Context) error {
	inv, err := h.Svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("invoice detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database Error: Failed to fetch invoice."})
	}
	if inv == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, inv)
}

// GET /dashboard/customers
func (h *Controller) Customers(c echo.Context) error {
	rows, err := h.Svc.Customers(c.Request().Context())
	if err != nil {
		h.Log.Error("customer list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database Error: Failed to fetch all customers."})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) respond(c echo.Context, res invoicesvc.Result) error {
	if res.Redirect != "" {
		return navigate.New(c).RedirectTo(res.Redirect)
	}

	var ve *invoicesvc.ValidationError
	var pe *invoicesvc.PersistenceError
	switch {
	case errors.As(res.Err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, res.State)
	case errors.As(res.Err, &pe):
		h.Log.Warn("invoice write failed", "op", pe.Op, "user", actor(c), "id", c.Param("id"))
		return c.JSON(http.StatusInternalServerError, res.State)
	case res.Err != nil:
		h.Log.Error("invoice action failed", "err", res.Err, "path", c.Path(), "user", actor(c))
		return c.JSON(http.StatusInternalServerError, res.State)
	default:
		return c.JSON(http.StatusOK, res.State)
	}
}

// actor names the signed-in user for log lines.
func actor(c echo.Context) string {
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return "unknown"
	}
	return email
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sandesh007711/todoList/internal/core/ports"
)

// TodoHandler handles the /api/todos surface.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List returns the caller's todos, newest first.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Router       /api/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Create adds a new todo for the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo text"
// @Success      201   {object}  domain.Todo
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.service.Create(c.Request().Context(), ports.CreateTodoInput{
		OwnerID: userID,
		Text:    req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// Get returns a single todo by id.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo id"
// @Success      200  {object}  domain.Todo
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Update applies a partial patch to one todo. Completion timestamps are
// assigned server-side; see updateTodoRequest.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to change"
// @Success      200   {object}  domain.Todo
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.service.Update(c.Request().Context(), ports.UpdateTodoInput{
		OwnerID: userID,
		ID:      c.Param("id"),
		Patch: ports.TodoPatch{
			Text:      req.Text,
			Completed: req.Completed,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete removes a todo.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History returns the caller's completed todos, newest completion first.
//
// @Summary      Flat completion history
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Router       /api/todos/history [get]
func (h *TodoHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	todos, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// HistoryByDate returns completed todos bucketed by UTC calendar day.
//
// @Summary      Completion history grouped by day
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param        endDate    query     string  false  "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success      200  {array}   ports.HistoryBucket
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/todos/history/byDate [get]
func (h *TodoHandler) HistoryByDate(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	start, err := parseHistoryBound(c.QueryParam("startDate"), false)
	if err != nil {
		return err
	}
	end, err := parseHistoryBound(c.QueryParam("endDate"), true)
	if err != nil {
		return err
	}

	buckets, err := h.service.HistoryByDate(c.Request().Context(), ports.HistoryQuery{
		OwnerID: userID,
		Start:   start,
		End:     end,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, buckets)
}

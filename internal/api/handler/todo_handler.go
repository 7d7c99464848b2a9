package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/api/metrics"
	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations. All routes run
// behind the Auth middleware; ownership scoping happens in the service layer.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List returns the caller's live todos.
//
// @Summary      List the current user's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  errorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	out := make([]todoResponse, len(todos))
	for i, todo := range todos {
		out[i] = toTodoResponse(todo)
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one of the caller's todos by id. A todo owned by someone else
// is reported as 404, never 403.
//
// @Summary      Get a todo by id
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Create stores a new todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  todoRequest  true  "Todo fields"
// @Success      201  {object}  todoResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), identity, toTodoInput(req))
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toTodoResponse(created))
}

// Update replaces the writable fields of one of the caller's todos.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Todo id"
// @Param        body  body  todoRequest  true  "Todo fields"
// @Success      200  {object}  todoResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), toTodoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(updated))
}

// Delete soft-deletes one of the caller's todos.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}

// ListAll returns every live todo across all owners. Routed behind the
// admin role policy.
//
// @Summary      List all todos (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminTodoResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/todos [get]
func (h *TodoHandler) ListAll(c echo.Context) error {
	todos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminTodoResponse, len(todos))
	for i, todo := range todos {
		out[i] = adminTodoResponse{
			todoResponse: toTodoResponse(todo),
			OwnerID:      todo.OwnerID,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func toTodoInput(req todoRequest) ports.TodoInput {
	return ports.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	}
}

func toTodoResponse(todo *domain.Todo) todoResponse {
	return todoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Complete:    todo.Complete,
		CreatedAt:   todo.CreatedAt.UTC(),
		UpdatedAt:   todo.UpdatedAt.UTC(),
	}
}

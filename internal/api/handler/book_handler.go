package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List returns catalog entries, optionally filtered by category and minimum rating.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        category    query  string  false  "Exact category match"
// @Param        min_rating  query  int     false  "Minimum rating (1-5)"
// @Success      200  {array}   bookResponse
// @Failure      401  {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	filter := ports.ListBooksFilter{Category: c.QueryParam("category")}
	if raw := c.QueryParam("min_rating"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 5 {
			return echo.NewHTTPError(http.StatusBadRequest, "min_rating must be an integer between 1 and 5")
		}
		filter.MinRating = n
	}

	books, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	out := make([]bookResponse, len(books))
	for i, book := range books {
		out[i] = toBookResponse(book)
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single book by id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Create adds a catalog entry.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  bookRequest  true  "Book fields"
// @Success      201  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBookResponse(created))
}

// Update replaces a catalog entry's fields.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Book id"
// @Param        body  body  bookRequest  true  "Book fields"
// @Success      200  {object}  bookResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(updated))
}

// Delete removes a catalog entry.
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toBookInput(req bookRequest) ports.BookInput {
	return ports.BookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Rating:   req.Rating,
	}
}

func toBookResponse(book *domain.Book) bookResponse {
	return bookResponse{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Category: book.Category,
		Rating:   book.Rating,
	}
}

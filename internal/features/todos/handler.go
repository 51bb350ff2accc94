// ================== internal/features/todos/handler.go ==================
package todos

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
	"github.com/xyz-asif/todoapp/internal/pkg/validator"
	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List todos
// @Description Get every todo
// @Tags todos
// @Produce json
// @Success 200 {array} Todo
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [get]
func (h *Handler) List(c *gin.Context) {
	todos, err := h.service.GetAllTodos(c.Request.Context())
	h.respondList(c, todos, err, "Failed to get todos")
}

// Get godoc
// @Summary Get a todo by ID
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	todo, err := h.service.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to get todo")
		return
	}

	response.Success(c, todo)
}

// Create godoc
// @Summary Create a new todo
// @Description Any id in the body is ignored; the store assigns one
// @Tags todos
// @Accept json
// @Produce json
// @Param request body TodoRequest true "Todo creation data"
// @Success 201 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /todos [post]
func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bindTodo(c)
	if !ok {
		return
	}

	todo, err := h.service.CreateTodo(c.Request.Context(), req.ToTodo())
	if err != nil {
		h.fail(c, err, "Failed to create todo")
		return
	}

	response.Created(c, todo)
}

// Update godoc
// @Summary Replace a todo
// @Description Overwrites title, description, completed, priority, category and dueDate
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body TodoRequest true "Todo update data"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	req, ok := h.bindTodo(c)
	if !ok {
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), id, req.ToTodo())
	if err != nil {
		h.fail(c, err, "Failed to update todo")
		return
	}

	response.Success(c, todo)
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path int true "Todo ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTodo(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete todo")
		return
	}

	response.NoContent(c)
}

// Toggle godoc
// @Summary Toggle completion
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} Todo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id}/toggle [patch]
func (h *Handler) Toggle(c *gin.Context) {
	id, ok := h.todoID(c)
	if !ok {
		return
	}

	todo, err := h.service.ToggleComplete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to toggle todo")
		return
	}

	response.Success(c, todo)
}

// Completed godoc
// @Summary List completed todos
// @Tags todos
// @Produce json
// @Success 200 {array} Todo
// @Router /todos/completed [get]
func (h *Handler) Completed(c *gin.Context) {
	todos, err := h.service.GetCompletedTodos(c.Request.Context())
	h.respondList(c, todos, err, "Failed to get completed todos")
}

// Incomplete godoc
// @Summary List incomplete todos
// @Tags todos
// @Produce json
// @Success 200 {array} Todo
// @Router /todos/incomplete [get]
func (h *Handler) Incomplete(c *gin.Context) {
	todos, err := h.service.GetIncompleteTodos(c.Request.Context())
	h.respondList(c, todos, err, "Failed to get incomplete todos")
}

// Search godoc
// @Summary Search todos by title
// @Description Case-insensitive substring match on the title
// @Tags todos
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {array} Todo
// @Failure 400 {object} response.ErrorResponse
// @Router /todos/search [get]
func (h *Handler) Search(c *gin.Context) {
	term, ok := c.GetQuery("q")
	if !ok {
		response.BadRequest(c, "Query parameter q is required", "MISSING_QUERY")
		return
	}

	todos, err := h.service.SearchTodosByTitle(c.Request.Context(), term)
	h.respondList(c, todos, err, "Failed to search todos")
}

// ByCategory godoc
// @Summary List todos in a category
// @Tags todos
// @Produce json
// @Param category path string true "Category (exact match)"
// @Success 200 {array} Todo
// @Router /todos/category/{category} [get]
func (h *Handler) ByCategory(c *gin.Context) {
	// catch-all param so categories may contain '/'
	category := strings.TrimPrefix(c.Param("category"), "/")

	todos, err := h.service.GetTodosByCategory(c.Request.Context(), category)
	h.respondList(c, todos, err, "Failed to get todos by category")
}

// ByPriority godoc
// @Summary List todos with a priority
// @Tags todos
// @Produce json
// @Param priority path string true "Priority" Enums(LOW, MEDIUM, HIGH)
// @Success 200 {array} Todo
// @Failure 400 {object} response.ErrorResponse
// @Router /todos/priority/{priority} [get]
func (h *Handler) ByPriority(c *gin.Context) {
	priority, err := ParsePriority(c.Param("priority"))
	if err != nil {
		response.ValidationFailed(c, "priority must be one of LOW, MEDIUM, HIGH")
		return
	}

	todos, err := h.service.GetTodosByPriority(c.Request.Context(), priority)
	h.respondList(c, todos, err, "Failed to get todos by priority")
}

// Overdue godoc
// @Summary List overdue todos
// @Description Incomplete todos whose due date is before today
// @Tags todos
// @Produce json
// @Success 200 {array} Todo
// @Router /todos/overdue [get]
func (h *Handler) Overdue(c *gin.Context) {
	todos, err := h.service.GetOverdueTodos(c.Request.Context())
	h.respondList(c, todos, err, "Failed to get overdue todos")
}

// Categories godoc
// @Summary List categories
// @Description Distinct non-empty categories, sorted
// @Tags todos
// @Produce json
// @Success 200 {array} string
// @Router /todos/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.service.GetAllCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to get categories")
		return
	}

	response.Success(c, categories)
}

// Stats godoc
// @Summary Todo counters
// @Tags todos
// @Produce json
// @Success 200 {object} Stats
// @Router /todos/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to get stats")
		return
	}

	response.Success(c, stats)
}

func (h *Handler) todoID(c *gin.Context) (int64, bool) {
	id, err := ParseTodoID(c.Param("id"))
	if err != nil {
		response.InvalidID(c, TranslateTodoError(err))
		return 0, false
	}
	return id, true
}

func (h *Handler) bindTodo(c *gin.Context) (*TodoRequest, bool) {
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validator.IsValidationError(err) {
			response.ValidationFailed(c, validator.Message(err))
			return nil, false
		}
		response.BindJSONError(c, err)
		return nil, false
	}

	if err := ValidateTodoRequest(&req); err != nil {
		response.ValidationFailed(c, TranslateTodoError(err))
		return nil, false
	}

	return &req, true
}

func (h *Handler) respondList(c *gin.Context, todos []Todo, err error, message string) {
	if err != nil {
		h.fail(c, err, message)
		return
	}
	response.Success(c, todos)
}

// fail maps service errors onto HTTP responses. Anything that is not a
// known domain error is a storage failure and surfaces as 500.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.ResourceNotFound(c, TranslateTodoError(err))
	case errors.Is(err, apperrors.ErrValidation):
		response.ValidationFailed(c, TranslateTodoError(err))
	default:
		logger.Errorw(message, "error", err, "path", c.Request.URL.Path)
		response.DatabaseError(c, message)
	}
}

// List HTTP handlers.
//
// This file exposes the REST endpoints for lists and their items:
//   - GET    /lists                (all lists)
//   - POST   /lists                (create list)
//   - GET    /lists/{id}           (single list)
//   - GET    /list/{id}            (items of a list)
//   - POST   /list/{id}            (add item)
//   - DELETE /list/{id}/{itemId}   (remove item)
//
// Handlers are transport-thin: they extract path and body parameters, call
// exactly one service operation, and serialize the result. No validation is
// applied beyond what the database enforces.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// ListService defines the operations consumed by the list handlers.
//
// Implementations acquire a pooled connection per call and must honor the
// provided context for cancellation.
type ListService interface {
	// All returns every list.
	All(ctx context.Context) ([]domain.List, error)
	// Get returns one list or a not-found error.
	Get(ctx context.Context, id int64) (*domain.List, error)
	// Create inserts a list.
	Create(ctx context.Context, name string) error
	// Items returns the items of a list, removed ones last.
	Items(ctx context.Context, listID int64) ([]domain.ListItem, error)
	// AddItem inserts an item into a list.
	AddItem(ctx context.Context, listID int64, name string) error
	// RemoveItem soft-deletes an item of a list.
	RemoveItem(ctx context.Context, listID, itemID int64) error
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	lists ListService
}

// New constructs Handlers bound to the given service.
func New(lists ListService) *Handlers {
	return &Handlers{lists: lists}
}

//
// DTOs
//

// NameRequest is the JSON payload for creating a list or adding an item.
// The name field must be present; any string, including "", is accepted.
type NameRequest struct {
	Name *string `json:"name" binding:"required" example:"groceries"`
}

// CreateListResponse echoes the created list's name.
type CreateListResponse struct {
	Name string `json:"name" example:"groceries"`
	Foo  string `json:"foo"  example:""`
}

//
// Helpers
//

// pathID parses the named path parameter as a list/item id. On failure it
// writes a 404 envelope (no resource can match) and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, name+" must be an integer")
		return 0, false
	}
	return id, true
}

// bindName decodes a NameRequest body, writing a 400 envelope on failure.
func bindName(c *gin.Context) (string, bool) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: name is required")
		return "", false
	}
	return *req.Name, true
}

//
// Handlers
//

// GetAllLists godoc
// @ID          getAllLists
// @Summary     List all lists
// @Tags        Lists
// @Produce     json
// @Success     200  {array}   domain.List
// @Failure     500  {string}  string  "Database failure (pool errors carry the cause)"
// @Router      /lists [get]
func (h *Handlers) GetAllLists(c *gin.Context) {
	lists, err := h.lists.All(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, lists)
}

// CreateList godoc
// @ID          createList
// @Summary     Create a list
// @Description Inserts a list with a server-assigned id and echoes its name.
// @Tags        Lists
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.NameRequest  true  "List name"
// @Success     200   {object}  handlers.CreateListResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     500   {string}  string  "Database failure"
// @Router      /lists [post]
func (h *Handlers) CreateList(c *gin.Context) {
	name, good := bindName(c)
	if !good {
		return
	}
	if err := h.lists.Create(c.Request.Context(), name); err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, CreateListResponse{Name: name, Foo: ""})
}

// GetList godoc
// @ID          getList
// @Summary     Get a list
// @Tags        Lists
// @Produce     json
// @Param       id   path      int  true  "List ID"  example(101)
// @Success     200  {object}  domain.List
// @Failure     404  {string}  string  "List not found (empty body)"
// @Failure     500  {string}  string  "Database failure"
// @Router      /lists/{id} [get]
func (h *Handlers) GetList(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	l, err := h.lists.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// GetListItems godoc
// @ID          getListItems
// @Summary     List the items of a list
// @Description Returns live items first, then removed items marked deleted.
// @Tags        Items
// @Produce     json
// @Param       id   path     int  true  "List ID"  example(101)
// @Success     200  {array}  domain.ListItem
// @Failure     500  {string} string  "Database failure"
// @Router      /list/{id} [get]
func (h *Handlers) GetListItems(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	items, err := h.lists.Items(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// AddItem godoc
// @ID          addItem
// @Summary     Add an item to a list
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id    path     int                   true  "List ID"  example(101)
// @Param       body  body     handlers.NameRequest  true  "Item name"
// @Success     200   {string} string  "Empty JSON string"
// @Failure     400   {object} handlers.ErrorResponse  "Malformed body"
// @Failure     500   {string} string  "Database failure (including unknown list)"
// @Router      /list/{id} [post]
func (h *Handlers) AddItem(c *gin.Context) {
	id, good := pathID(c, "id")
	if !good {
		return
	}
	name, good := bindName(c)
	if !good {
		return
	}
	if err := h.lists.AddItem(c.Request.Context(), id, name); err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, "")
}

// RemoveItem godoc
// @ID          removeItem
// @Summary     Remove an item from a list
// @Description Marks the item deleted. Removing an unknown item succeeds.
// @Tags        Items
// @Produce     json
// @Param       id      path     int  true  "List ID"  example(101)
// @Param       itemId  path     int  true  "Item ID"  example(101)
// @Success     200     {string} string  "Empty JSON string"
// @Failure     500     {string} string  "Database failure"
// @Router      /list/{id}/{itemId} [delete]
func (h *Handlers) RemoveItem(c *gin.Context) {
	listID, good := pathID(c, "id")
	if !good {
		return
	}
	itemID, good := pathID(c, "itemId")
	if !good {
		return
	}
	if err := h.lists.RemoveItem(c.Request.Context(), listID, itemID); err != nil {
		renderError(c, err)
		return
	}
	ok(c, http.StatusOK, "")
}

package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maggiehq/ledger/internal/model"
)

// NewEngine mounts the registry under /admin. Every route requires a
// bearer token signed with secret.
func NewEngine(registry map[string]Resource, secret string) *gin.Engine {
	e := gin.New()
	e.Use(gin.Recovery())

	g := e.Group("/admin", RequireToken(secret))
	g.GET("/:resource", listHandler(registry))
	g.POST("/:resource", createHandler(registry))
	g.GET("/:resource/:id", getHandler(registry))
	g.PUT("/:resource/:id", updateHandler(registry))
	g.DELETE("/:resource/:id", deleteHandler(registry))
	return e
}

func listHandler(registry map[string]Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := registry[c.Param("resource")]
		if !ok || res.List == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
		items, total, err := res.List(c.Request.Context(), page, pageSize)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page})
	}
}

func createHandler(registry map[string]Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := registry[c.Param("resource")]
		if !ok || res.Create == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
			return
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		created, err := res.Create(c.Request.Context(), body)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func getHandler(registry map[string]Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, id, ok := resolve(c, registry)
		if !ok || res.Get == nil {
			return
		}
		item, err := res.Get(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func updateHandler(registry map[string]Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, id, ok := resolve(c, registry)
		if !ok {
			return
		}
		if res.Update == nil {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "resource is not editable"})
			return
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		updated, err := res.Update(c.Request.Context(), id, body)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteHandler(registry map[string]Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, id, ok := resolve(c, registry)
		if !ok || res.Delete == nil {
			return
		}
		if err := res.Delete(c.Request.Context(), id); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func resolve(c *gin.Context, registry map[string]Resource) (Resource, int64, bool) {
	res, ok := registry[c.Param("resource")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
		return Resource{}, 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return Resource{}, 0, false
	}
	return res, id, true
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrRestricted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

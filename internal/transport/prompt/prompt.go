package prompt

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
	"github.com/alanyang/promptvault/internal/domain/view"
	"github.com/alanyang/promptvault/internal/interchange"
	"github.com/alanyang/promptvault/internal/service/library"
)

// Register mounts the prompt library REST endpoints on the given group.
// [SRP] HTTP handlers only — collection logic lives in service/library,
// view computation in domain/view, file codecs in interchange.
func Register(rg *gin.RouterGroup, svc *library.Service) {
	rg.GET("", listPrompts(svc))
	rg.GET("/categories", listCategories(svc))
	rg.GET("/export", exportPrompts(svc))
	rg.POST("", createPrompt(svc))
	rg.POST("/bulk-delete", bulkDelete(svc))
	rg.POST("/import", importPrompts(svc))
	rg.GET("/:id", getPrompt(svc))
	rg.PATCH("/:id", updatePrompt(svc))
	rg.DELETE("/:id", deletePrompt(svc))
}

// listPrompts returns the derived view: filtered by search and category,
// ordered by the sort key. The stored collection is never mutated.
func listPrompts(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := view.Query{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Sort:     view.ParseOption(c.Query("sort")),
		}
		c.JSON(http.StatusOK, view.Apply(svc.List(c.Request.Context()), q))
	}
}

func listCategories(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, view.Categories(svc.List(c.Request.Context())))
	}
}

func getPrompt(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		p, ok := svc.Get(c.Request.Context(), id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// Pointer fields distinguish "absent" from "empty": the keys must be
// present, but empty strings are accepted (what to require of the user is
// the client's concern).
type createPromptReq struct {
	Title    *string  `json:"title" binding:"required"`
	Content  *string  `json:"content" binding:"required"`
	Category *string  `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

func createPrompt(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPromptReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p := svc.Create(c.Request.Context(), domainprompt.Fields{
			Title:    *req.Title,
			Content:  *req.Content,
			Category: *req.Category,
			Tags:     req.Tags,
		})
		c.JSON(http.StatusCreated, p)
	}
}

type updatePromptReq struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
}

func updatePrompt(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req updatePromptReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, ok := svc.Update(c.Request.Context(), id, domainprompt.Update{
			Title:    req.Title,
			Content:  req.Content,
			Category: req.Category,
			Tags:     req.Tags,
		})
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "prompt not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deletePrompt always answers 204 — deleting an absent id is a no-op, not
// an error.
func deletePrompt(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		svc.Delete(c.Request.Context(), id)
		c.Status(http.StatusNoContent)
	}
}

type bulkDeleteReq struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// bulkDelete removes all listed ids in one atomic update and reports the
// count, which the client interpolates into its confirmation UI.
func bulkDelete(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkDeleteReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		deleted := svc.DeleteMany(c.Request.Context(), req.IDs)
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

// exportPrompts streams the entire collection as a dated JSON download.
func exportPrompts(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := interchange.Filename(time.Now())
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

		if err := interchange.Export(c.Writer, svc.List(c.Request.Context())); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// importPrompts accepts a multipart upload, decodes and validates it, and
// prepends the valid records. A format failure leaves the collection
// untouched; invalid records are skipped and reported.
func importPrompts(svc *library.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
			return
		}
		defer f.Close()

		prompts, skipped, err := interchange.Import(f)
		if err != nil {
			// One generic format failure — unreadable text and a non-array
			// top level land in the same place, and the store is untouched.
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to import prompts: check the file format"})
			return
		}

		imported := svc.ImportPrepend(c.Request.Context(), prompts)
		if skipped == nil {
			skipped = []interchange.RecordError{}
		}
		c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
	}
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolva-app/backend/internal/auth"
	"github.com/tolva-app/backend/internal/httputil"
	"github.com/tolva-app/backend/internal/models"
)

// RegisterDocumentRoutes registers the routes for documents with
// the RouterGroup that is passed.
func RegisterDocumentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetDocuments)
		r.POST("", CreateDocument)
	}

	// Document with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetDocument)
		r.PATCH("/:id", UpdateDocument)
		r.DELETE("/:id", DeleteDocument)
	}

	// Extraction
	{
		r.OPTIONS("/:id/parse", httputil.OptionsPost)
		r.POST("/:id/parse", ParseDocument)
	}
}

// getDocumentResource loads the document from the URI and verifies that it
// belongs to the authenticated user. On failure the error response has
// already been written and ok is false.
func getDocumentResource(c *gin.Context) (models.Document, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidUUID.Error()})
		return models.Document{}, false
	}

	var document models.Document
	err := models.DB.First(&document, "id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Document{}, false
	}

	if document.UserID != auth.UserID(c) {
		c.JSON(http.StatusForbidden, httpError{Error: errNotResourceOwner.Error()})
		return models.Document{}, false
	}

	return document, true
}

// CreateDocument creates a new document for the authenticated user and
// feeds the HOA summary aggregate when the document is an HOA bill.
func CreateDocument(c *gin.Context) {
	var editable DocumentEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	document := editable.model(auth.UserID(c))

	err := models.DB.Create(&document).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = document.SyncHoaSummary()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DocumentResponse{Data: document})
}

// GetDocuments returns the authenticated user's documents, newest
// upload first.
func GetDocuments(c *gin.Context) {
	var documents []models.Document
	err := models.DB.
		Where(&models.Document{UserID: auth.UserID(c)}).
		Order("uploaded_at desc").
		Find(&documents).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentListResponse{Data: documents})
}

// GetDocument returns a single document.
func GetDocument(c *gin.Context) {
	document, ok := getDocumentResource(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: document})
}

// UpdateDocument applies a partial update to a document. Fields absent
// from the request body keep their value, an explicit null clears.
func UpdateDocument(c *gin.Context) {
	document, ok := getDocumentResource(c)
	if !ok {
		return
	}

	setFields, err := httputil.GetBodyFields(c, models.DocumentUpdate{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var update models.DocumentUpdate
	if err = httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = document.Reconcile(update, setFields)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{Data: document})
}

// DeleteDocument deletes a document.
func DeleteDocument(c *gin.Context) {
	document, ok := getDocumentResource(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&document).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

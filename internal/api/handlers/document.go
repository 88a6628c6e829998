package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rahulm-dev/inkwell/internal/api/middleware"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/policy"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/rahulm-dev/inkwell/internal/utils"
	"gorm.io/gorm"
)

const presignExpiry = 15 * time.Minute

// POST /documents/presign
// PresignDocumentUpload godoc
// @Summary Request a presigned upload URL for a content document
// @Description Returns a storage key and a presigned PUT URL; the key is stored on the content item
// @Tags Documents
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/documents/presign [post]
func PresignDocumentUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Filename string `json:"filename"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Filename == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	// Keys are namespaced per upload; path.Base strips any directory
	// components a client tries to smuggle into the filename.
	key := fmt.Sprintf("documents/%s_%s", uuid.New().String(), path.Base(input.Filename))

	url, err := repositories.PresignDocumentUpload(r.Context(), key, presignExpiry)
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to presign upload"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload URL created",
		Data: map[string]any{
			"key":       key,
			"uploadUrl": url,
			"expiresIn": presignExpiry.String(),
		},
	})
}

// GET /contents/{id}/document
// DownloadContentDocument godoc
// @Summary Request a presigned download URL for an item's document
// @Description The item must be in the caller's visible set and carry a document
// @Tags Documents
// @Produce json
// @Param id path string true "Content item id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/contents/{id}/document [get]
func DownloadContentDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	user := middleware.CurrentUser(r)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, utils.NotFoundError("Content item not found"))
		return
	}

	var item models.ContentItem
	err = repositories.DB.Scopes(policy.VisibleTo(user)).Where("id = ?", id).First(&item).Error
	switch err {
	case nil:
		// item found
	case gorm.ErrRecordNotFound:
		utils.WriteError(w, utils.NotFoundError("Content item not found"))
		return
	default:
		utils.WriteError(w, utils.InternalError("Database query failed"))
		return
	}

	if item.Document == "" {
		utils.WriteError(w, utils.NotFoundError("Content item has no document"))
		return
	}

	exists, err := repositories.DocumentExists(r.Context(), item.Document)
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to check document"))
		return
	}
	if !exists {
		utils.WriteError(w, utils.NotFoundError("Document not found in storage"))
		return
	}

	url, err := repositories.PresignDocumentDownload(r.Context(), item.Document, presignExpiry)
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to presign download"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Download URL created",
		Data: map[string]any{
			"downloadUrl": url,
			"expiresIn":   presignExpiry.String(),
		},
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rahulm-dev/inkwell/internal/api/middleware"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/policy"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/rahulm-dev/inkwell/internal/utils"
	"github.com/rahulm-dev/inkwell/internal/validation"
	"gorm.io/gorm"
)

// contentView is the external representation of a ContentItem, with the
// stored comma-joined categories expanded back into a list.
type contentView struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Summary    string    `json:"summary"`
	Categories []string  `json:"categories"`
	Document   string    `json:"document"`
	Author     uuid.UUID `json:"author"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

func viewOf(item *models.ContentItem) contentView {
	return contentView{
		ID:         item.ID,
		Title:      item.Title,
		Body:       item.Body,
		Summary:    item.Summary,
		Categories: item.CategoryList(),
		Document:   item.Document,
		Author:     item.AuthorID,
		CreatedAt:  item.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  item.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func viewsOf(items []models.ContentItem) []contentView {
	views := make([]contentView, 0, len(items))
	for i := range items {
		views = append(views, viewOf(&items[i]))
	}
	return views
}

// GET|POST /contents
// ContentCollection godoc
// @Summary List visible content items or create a new one
// @Description GET returns the caller's visible set (admins see all); POST creates an item owned by the caller
// @Tags Contents
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/contents [get]
func ContentCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listContents(w, r)
	case http.MethodPost:
		createContent(w, r)
	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}

func listContents(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	var items []models.ContentItem
	if err := repositories.DB.Scopes(policy.VisibleTo(user)).Order("created_at").Find(&items).Error; err != nil {
		utils.WriteError(w, utils.InternalError("Database query failed"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Content items retrieved",
		Data:    viewsOf(items),
	})
}

func createContent(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	var input validation.ContentInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if errs := validation.Content(input); errs.Any() {
		utils.WriteError(w, utils.ValidationError(errs))
		return
	}

	// The author is always the caller; input.Author is never read.
	item := models.ContentItem{
		Title:    input.Title,
		Body:     input.Body,
		Summary:  input.Summary,
		Document: input.Document,
		AuthorID: user.ID,
	}
	item.SetCategories(input.Categories)

	if err := repositories.DB.Create(&item).Error; err != nil {
		utils.WriteError(w, utils.InternalError("Database insert failed"))
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Content item created",
		Data:    viewOf(&item),
	})
}

// GET|PUT|DELETE /contents/{id}
// ContentDetail godoc
// @Summary Retrieve, update or delete one content item
// @Description Operates only on the caller's visible set; foreign ids return 404
// @Tags Contents
// @Accept json
// @Produce json
// @Param id path string true "Content item id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/contents/{id} [get]
func ContentDetail(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, utils.NotFoundError("Content item not found"))
		return
	}

	// Lookup happens inside the policy scope, so an item the caller may
	// not read is indistinguishable from one that does not exist.
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

	switch r.Method {
	case http.MethodGet:
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Content item retrieved",
			Data:    viewOf(&item),
		})

	case http.MethodPut:
		if !policy.CanAccess(user, &item, policy.ActionWrite) {
			utils.WriteError(w, utils.NotFoundError("Content item not found"))
			return
		}
		updateContent(w, r, &item)

	case http.MethodDelete:
		if !policy.CanAccess(user, &item, policy.ActionDelete) {
			utils.WriteError(w, utils.NotFoundError("Content item not found"))
			return
		}
		if err := repositories.DB.Delete(&item).Error; err != nil {
			utils.WriteError(w, utils.InternalError("Database delete failed"))
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}

func updateContent(w http.ResponseWriter, r *http.Request, item *models.ContentItem) {
	var input validation.ContentInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	// Omitted text fields keep their stored values; the category list is
	// always replaced wholesale, matching the create representation.
	if input.Title == "" {
		input.Title = item.Title
	}
	if input.Body == "" {
		input.Body = item.Body
	}
	if input.Summary == "" {
		input.Summary = item.Summary
	}
	if input.Document == "" {
		input.Document = item.Document
	}

	if errs := validation.Content(input); errs.Any() {
		utils.WriteError(w, utils.ValidationError(errs))
		return
	}

	item.Title = input.Title
	item.Body = input.Body
	item.Summary = input.Summary
	item.Document = input.Document
	item.SetCategories(input.Categories)

	if err := repositories.DB.Save(item).Error; err != nil {
		utils.WriteError(w, utils.InternalError("Database update failed"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Content item updated",
		Data:    viewOf(item),
	})
}

// likeEscaper neutralizes LIKE metacharacters so a query matches as a
// literal substring, never as a wildcard pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// GET /contents/search?query=
// SearchContents godoc
// @Summary Keyword search over content items
// @Description Case-insensitive substring match on title, body, summary and categories
// @Tags Contents
// @Produce json
// @Param query query string true "Search text (max 100 chars)"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/contents/search [get]
func SearchContents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	query := r.URL.Query().Get("query")
	if errs := validation.SearchQuery(query); errs.Any() {
		utils.WriteError(w, utils.ValidationError(errs))
		return
	}

	// Search is deliberately global rather than scoped to the caller's
	// visible set: it is a discovery surface, the list view is the
	// management surface.
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var items []models.ContentItem
	err := repositories.DB.
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(body) LIKE ? ESCAPE '\' OR LOWER(summary) LIKE ? ESCAPE '\' OR LOWER(categories) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		utils.WriteError(w, utils.InternalError("Database query failed"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Search results retrieved",
		Data:    viewsOf(items),
	})
}

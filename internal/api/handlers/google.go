package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rahulm-dev/inkwell/internal/api/services"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/rahulm-dev/inkwell/internal/utils"
	"gorm.io/gorm"
)

// GET /auth/google/login
//
// Redirects to the Google consent page. The callback finds or creates the
// account, so there is no separate register flow.
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := utils.GenerateSecureToken(utils.OAuthStateBytes)
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	url := services.GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	if code == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Missing authorization code",
		})
		return
	}

	token, err := services.GoogleOauthConfig.Exchange(r.Context(), code)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Code exchange failed",
		})
		return
	}

	client := services.GoogleOauthConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to get user info"))
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil || googleUser.Email == "" {
		utils.WriteError(w, utils.InternalError("Failed to parse user info"))
		return
	}

	var user models.User
	err = repositories.DB.Where("email = ?", googleUser.Email).First(&user).Error
	switch err {
	case nil:
		// existing account
	case gorm.ErrRecordNotFound:
		// First sign-in creates an Author account. Phone and pincode are
		// only enforced on the password registration path; OAuth profiles
		// do not carry them.
		user = models.User{
			Username: googleUser.Email,
			Email:    googleUser.Email,
			FullName: googleUser.Name,
			Password: "", // Google-authenticated
			Role:     models.RoleAuthor,
			Active:   true,
		}
		if err := repositories.DB.Create(&user).Error; err != nil {
			utils.WriteError(w, utils.InternalError("Failed to create user"))
			return
		}
	default:
		utils.WriteError(w, utils.InternalError("Database error"))
		return
	}

	if !user.Active {
		utils.WriteError(w, utils.AuthenticationError("Account disabled, contact admin"))
		return
	}

	tokens, err := issueTokens(user.ID.String())
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to create tokens"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data: map[string]any{
			"email":    user.Email,
			"username": user.Username,
			"tokens":   tokens,
		},
	})
}

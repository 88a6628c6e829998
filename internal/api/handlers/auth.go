package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rahulm-dev/inkwell/internal/auth"
	"github.com/rahulm-dev/inkwell/internal/config"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/rahulm-dev/inkwell/internal/utils"
	"github.com/rahulm-dev/inkwell/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// POST /auth/register
// RegisterUser godoc
// @Summary Register a new account
// @Description Creates an Author-role user after validating every profile field
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body validation.RegistrationInput true "Registration payload"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/register [post]
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input validation.RegistrationInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if errs := validation.Registration(input); errs.Any() {
		utils.WriteError(w, utils.ValidationError(errs))
		return
	}

	// Uniqueness checks ahead of the insert give field-level messages
	// instead of a raw constraint violation.
	var existing models.User
	if err := repositories.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		utils.WriteError(w, utils.ValidationError(map[string]string{
			"username": "Username is already taken",
		}))
		return
	}

	err := repositories.DB.Where("email = ?", input.Email).First(&existing).Error

	switch err {
	case nil: // email exists
		utils.WriteError(w, utils.ValidationError(map[string]string{
			"email": "User already exists with this email",
		}))
		return

	case gorm.ErrRecordNotFound: // new user, create account
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			utils.WriteError(w, utils.InternalError("Failed to hash password"))
			return
		}

		newUser := models.User{
			Username: input.Username,
			Email:    input.Email,
			Password: string(hashedPassword),
			FullName: input.FullName,
			Phone:    input.Phone,
			Address:  input.Address,
			City:     input.City,
			State:    input.State,
			Country:  input.Country,
			Pincode:  input.Pincode,
			Role:     models.RoleAuthor,
			Active:   true,
		}

		if createErr := repositories.DB.Create(&newUser).Error; createErr != nil {
			utils.WriteError(w, utils.InternalError("Database insert failed"))
			return
		}

		utils.JSONResponse(w, http.StatusCreated, utils.Payload{
			Success: true,
			Message: "User registered successfully",
			Data:    newUser,
		})

	default: // some other DB error
		utils.WriteError(w, utils.InternalError("Database query failed"))
	}
}

// POST /auth/login
// LoginUser godoc
// @Summary Log in with email and password
// @Description Returns an access/refresh token pair on success
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/login [post]
func LoginUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	var user models.User
	err := repositories.DB.Where("email = ?", input.Email).First(&user).Error
	switch err {
	case nil:
		// user found
	case gorm.ErrRecordNotFound:
		utils.WriteError(w, utils.AuthenticationError("Invalid credentials, try again"))
		return
	default:
		utils.WriteError(w, utils.InternalError("Database error"))
		return
	}

	// The password check runs before the active check so a disabled
	// account cannot be probed with arbitrary passwords.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.WriteError(w, utils.AuthenticationError("Invalid credentials, try again"))
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

// POST /auth/token/refresh
// RefreshToken godoc
// @Summary Exchange a refresh token for a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/auth/token/refresh [post]
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Refresh string `json:"refresh"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Refresh == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	secret := []byte(config.Envs.JWTSecret)
	userID, err := auth.ParseRefreshToken(input.Refresh, secret)
	if err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid or expired refresh token",
		})
		return
	}

	access, err := auth.GenerateAccessToken(userID, secret, config.Envs.AccessTTL)
	if err != nil {
		utils.WriteError(w, utils.InternalError("Failed to create token"))
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Token refreshed",
		Data: map[string]any{
			"access": access,
		},
	})
}

// POST /api/v1/auth/logout
//
// Tokens are stateless, so logout is a client-side discard; the endpoint
// exists so clients have a uniform call to end a session.
func Logout(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

func issueTokens(userID string) (auth.TokenPair, error) {
	return auth.GenerateTokenPair(
		userID,
		[]byte(config.Envs.JWTSecret),
		config.Envs.AccessTTL,
		config.Envs.RefreshTTL,
	)
}

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yagnamodi22/book-by-truf-backend/config"
	"github.com/yagnamodi22/book-by-truf-backend/internal/middleware"
	"github.com/yagnamodi22/book-by-truf-backend/internal/user"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/googleauth"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/responses"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/token"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/utils"
	"github.com/yagnamodi22/book-by-truf-backend/pkg/validator"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthController struct {
	users  user.UserRepository
	config *config.Config
	client *http.Client
}

func NewAuthController(users user.UserRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		users:  users,
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// @Summary      Register a new account
// @Description  Passwords must be at least 8 characters with an uppercase
// @Description  letter, a lowercase letter, a digit and a special character.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user body RegisterRequest true "Account details"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	if err := utils.ValidatePasswordPolicy(req.Password); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = user.RoleUser
	case user.RoleUser, user.RoleOwner:
		// selectable at registration
	default:
		responses.BadRequest(c, "Role must be USER or OWNER")
		return
	}

	exists, err := ac.users.ExistsByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to register user")
		return
	}
	if exists {
		responses.SendError(c, http.StatusConflict, "Email is already registered")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to register user")
		return
	}

	u := &user.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(req.Email),
		Password:  hashed,
		Phone:     req.Phone,
		Role:      role,
	}
	if err := ac.users.Create(u); err != nil {
		responses.InternalServerError(c, "Failed to register user")
		return
	}

	ac.sendAuthResponse(c, http.StatusCreated, u)
}

// @Summary      Log in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	u, err := ac.users.FindByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to log in")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	ac.sendAuthResponse(c, http.StatusOK, u)
}

// @Summary      Get the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.User
// @Router       /auth/profile [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	u, ok := ac.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update the authenticated user's profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        profile body UpdateProfileRequest true "Profile fields"
// @Security     BearerAuth
// @Success      200 {object} user.User
// @Router       /auth/profile [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	u, ok := ac.currentUser(c)
	if !ok {
		return
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Phone = req.Phone
	if err := ac.users.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Change the authenticated user's password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        passwords body ChangePasswordRequest true "Current and new password"
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/change-password [put]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	u, ok := ac.currentUser(c)
	if !ok {
		return
	}

	if !utils.CheckPassword(u.Password, req.CurrentPassword) {
		responses.Unauthorized(c, "Current password is incorrect")
		return
	}
	if err := utils.ValidatePasswordPolicy(req.NewPassword); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	u.Password = hashed
	if err := ac.users.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}

// @Summary      Validate the bearer token
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /auth/validate [get]
func (ac *AuthController) ValidateToken(c *gin.Context) {
	u, ok := ac.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	})
}

// @Summary      Log out
// @Description  Tokens are stateless; the client discards its copy.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// @Summary      Log in with a Google ID token
// @Description  Verifies the ID token issued by Google sign-in and creates
// @Description  the account on first login.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token body GoogleLoginRequest true "Google ID token"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/google [post]
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": validator.ParseError(err)})
		return
	}

	info, err := googleauth.ValidateIDToken(req.IDToken, ac.config.Google.ClientID)
	if err != nil {
		responses.Unauthorized(c, "Invalid Google ID token")
		return
	}

	u, err := ac.findOrCreateGoogleUser(info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		responses.InternalServerError(c, "Failed to log in with Google")
		return
	}

	ac.sendAuthResponse(c, http.StatusOK, u)
}

// @Summary      Google OAuth redirect callback
// @Description  Exchanges the access token passed as code for the Google
// @Description  profile, issues a token and redirects back to the frontend.
// @Tags         Auth
// @Param        code query string true "Google access token"
// @Success      302
// @Router       /auth/google/callback [get]
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		responses.BadRequest(c, "code query parameter is required")
		return
	}

	info, err := ac.fetchGoogleUserInfo(code)
	if err != nil {
		responses.Unauthorized(c, "Failed to verify Google account")
		return
	}

	u, err := ac.findOrCreateGoogleUser(info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		responses.InternalServerError(c, "Failed to log in with Google")
		return
	}

	signed, err := token.GenerateJWT(u.ID, u.Email, u.Role, ac.config.JWT.Secret, ac.config.JWT.ExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	redirect := fmt.Sprintf("%s/oauth2/callback?token=%s",
		strings.TrimRight(ac.config.App.FrontendURL, "/"), url.QueryEscape(signed))
	c.Redirect(http.StatusFound, redirect)
}

// fetchGoogleUserInfo resolves an access token to the Google profile behind it.
func (ac *AuthController) fetchGoogleUserInfo(accessToken string) (*googleauth.UserInfo, error) {
	resp, err := ac.client.Get(googleUserInfoURL + "?access_token=" + url.QueryEscape(accessToken))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("google rejected the access token")
	}

	var body struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Email == "" {
		return nil, errors.New("google profile has no email")
	}
	return &googleauth.UserInfo{
		Email:      strings.ToLower(body.Email),
		GivenName:  body.GivenName,
		FamilyName: body.FamilyName,
	}, nil
}

// findOrCreateGoogleUser provisions an account on first Google login. The
// stored password is a random string nobody knows, so password login stays
// impossible until the user sets one.
func (ac *AuthController) findOrCreateGoogleUser(email, firstName, lastName string) (*user.User, error) {
	u, err := ac.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	hashed, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}
	u = &user.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hashed,
		Role:      user.RoleUser,
	}
	if err := ac.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (ac *AuthController) sendAuthResponse(c *gin.Context, status int, u *user.User) {
	signed, err := token.GenerateJWT(u.ID, u.Email, u.Role, ac.config.JWT.Secret, ac.config.JWT.ExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}
	c.JSON(status, AuthResponse{
		Token:     signed,
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	})
}

// currentUser loads the authenticated user's row, writing the error response
// itself when that fails.
func (ac *AuthController) currentUser(c *gin.Context) (*user.User, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}
	u, err := ac.users.FindByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load user")
		return nil, false
	}
	if u == nil {
		responses.NotFound(c, "User")
		return nil, false
	}
	return u, true
}

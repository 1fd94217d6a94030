package handlers

import (
	"net/http"

	"ecoroute/internal/models"
	"ecoroute/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username    string              `json:"username" binding:"required"`
	Email       string              `json:"email" binding:"required,email"`
	Password    string              `json:"password" binding:"required"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Picture     string              `json:"picture"`
	Bio         string              `json:"bio"`
	Location    string              `json:"location"`
	Website     string              `json:"website"`
	SocialLinks []models.SocialLink `json:"social_links"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	Username    *string               `json:"username"`
	Email       *string               `json:"email"`
	FirstName   *string               `json:"first_name"`
	LastName    *string               `json:"last_name"`
	Picture     *string               `json:"picture"`
	Bio         *string               `json:"bio"`
	Location    *string               `json:"location"`
	Website     *string               `json:"website"`
	SocialLinks *[]models.SocialLink `json:"social_links"`
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Account payload"
// @Success      201   {object}  map[string]interface{}  "token, user"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	token, user, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Picture:     req.Picture,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		h.respondServiceError(c, "auth_register_failed", err, "username", req.Username)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "token, user"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", req.Email, "err", err)
		}
		h.respondServiceError(c, "auth_login_failed", err, "email", req.Email)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt(userIDKey)
	user, err := h.services.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceError(c, "auth_get_profile_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  profileUpdateRequest  true  "Fields to change"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	userID := c.GetInt(userIDKey)
	user, err := h.services.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Picture:     req.Picture,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		h.respondServiceError(c, "auth_update_profile_failed", err, "userId", userID)
		return
	}
	c.JSON(http.StatusOK, user)
}

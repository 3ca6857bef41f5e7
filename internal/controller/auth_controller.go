package controller

import (
	"bashaway_backend/internal/service"
	"bashaway_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth  *service.AuthService
	Users service.UserRepository
}

func NewAuthController(auth *service.AuthService, users service.UserRepository) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "user details"
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Auth.Register(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.Auth.Login(req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/current [get]
func (c *AuthController) Current(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.Users.FindByID(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req changePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Auth.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

package controller

import (
	"strconv"

	"bashaway_backend/internal/service"
	"bashaway_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) GetAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	users, total, err := c.Users.ListUsers(page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		Docs:      users,
		TotalDocs: total,
		Page:      page,
		Limit:     limit,
	})
}

func (c *UserController) GetByID(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	user, err := c.Users.GetUser(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// UpdateScore recomputes one user's total from their graded submissions.
func (c *UserController) UpdateScore(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	score, err := c.Users.RecomputeUserScore(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"score": score})
}

// UpdateAllScores recomputes every user's total.
func (c *UserController) UpdateAllScores(ctx *gin.Context) {
	updated, err := c.Users.RecomputeAllScores(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"updated": updated})
}

package controller

import (
	"strconv"

	"bashaway_backend/internal/service"
	"bashaway_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Submissions *service.SubmissionService
}

func NewSubmissionController(submissions *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Submissions: submissions}
}

// @Summary Submit an answer to a question
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Submissions.CreateSubmission(req, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// @Summary List submissions
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *SubmissionController) GetAll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	var questionID uint
	if v := ctx.Query("question"); v != "" {
		id, err := util.ParseID(v)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		questionID = id
	}

	submissions, total, err := c.Submissions.ListSubmissions(user, questionID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		Docs:      submissions,
		TotalDocs: total,
		Page:      page,
		Limit:     limit,
	})
}

// @Summary Grade a submission
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /api/submissions/{id}/grade [put]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Submissions.GradeSubmission(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

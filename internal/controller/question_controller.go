package controller

import (
	"path/filepath"
	"strconv"

	"bashaway_backend/internal/repository"
	"bashaway_backend/internal/service"
	"bashaway_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionController struct {
	Questions *service.QuestionService
	Storage   *service.StorageService
}

func NewQuestionController(questions *service.QuestionService, storage *service.StorageService) *QuestionController {
	return &QuestionController{Questions: questions, Storage: storage}
}

// @Summary List visible questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page number; omit for the full list"
// @Param limit query int false "page size"
// @Param name query string false "exact name filter"
// @Param search query string false "name substring filter"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) GetAll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	query := repository.QuestionQuery{
		Name:   ctx.Query("name"),
		Search: ctx.Query("search"),
	}
	if v := ctx.Query("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			query.Page = page
		}
	}
	if v := ctx.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			query.Limit = limit
		}
	}
	switch ctx.Query("sort") {
	case "created_at":
		query.Sort = "created_at ASC"
	case "-created_at", "":
		// default, newest first
	case "name":
		query.Sort = "name ASC"
	case "-name":
		query.Sort = "name DESC"
	}

	questions, page, err := c.Questions.RetrieveAllQuestions(user, query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	// The response shape mirrors the repository's: a plain list when no page
	// was requested, the paginated envelope otherwise.
	if page == nil {
		util.Success(ctx, questions)
		return
	}
	util.Success(ctx, util.PageResponse{
		Docs:      questions,
		TotalDocs: page.TotalDocs,
		Page:      page.Page,
		Limit:     page.Limit,
	})
}

// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Questions.CreateQuestion(req, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary Fetch one question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetByID(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	question, err := c.Questions.RetrieveQuestion(id, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

func (c *QuestionController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Questions.UpdateQuestionByID(id, req, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

func (c *QuestionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	deleted, err := c.Questions.DeleteQuestion(id, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}

// @Summary Attach a file to a question
// @Tags questions
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Router /api/questions/{id}/attachment [post]
func (c *QuestionController) UploadAttachment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	defer file.Close()

	filename := "questions/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	question, err := c.Questions.UpdateQuestionAttachment(id, url, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

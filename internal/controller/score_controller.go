package controller

import (
	"strconv"

	"bashaway_backend/internal/service"
	"bashaway_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	Scores *service.ScoreService
}

func NewScoreController(scores *service.ScoreService) *ScoreController {
	return &ScoreController{Scores: scores}
}

// @Summary Score leaderboard
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of entries"
// @Success 200 {object} util.Response
// @Router /api/scores/leaderboard [get]
func (c *ScoreController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "25"))

	entries, err := c.Scores.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	totalQuestions, err := c.Scores.EnabledQuestionCount()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"entries":         entries,
		"total_questions": totalQuestions,
	})
}

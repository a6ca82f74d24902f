package controller

import (
	"errors"
	"net/http"
	"strconv"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 获取题目列表
// @Tags 题库
// @Produce json
// @Success 200 {array} model.Question
// @Failure 500 {object} util.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, "Failed to fetch questions", err)
		return
	}

	ctx.JSON(http.StatusOK, questions)
}

// @Summary 创建题目
// @Tags 题库
// @Accept json
// @Produce json
// @Param body body service.QuestionRequest true "题目信息"
// @Success 201 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields")
		return
	}

	question, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrMissingFields) {
			util.BadRequest(ctx, "Missing required fields")
			return
		}
		util.LogInternalError(ctx, "Failed to add question", err)
		return
	}

	ctx.JSON(http.StatusCreated, question)
}

// @Summary 删除题目
// @Description 删除不存在的 id 同样返回成功
// @Tags 题库
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		util.BadRequest(ctx, "Invalid question ID")
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), uint(id)); err != nil {
		util.LogInternalError(ctx, "Failed to delete question", err)
		return
	}

	ctx.JSON(http.StatusOK, util.MessageResponse{Message: "Question deleted successfully"})
}

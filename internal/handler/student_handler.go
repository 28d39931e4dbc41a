// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/service"
	"edu-counsel-go/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StudentHandler 负责处理学生档案与对话相关的 API 请求。
type StudentHandler struct {
	studentService service.StudentService
	chatService    service.ChatService
}

// NewStudentHandler 创建一个新的 StudentHandler 实例。
func NewStudentHandler(studentService service.StudentService, chatService service.ChatService) *StudentHandler {
	return &StudentHandler{studentService: studentService, chatService: chatService}
}

// Create 处理创建学生档案的请求。
func (h *StudentHandler) Create(c *gin.Context) {
	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		log.Warnf("CreateStudent: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	created, err := h.studentService.Create(&student)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProgramLevel) || errors.Is(err, service.ErrNegativeBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("CreateStudent: Failed to create student", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建学生档案失败"})
		return
	}

	log.Infof("Student '%s' created successfully", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Get 返回单个学生档案。
func (h *StudentHandler) Get(c *gin.Context) {
	studentID := c.Param("id")
	student, err := h.studentService.GetByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学生不存在"})
			return
		}
		log.Errorf("GetStudent: Failed to load student %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取学生档案失败"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// Update 处理学生档案的部分更新，只覆盖请求中出现的字段。
func (h *StudentHandler) Update(c *gin.Context) {
	studentID := c.Param("id")

	var update model.StudentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Warnf("UpdateStudent: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	student, err := h.studentService.Update(studentID, &update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学生不存在"})
			return
		}
		if errors.Is(err, service.ErrInvalidProgramLevel) || errors.Is(err, service.ErrNegativeBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("UpdateStudent: Failed to update student %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新学生档案失败"})
		return
	}

	log.Infof("Student '%s' updated successfully", studentID)
	c.JSON(http.StatusOK, student)
}

// GetConversation 返回学生的完整对话记录。
func (h *StudentHandler) GetConversation(c *gin.Context) {
	studentID := c.Param("id")
	turns, err := h.studentService.GetConversation(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学生不存在"})
			return
		}
		log.Errorf("GetConversation: Failed for student %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取对话记录失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": turns})
}

// ConverseRequest 定义了对话 API 的请求体结构。
type ConverseRequest struct {
	Text string `json:"text" binding:"required"`
}

// Converse 处理一次对话交互。
// 网关调用失败时仍返回 200，由响应体中的 success 字段表达结果。
func (h *StudentHandler) Converse(c *gin.Context) {
	studentID := c.Param("id")

	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Converse: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载：text 不能为空"})
		return
	}

	result, err := h.chatService.HandleTurn(c.Request.Context(), studentID, req.Text)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学生不存在"})
			return
		}
		log.Errorf("Converse: Failed for student %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理对话失败"})
		return
	}

	if !result.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Failed to process conversation",
			"error":   result.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Conversation processed successfully",
		"response": result.Response,
	})
}

// Analyze 处理结构化信息提取请求。
// 旧客户端的兼容入口，对话路径已由 Converse 取代。
func (h *StudentHandler) Analyze(c *gin.Context) {
	studentID := c.Param("id")

	var req ConverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Analyze: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载：text 不能为空"})
		return
	}

	result, err := h.chatService.AnalyzeInput(c.Request.Context(), studentID, req.Text)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "学生不存在"})
			return
		}
		log.Errorf("Analyze: Failed for student %s: %v", studentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理输入失败"})
		return
	}

	if !result.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Failed to process input",
			"error":   result.Error,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Input processed successfully",
		"extracted_data": result.ExtractedData,
	})
}

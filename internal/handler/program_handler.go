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

// ProgramHandler 负责处理项目管理相关的 API 请求。
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler 创建一个新的 ProgramHandler 实例。
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// Create 处理创建项目的请求。
func (h *ProgramHandler) Create(c *gin.Context) {
	var program model.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		log.Warnf("CreateProgram: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	created, err := h.programService.Create(&program)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProgramLevel) || errors.Is(err, service.ErrNegativeBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("CreateProgram: Failed to create program", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建项目失败"})
		return
	}

	log.Infof("Program '%s' created successfully", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Get 返回单个项目。
func (h *ProgramHandler) Get(c *gin.Context) {
	programID := c.Param("id")
	program, err := h.programService.GetByID(programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
			return
		}
		log.Errorf("GetProgram: Failed to load program %s: %v", programID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取项目失败"})
		return
	}
	c.JSON(http.StatusOK, program)
}

// GetAll 返回全部项目列表。
func (h *ProgramHandler) GetAll(c *gin.Context) {
	programs, err := h.programService.GetAll()
	if err != nil {
		log.Error("GetAllPrograms: Failed to load programs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取项目列表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

// Update 处理项目的部分更新。
func (h *ProgramHandler) Update(c *gin.Context) {
	programID := c.Param("id")

	var update model.ProgramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Warnf("UpdateProgram: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求负载"})
		return
	}

	program, err := h.programService.Update(programID, &update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
			return
		}
		if errors.Is(err, service.ErrInvalidProgramLevel) || errors.Is(err, service.ErrNegativeBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("UpdateProgram: Failed to update program %s: %v", programID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新项目失败"})
		return
	}

	log.Infof("Program '%s' updated successfully", programID)
	c.JSON(http.StatusOK, program)
}

// Delete 删除一个项目。
func (h *ProgramHandler) Delete(c *gin.Context) {
	programID := c.Param("id")
	if err := h.programService.Delete(programID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
			return
		}
		log.Errorf("DeleteProgram: Failed to delete program %s: %v", programID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除项目失败"})
		return
	}

	log.Infof("Program '%s' deleted successfully", programID)
	c.Status(http.StatusNoContent)
}

// UploadBrochure 处理项目宣传册的 multipart 上传。
func (h *ProgramHandler) UploadBrochure(c *gin.Context) {
	programID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warnf("UploadBrochure: Missing file in request, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求：缺少 file 字段"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("UploadBrochure: Failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	program, err := h.programService.AttachBrochure(c.Request.Context(), programID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
			return
		}
		log.Errorf("UploadBrochure: Failed for program %s: %v", programID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传宣传册失败"})
		return
	}

	log.Infof("Brochure uploaded for program '%s'", programID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Brochure uploaded successfully",
		"brochure_path": program.BrochurePath,
	})
}

// GetBrochureURL 返回项目宣传册的预签名下载链接。
func (h *ProgramHandler) GetBrochureURL(c *gin.Context) {
	programID := c.Param("id")

	url, err := h.programService.BrochureURL(programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
			return
		}
		if errors.Is(err, service.ErrNoBrochure) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("GetBrochureURL: Failed for program %s: %v", programID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成下载链接失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

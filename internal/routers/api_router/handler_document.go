package api_router

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/haierkeys/document-vault-service/internal/app"
	"github.com/haierkeys/document-vault-service/internal/dto"
	pkgapp "github.com/haierkeys/document-vault-service/pkg/app"
	"github.com/haierkeys/document-vault-service/pkg/code"
	apperrors "github.com/haierkeys/document-vault-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler 文档 API 路由处理器
type DocumentHandler struct {
	*Handler
}

// NewDocumentHandler 创建 DocumentHandler 实例
func NewDocumentHandler(a *app.App) *DocumentHandler {
	return &DocumentHandler{Handler: NewHandler(a)}
}

// Upload 上传文档
// @Summary 上传文档
// @Description 上传文件并持久化文档元数据，可选启用 CDN 分发
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Param tags formData string false "逗号分隔的标签"
// @Param enableCdn formData bool false "是否启用 CDN"
// @Success 200 {object} pkgapp.Res{data=dto.DocumentResponse} "成功"
// @Router /api/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DocumentUploadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("DocumentHandler.Upload.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.Upload.Open", err)
		response.ToResponse(code.ErrorDocumentUploadFailed)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}

	var tags []string
	if params.Tags != "" {
		tags = strings.Split(params.Tags, ",")
	}

	doc, err := h.App.DocumentService.Upload(c.Request.Context(),
		fileHeader.Filename, contentType, file, fileHeader.Size, tags, params.EnableCdn)
	if err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(dto.NewDocumentResponse(doc)))
}

// Get 获取文档元数据
// @Summary 获取文档元数据
// @Tags 文档
// @Produce json
// @Param id path string true "文档 ID"
// @Success 200 {object} pkgapp.Res{data=dto.DocumentResponse} "成功"
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	doc, err := h.App.DocumentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.NewDocumentResponse(doc)))
}

// List 获取文档列表
// @Summary 获取文档列表
// @Tags 文档
// @Produce json
// @Param tag query string false "按标签过滤"
// @Success 200 {object} pkgapp.Res{data=[]dto.DocumentResponse} "成功"
// @Router /api/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DocumentListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	docs, err := h.App.DocumentService.ListByTag(c.Request.Context(), params.Tag)
	if err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	// 文档元数据量级小，分页在内存中进行
	totalRows := len(docs)
	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSize(c)
	offset := (page - 1) * pageSize
	if offset > totalRows {
		offset = totalRows
	}
	end := offset + pageSize
	if end > totalRows {
		end = totalRows
	}

	response.ToResponseList(code.Success, dto.NewDocumentListResponse(docs[offset:end]), totalRows)
}

// Content 直接下载文档内容
// @Summary 直接下载文档内容
// @Tags 文档
// @Produce octet-stream
// @Param id path string true "文档 ID"
// @Router /api/documents/{id}/content [get]
func (h *DocumentHandler) Content(c *gin.Context) {
	body, doc, err := h.App.DocumentService.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.Content", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(200, doc.FileSize, doc.ContentType, body, map[string]string{
		"Content-Disposition": `attachment; filename="` + doc.FileName + `"`,
	})
}

// Delete 删除文档
// @Summary 删除文档
// @Description 删除对象存储中的内容与元数据记录
// @Tags 文档
// @Produce json
// @Param id path string true "文档 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	if err := h.App.DocumentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logError(c.Request.Context(), "DocumentHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

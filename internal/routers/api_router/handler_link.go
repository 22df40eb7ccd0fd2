package api_router

import (
	"net/http"
	"time"

	"github.com/haierkeys/document-vault-service/internal/app"
	"github.com/haierkeys/document-vault-service/internal/dto"
	pkgapp "github.com/haierkeys/document-vault-service/pkg/app"
	"github.com/haierkeys/document-vault-service/pkg/code"
	apperrors "github.com/haierkeys/document-vault-service/pkg/errors"
	"github.com/haierkeys/document-vault-service/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LinkHandler 下载链接 API 路由处理器
type LinkHandler struct {
	*Handler
}

// NewLinkHandler 创建 LinkHandler 实例
func NewLinkHandler(a *app.App) *LinkHandler {
	return &LinkHandler{Handler: NewHandler(a)}
}

// Create 签发下载链接
// @Summary 签发下载链接
// @Description 为已有文档签发限时下载链接；有效期必须为正数
// @Tags 链接
// @Accept json
// @Produce json
// @Param params body dto.LinkCreateRequest true "链接参数"
// @Success 200 {object} pkgapp.Res{data=dto.LinkResponse} "成功"
// @Router /api/links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	var expiry time.Duration
	if params.ExpiryHours != nil {
		expiry = time.Duration(*params.ExpiryHours * float64(time.Hour))
	} else {
		// 未指定时使用配置的默认有效期
		d, err := util.ParseDuration(h.App.Config().App.DefaultLinkExpiry)
		if err != nil {
			response.ToResponse(code.ErrorInvalidParams.WithDetails("default-link-expiry misconfigured"))
			return
		}
		expiry = d
	}

	link, err := h.App.LinkService.Generate(c.Request.Context(), params.DocumentID, expiry)
	if err != nil {
		h.logError(c.Request.Context(), "LinkHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	ObserveLinkIssued()
	response.ToResponse(code.SuccessCreate.WithData(dto.NewLinkResponse(link)))
}

// List 获取全部链接
// @Summary 获取全部链接
// @Tags 链接
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.LinkResponse} "成功"
// @Router /api/links [get]
func (h *LinkHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	links, err := h.App.LinkService.List(c.Request.Context())
	if err != nil {
		h.logError(c.Request.Context(), "LinkHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.NewLinkListResponse(links)))
}

// Validate 校验链接有效性
// @Summary 校验链接有效性
// @Description 未知链接返回 isValid=false 而非错误
// @Tags 链接
// @Produce json
// @Param id path string true "链接 ID"
// @Success 200 {object} pkgapp.Res{data=dto.LinkValidateResponse} "成功"
// @Router /api/links/{id}/validate [get]
func (h *LinkHandler) Validate(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	isValid, err := h.App.LinkService.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logError(c.Request.Context(), "LinkHandler.Validate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.LinkValidateResponse{IsValid: isValid}))
}

// Download 通过链接下载文档内容
// @Summary 通过链接下载文档内容
// @Description 任何失败（未知、过期、停用、内容不可达）都返回同一错误码
// @Tags 链接
// @Produce octet-stream
// @Param id path string true "链接 ID"
// @Router /api/links/{id}/download [get]
func (h *LinkHandler) Download(c *gin.Context) {
	res, err := h.App.LinkService.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	defer res.Body.Close()

	// 内容长度未知（可能来自 CDN 流），使用分块传输
	c.DataFromReader(http.StatusOK, -1, res.ContentType, res.Body, map[string]string{
		"Content-Disposition": `attachment; filename="` + res.FileName + `"`,
	})
}

// Cleanup 立即清理过期链接
// @Summary 立即清理过期链接
// @Description 与定时任务共用同一清理逻辑，返回实际删除数
// @Tags 链接
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.LinkCleanupResponse} "成功"
// @Router /api/links/cleanup [post]
func (h *LinkHandler) Cleanup(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	deleted, err := h.App.CleanupService.PurgeExpired(c.Request.Context())
	if err != nil {
		h.logError(c.Request.Context(), "LinkHandler.Cleanup", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	ObserveLinksPurged(deleted)
	response.ToResponse(code.Success.WithData(&dto.LinkCleanupResponse{DeletedCount: deleted}))
}

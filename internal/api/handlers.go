// internal/api/handlers.go
package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
	"github.com/Corphon/ItemShowcase/internal/services"
	"github.com/Corphon/ItemShowcase/internal/storage"
)

// Handler 处理API请求
type Handler struct {
	AssetStore  *storage.AssetStore   // 资产存储服务
	ItemService *services.ItemService // 物品目录服务
	MailService *services.MailService // 询价通知服务
}

// NewHandler 创建API处理器
func NewHandler(assetStore *storage.AssetStore, itemService *services.ItemService, mailService *services.MailService) *Handler {
	return &Handler{
		AssetStore:  assetStore,
		ItemService: itemService,
		MailService: mailService,
	}
}

// Status 存活探针 GET /api/items/status
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "API is running"})
}

// CreateItem 创建物品 POST /api/items
// 图片摄入全部成功之后才会写入物品记录，任何失败都不会留下半成品
func (h *Handler) CreateItem(c *gin.Context) {
	name := c.PostForm("itemName")
	itemType := c.PostForm("itemType")
	description := c.PostForm("itemDescription")

	// 文本字段校验先于任何落盘动作
	if err := h.ItemService.ValidateFields(name, itemType, description); err != nil {
		h.respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	var cover *multipart.FileHeader
	if files := form.File["coverImage"]; len(files) > 0 {
		cover = files[0]
	}
	additional := form.File["additionalImages"]

	coverName, additionalNames, err := h.AssetStore.Ingest(cover, additional)
	if err != nil {
		h.respondError(c, err)
		return
	}

	item := h.ItemService.Create(name, itemType, description, coverName, additionalNames)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Item successfully added",
		"item":    item,
	})
}

// ListItems 获取物品列表 GET /api/items
func (h *Handler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.ItemService.List())
}

// EnquireItem 触发物品询价通知 POST /api/items/:id/enquire
func (h *Handler) EnquireItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	// 先确认物品存在，再触发通道创建
	item, err := h.ItemService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	receipt, err := h.MailService.Notify(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Enquiry email sent (Ethereal)",
		"preview":   receipt.Preview,
		"messageId": receipt.MessageID,
	})
}

// respondError 把应用错误映射成HTTP响应
// 校验和资产类错误按成因区分 4xx/5xx，不吞掉任何失败路径
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	case apperrors.ErrorTypeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
	case apperrors.ErrorTypeAsset:
		// 磁盘写入失败是服务端问题，其余资产错误都是请求不合法
		status := http.StatusBadRequest
		if appErr.Code == apperrors.CodeWriteFailure {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": appErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
	}
}

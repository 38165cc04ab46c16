// internal/services/item_service.go
package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
	"github.com/Corphon/ItemShowcase/internal/models"
)

// ItemService 负责物品目录的内存存储与编号分配
// 物品编号单调递增、创建后不复用；存储生命周期与进程一致，不做持久化
type ItemService struct {
	mu     sync.Mutex
	items  []models.Item
	nextID int
}

// NewItemService 创建物品服务
func NewItemService() *ItemService {
	return &ItemService{
		nextID: 1,
	}
}

// Create 分配下一个物品编号并保存物品记录
// 编号分配和追加在同一把锁内完成，并发创建不会观察到重复编号
func (s *ItemService) Create(name, itemType, description, coverName string, additionalNames []string) *models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.Item{
		ID:               s.nextID,
		ItemName:         name,
		ItemType:         itemType,
		ItemDescription:  description,
		CoverImage:       coverName,
		AdditionalImages: append([]string{}, additionalNames...),
		CreatedAt:        time.Now(),
	}
	s.nextID++
	s.items = append(s.items, item)

	result := cloneItem(item)
	return &result
}

// List 返回按创建顺序排列的物品快照
// 快照在调用时即已固化，之后开始的并发创建不会反映进来
func (s *ItemService) List() []*models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Item, len(s.items))
	for i := range s.items {
		item := cloneItem(s.items[i])
		result[i] = &item
	}
	return result
}

// GetByID 按编号查找物品
func (s *ItemService) GetByID(id int) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			item := cloneItem(s.items[i])
			return &item, nil
		}
	}

	return nil, apperrors.NewNotFoundError("Item not found", nil)
}

// ValidateFields 校验物品文本字段
// 汇总所有缺失字段后一次性返回，不在第一个失败处短路，方便表单整体报错
func (s *ItemService) ValidateFields(name, itemType, description string) error {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "itemName")
	}
	if strings.TrimSpace(itemType) == "" {
		missing = append(missing, "itemType")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "itemDescription")
	}

	if len(missing) > 0 {
		message := fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
		return apperrors.NewValidationError(message, nil).WithFields(missing...)
	}

	return nil
}

// cloneItem 复制物品记录，避免把内部存储的切片暴露给调用方
func cloneItem(item models.Item) models.Item {
	item.AdditionalImages = append([]string{}, item.AdditionalImages...)
	return item
}

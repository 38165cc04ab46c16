// internal/services/item_service_test.go
package services

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := NewItemService()

	first := s.Create("Jacket", "Shirt", "Warm", "1-cover.png", nil)
	second := s.Create("Boots", "Shoes", "Sturdy", "2-cover.png", []string{"2-side.png"})
	third := s.Create("Scarf", "Accessory", "Soft", "3-cover.png", nil)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)
}

func TestCreateConcurrentDistinctIDs(t *testing.T) {
	s := NewItemService()

	const n = 50
	ids := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := s.Create("Jacket", "Shirt", "Warm", "cover.png", nil)
			ids <- item.ID
		}()
	}
	wg.Wait()
	close(ids)

	collected := make([]int, 0, n)
	for id := range ids {
		collected = append(collected, id)
	}
	sort.Ints(collected)

	// 并发创建拿到的编号必须连续且互不重复
	require.Len(t, collected, n)
	for i, id := range collected {
		assert.Equal(t, i+1, id)
	}
}

func TestGetByID(t *testing.T) {
	s := NewItemService()

	created := s.Create("Jacket", "Shirt", "Warm", "1-cover.png", []string{"1-a.png", "1-b.png"})

	found, err := s.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.GetByID(99)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestListReturnsSnapshotInCreationOrder(t *testing.T) {
	s := NewItemService()

	s.Create("Jacket", "Shirt", "Warm", "1-cover.png", nil)
	s.Create("Boots", "Shoes", "Sturdy", "2-cover.png", nil)

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "Jacket", items[0].ItemName)
	assert.Equal(t, "Boots", items[1].ItemName)

	// 修改快照不能影响存储本身
	items[0].ItemName = "Tampered"
	items[0].AdditionalImages = append(items[0].AdditionalImages, "evil.png")

	fresh := s.List()
	assert.Equal(t, "Jacket", fresh[0].ItemName)
	assert.Empty(t, fresh[0].AdditionalImages)
}

func TestValidateFields(t *testing.T) {
	s := NewItemService()

	tests := []struct {
		name          string
		itemName      string
		itemType      string
		description   string
		wantErr       bool
		missingFields []string
	}{
		{
			name:        "全部字段合法",
			itemName:    "Jacket",
			itemType:    "Shirt",
			description: "Warm",
		},
		{
			name:          "全部字段为空",
			wantErr:       true,
			missingFields: []string{"itemName", "itemType", "itemDescription"},
		},
		{
			name:          "空白字符视为空",
			itemName:      "   ",
			itemType:      "Shirt",
			description:   "Warm",
			wantErr:       true,
			missingFields: []string{"itemName"},
		},
		{
			name:          "缺少两个字段",
			itemName:      "Jacket",
			wantErr:       true,
			missingFields: []string{"itemType", "itemDescription"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateFields(tt.itemName, tt.itemType, tt.description)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))

			// 所有缺失字段要一次性全部报出，而不是只报第一个
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.missingFields, appErr.Fields)
			for _, field := range tt.missingFields {
				assert.Contains(t, appErr.Message, field)
			}
		})
	}
}

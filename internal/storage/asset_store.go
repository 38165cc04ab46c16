// internal/storage/asset_store.go
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
)

// MaxAdditionalImages 单个物品允许的附加图片上限
const MaxAdditionalImages = 5

// AssetStore 保存上传的图片文件并生成稳定文件名
// 文件名在摄入时生成，与调用方提供的原始文件名解耦，避免冲突和路径注入
type AssetStore struct {
	BaseDir     string
	MaxFileSize int64
}

// NewAssetStore 创建资产存储服务
func NewAssetStore(baseDir string, maxFileSize int64) (*AssetStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	return &AssetStore{
		BaseDir:     baseDir,
		MaxFileSize: maxFileSize,
	}, nil
}

// Ingest 摄入一组上传图片：一张封面图，至多五张附加图
// 整组要么全部落盘，要么一个都不留——部分写入失败时会清理本次已写入的文件，
// 绝不返回残缺结果，调用方必须在 Ingest 完全成功后才能创建物品记录
func (s *AssetStore) Ingest(cover *multipart.FileHeader, additional []*multipart.FileHeader) (string, []string, error) {
	if cover == nil {
		return "", nil, apperrors.NewAssetError(apperrors.CodeMissingCoverImage,
			"coverImage is required", nil)
	}

	if len(additional) > MaxAdditionalImages {
		return "", nil, apperrors.NewAssetError(apperrors.CodeTooManyAdditionalImages,
			fmt.Sprintf("at most %d additional images are allowed, got %d", MaxAdditionalImages, len(additional)), nil)
	}

	// 先做全部大小校验，再开始写盘
	for _, fh := range append([]*multipart.FileHeader{cover}, additional...) {
		if s.MaxFileSize > 0 && fh.Size > s.MaxFileSize {
			return "", nil, apperrors.NewAssetError(apperrors.CodeAssetTooLarge,
				fmt.Sprintf("file %q exceeds the %d byte limit", fh.Filename, s.MaxFileSize), nil)
		}
	}

	var written []string
	cleanup := func() {
		for _, name := range written {
			os.Remove(filepath.Join(s.BaseDir, name))
		}
	}

	coverName, err := s.saveUpload(cover)
	if err != nil {
		return "", nil, err
	}
	written = append(written, coverName)

	additionalNames := make([]string, 0, len(additional))
	for _, fh := range additional {
		name, saveErr := s.saveUpload(fh)
		if saveErr != nil {
			cleanup()
			return "", nil, saveErr
		}
		written = append(written, name)
		additionalNames = append(additionalNames, name)
	}

	return coverName, additionalNames, nil
}

// saveUpload 把单个上传文件写入存储目录，返回生成的文件名
func (s *AssetStore) saveUpload(fh *multipart.FileHeader) (string, error) {
	name := s.generateFilename(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", apperrors.NewAssetError(apperrors.CodeWriteFailure,
			fmt.Sprintf("failed to read uploaded file %q", fh.Filename), err)
	}
	defer src.Close()

	fullPath := filepath.Join(s.BaseDir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewAssetError(apperrors.CodeWriteFailure,
			fmt.Sprintf("failed to store uploaded file %q", fh.Filename), err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return "", apperrors.NewAssetError(apperrors.CodeWriteFailure,
			fmt.Sprintf("failed to store uploaded file %q", fh.Filename), err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return "", apperrors.NewAssetError(apperrors.CodeWriteFailure,
			fmt.Sprintf("failed to store uploaded file %q", fh.Filename), err)
	}

	return name, nil
}

// generateFilename 生成存储文件名：毫秒时间戳 + 原始文件名
// 单进程低并发写入下足以保证唯一性；只取原始名的最后一段，杜绝路径注入
func (s *AssetStore) generateFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}

package service

import (
	"context"
	"fmt"
	"time"

	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/pkg/logger"
)

// ==================== 上传协调 ====================

// UploadService 驱动单个槽位的图片上传
// 两个槽位完全独立：busy 标记各自一份，互不阻塞、互不清除
type UploadService struct {
	storage StorageProvider
}

// NewUploadService 创建上传服务
func NewUploadService(storage StorageProvider) *UploadService {
	return &UploadService{storage: storage}
}

// Upload 上传文件到指定槽位并回写草稿的 URL 字段
// 存储 key: {slot}/{packageNumber}-{filename}，同名直接覆盖旧对象
// 失败时目标字段保持原样；busy 标记无论成败都会清除
func (u *UploadService) Upload(ctx context.Context, sess *FormSession, slot model.Slot, filename string, data []byte) (string, error) {
	if !slot.Valid() {
		return "", ErrUnknownSlot
	}
	if u.storage == nil {
		return "", ErrStorageNotConfigured
	}

	sess.mu.Lock()
	st := sess.slots[slot]
	if st.busy {
		// 同槽位并发上传直接拒绝，避免最后写入者胜出的竞态
		sess.mu.Unlock()
		return "", ErrSlotBusy
	}
	st.busy = true
	sess.touchedAt = time.Now()
	pkg := sess.draft.PackageNumber
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		st.busy = false
		sess.mu.Unlock()
	}()

	if filename == "" || len(data) == 0 {
		return "", ErrNoFileSelected
	}

	key := fmt.Sprintf("%s/%s-%s", slot, pkg, filename)

	url, err := u.storage.Put(ctx, key, data, "")
	if err != nil {
		logger.L.Warnw("图片上传失败", "slot", slot, "key", key, "err", err)
		return "", &UploadError{Cause: err}
	}

	sess.mu.Lock()
	sess.draft.SetImageURL(slot, url)
	sess.touchedAt = time.Now()
	sess.mu.Unlock()

	return url, nil
}

// RemoveImage 清空槽位的 URL 字段（仅编辑流程使用）
// 远端对象不删除，孤儿文件允许累积
func (u *UploadService) RemoveImage(sess *FormSession, slot model.Slot) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}

	sess.mu.Lock()
	sess.draft.SetImageURL(slot, "")
	sess.touchedAt = time.Now()
	sess.mu.Unlock()

	return nil
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sourcexpet_admin_v1/internal/model"
)

// ==================== 提交状态机 ====================

// SubmitState 提交状态
// idle -> validating -> {idle(rejected) | submitting -> idle}
type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitValidating SubmitState = "validating"
	SubmitSubmitting SubmitState = "submitting"
)

// ==================== 会话 ====================

const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

type slotState struct {
	busy bool
}

// FormSession 一次表单编辑会话，独占持有一份草稿
// 所有字段通过会话锁访问；网络调用都在锁外进行
type FormSession struct {
	ID        string
	Mode      string
	ProductID int64 // edit 模式下的目标记录

	mu          sync.Mutex
	draft       model.ProductDraft
	errors      model.ValidationErrors
	slots       map[model.Slot]*slotState
	submitState SubmitState
	touchedAt   time.Time
}

func newFormSession(mode string, productID int64, draft model.ProductDraft) *FormSession {
	slots := make(map[model.Slot]*slotState, len(model.Slots))
	for _, slot := range model.Slots {
		slots[slot] = &slotState{}
	}
	return &FormSession{
		ID:          uuid.New().String(),
		Mode:        mode,
		ProductID:   productID,
		draft:       draft,
		errors:      model.ValidationErrors{},
		slots:       slots,
		submitState: SubmitIdle,
		touchedAt:   time.Now(),
	}
}

// ==================== 字段写入 ====================

// SetField 覆盖写入顶层字段，不做类型转换
// packageNumber 分配后不可修改
func (s *FormSession) SetField(field string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	switch field {
	case "name", "category", "price", "description":
		v, ok := value.(string)
		if !ok {
			return ErrFieldType
		}
		switch field {
		case "name":
			s.draft.Name = v
		case "category":
			s.draft.Category = v
		case "price":
			s.draft.Price = model.Price(v)
		case "description":
			s.draft.Description = v
		}
	case "isSampleCollected":
		v, ok := value.(bool)
		if !ok {
			return ErrFieldType
		}
		s.draft.IsSampleCollected = v
	case "packageNumber":
		return ErrImmutableField
	default:
		return ErrUnknownField
	}

	return nil
}

// SetSellerField 覆盖写入卖家子字段，其余子字段不受影响
func (s *FormSession) SetSellerField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now()

	switch field {
	case "name":
		s.draft.SellerInfo.Name = value
	case "wechat":
		s.draft.SellerInfo.Wechat = value
	case "email":
		s.draft.SellerInfo.Email = value
	case "onlineStore":
		s.draft.SellerInfo.OnlineStore = value
	default:
		return ErrUnknownField
	}

	return nil
}

// ==================== 校验 ====================

// Validate 重算全部校验错误并整体替换会话错误状态
// 返回空 map 时草稿可提交
func (s *FormSession) Validate() model.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *FormSession) validateLocked() model.ValidationErrors {
	errs := model.ValidationErrors{}
	if s.draft.Name == "" {
		errs["name"] = "Name is required"
	}
	if s.draft.Category == "" {
		errs["category"] = "Category is required"
	}
	if s.draft.Price == "" {
		errs["price"] = "Price is required"
	}
	if s.draft.ProductImageUrl == "" {
		errs["productImageUrl"] = "Product image is required"
	}

	// 整体替换，绝不合并上一轮的残留
	s.errors = errs
	return errs
}

// ==================== 快照 ====================

// SessionView 会话只读快照
type SessionView struct {
	Draft       model.ProductDraft
	Errors      model.ValidationErrors
	SlotBusy    map[model.Slot]bool
	SubmitState SubmitState
}

// View 在锁内拷贝会话状态
func (s *FormSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make(model.ValidationErrors, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	busy := make(map[model.Slot]bool, len(s.slots))
	for slot, st := range s.slots {
		busy[slot] = st.busy
	}

	return SessionView{
		Draft:       s.draft,
		Errors:      errs,
		SlotBusy:    busy,
		SubmitState: s.submitState,
	}
}

// Draft 草稿拷贝
func (s *FormSession) Draft() model.ProductDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// ==================== 会话服务 ====================

// FormService 草稿会话注册表
// 会话只存在于内存中，放弃编辑即丢弃，不持久化半成品
type FormService struct {
	catalog *CatalogClient

	mu       sync.RWMutex
	sessions map[string]*FormSession
}

// NewFormService 创建表单服务
func NewFormService(catalog *CatalogClient) *FormService {
	return &FormService{
		catalog:  catalog,
		sessions: make(map[string]*FormSession),
	}
}

// CreateSession 新建空白草稿会话，分配新的包裹编号
func (f *FormService) CreateSession() *FormSession {
	sess := newFormSession(ModeCreate, 0, model.NewProductDraft())

	f.mu.Lock()
	f.sessions[sess.ID] = sess
	f.mu.Unlock()

	return sess
}

// EditSession 按记录 id 拉取现有商品并建立编辑会话
// 拉取成功前会话不存在；草稿整体以服务端记录覆盖（packageNumber 原样加载）
func (f *FormService) EditSession(ctx context.Context, productID int64) (*FormSession, error) {
	record, err := f.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	sess := newFormSession(ModeEdit, record.ID, record.ProductDraft)

	f.mu.Lock()
	f.sessions[sess.ID] = sess
	f.mu.Unlock()

	return sess, nil
}

// Get 按会话 id 查找
func (f *FormService) Get(id string) (*FormSession, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	sess, ok := f.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Discard 丢弃会话，草稿不落盘
func (f *FormService) Discard(id string) {
	f.mu.Lock()
	delete(f.sessions, id)
	f.mu.Unlock()
}

// PurgeIdle 清理超过 maxIdle 未活动的会话，返回清理数量
func (f *FormService) PurgeIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	f.mu.Lock()
	defer f.mu.Unlock()

	purged := 0
	for id, sess := range f.sessions {
		sess.mu.Lock()
		idle := sess.touchedAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(f.sessions, id)
			purged++
		}
	}
	return purged
}

// Count 当前会话数
func (f *FormService) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

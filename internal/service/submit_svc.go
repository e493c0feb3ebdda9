package service

import (
	"context"
	"time"

	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/pkg/logger"
)

// ==================== 提交结果 ====================

// OutcomeStatus 提交终局状态
type OutcomeStatus string

const (
	OutcomeCreated  OutcomeStatus = "created"
	OutcomeUpdated  OutcomeStatus = "updated"
	OutcomeRejected OutcomeStatus = "rejected"
	OutcomeFailed   OutcomeStatus = "failed"
)

// Outcome 一次提交恰好产生一个终局结果
type Outcome struct {
	Status    OutcomeStatus
	Errors    model.ValidationErrors // rejected 时携带
	Reason    string                 // failed 时携带
	ProductID int64                  // created / updated 时携带
	Redirect  string                 // 成功后建议跳转的路径
}

// ==================== 提交管线 ====================

// SubmitService 草稿提交管线
// 状态机: idle -> validating -> {rejected | submitting -> {success | failed}}
// 同一会话同时只允许一次提交，失败不重试，服务端确认前不做本地乐观变更
type SubmitService struct {
	catalog *CatalogClient
}

// NewSubmitService 创建提交服务
func NewSubmitService(catalog *CatalogClient) *SubmitService {
	return &SubmitService{catalog: catalog}
}

// begin 执行 idle -> validating 迁移并做校验
// 校验失败时直接回到 idle 并返回 rejected，保证不发起任何网络调用
func (s *SubmitService) begin(sess *FormSession) (model.ProductDraft, *Outcome, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitState != SubmitIdle {
		return model.ProductDraft{}, nil, ErrSubmitInFlight
	}

	sess.submitState = SubmitValidating
	sess.touchedAt = time.Now()

	if errs := sess.validateLocked(); len(errs) > 0 {
		sess.submitState = SubmitIdle
		return model.ProductDraft{}, &Outcome{Status: OutcomeRejected, Errors: errs}, nil
	}

	sess.submitState = SubmitSubmitting
	return sess.draft, nil, nil
}

func (s *SubmitService) finish(sess *FormSession) {
	sess.mu.Lock()
	sess.submitState = SubmitIdle
	sess.mu.Unlock()
}

// SubmitCreate 提交新商品
// 201 视为成功：本地草稿重置为空白（分配新的包裹编号），引导跳转列表页
func (s *SubmitService) SubmitCreate(ctx context.Context, sess *FormSession) (Outcome, error) {
	draft, rejected, err := s.begin(sess)
	if err != nil {
		return Outcome{}, err
	}
	if rejected != nil {
		return *rejected, nil
	}
	defer s.finish(sess)

	record, err := s.catalog.Create(ctx, draft)
	if err != nil {
		logger.L.Warnw("商品创建失败", "packageNumber", draft.PackageNumber, "err", err)
		return Outcome{Status: OutcomeFailed, Reason: err.Error()}, nil
	}

	sess.mu.Lock()
	sess.draft = model.NewProductDraft()
	sess.errors = model.ValidationErrors{}
	sess.mu.Unlock()

	return Outcome{Status: OutcomeCreated, ProductID: record.ID, Redirect: "/"}, nil
}

// SubmitUpdate 提交已有商品的整体更新
// 200 视为成功：草稿不重置（记录在服务端以同一 id 继续存在），包裹编号保持不变
func (s *SubmitService) SubmitUpdate(ctx context.Context, sess *FormSession) (Outcome, error) {
	draft, rejected, err := s.begin(sess)
	if err != nil {
		return Outcome{}, err
	}
	if rejected != nil {
		return *rejected, nil
	}
	defer s.finish(sess)

	record, err := s.catalog.Update(ctx, sess.ProductID, draft)
	if err != nil {
		logger.L.Warnw("商品更新失败", "productId", sess.ProductID, "err", err)
		return Outcome{Status: OutcomeFailed, Reason: err.Error()}, nil
	}

	return Outcome{Status: OutcomeUpdated, ProductID: record.ID, Redirect: "/"}, nil
}

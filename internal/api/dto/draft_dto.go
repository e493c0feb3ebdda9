package dto

import (
	"sourcexpet_admin_v1/internal/model"
)

// ==================== 请求 DTO ====================

// CreateDraftReq 新建草稿会话请求
type CreateDraftReq struct {
	Mode      string `json:"mode" binding:"required,oneof=create edit"`
	ProductID int64  `json:"productId"` // edit 模式必填
}

// SetFieldReq 顶层字段写入请求
// Value 的类型必须与字段一致（字符串字段传 string，isSampleCollected 传 bool），不做转换
type SetFieldReq struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// SetSellerFieldReq 卖家子字段写入请求
type SetSellerFieldReq struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ==================== 响应 DTO ====================

// SlotStateResp 单个上传槽位状态
type SlotStateResp struct {
	Busy bool   `json:"busy"`
	URL  string `json:"url"`
}

// DraftResp 草稿会话快照
type DraftResp struct {
	SessionID   string                       `json:"sessionId"`
	Mode        string                       `json:"mode"`
	ProductID   int64                        `json:"productId,omitempty"`
	Draft       model.ProductDraft           `json:"draft"`
	Errors      model.ValidationErrors       `json:"errors"`
	Slots       map[model.Slot]SlotStateResp `json:"slots"`
	SubmitState string                       `json:"submitState"`
}

// UploadResp 上传结果
type UploadResp struct {
	Slot model.Slot `json:"slot"`
	URL  string     `json:"url"`
}

// OutcomeResp 提交终局结果
// Status: created | updated | rejected | failed
type OutcomeResp struct {
	Status    string                 `json:"status"`
	Errors    model.ValidationErrors `json:"errors,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
	ProductID int64                  `json:"productId,omitempty"`
	Redirect  string                 `json:"redirect,omitempty"`
}

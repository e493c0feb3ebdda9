package dto

import (
	"sourcexpet_admin_v1/internal/model"
)

// ==================== 目录 API 响应 ====================

// ProductRecord 目录服务返回的单条商品记录
// 字段与草稿一致，外加服务端分配的 id
type ProductRecord struct {
	ID int64 `json:"id"`
	model.ProductDraft
}

// ==================== 通用响应 ====================

// ErrorResp 错误响应体
type ErrorResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"sourcexpet_admin_v1/internal/model"
)

// ==================== 错误分类 ====================

var (
	// ErrNotFound 编辑目标不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrNoFileSelected 未选择文件，上传直接结束
	ErrNoFileSelected = errors.New("未选择文件")

	// ErrSlotBusy 槽位正在上传中，拒绝新的上传
	ErrSlotBusy = errors.New("该图片正在上传中")

	// ErrSubmitInFlight 已有提交在进行中
	ErrSubmitInFlight = errors.New("提交进行中，请勿重复提交")

	// ErrSessionNotFound 草稿会话不存在或已过期
	ErrSessionNotFound = errors.New("草稿会话不存在")

	// ErrUnknownField 字段名未注册
	ErrUnknownField = errors.New("未知字段")

	// ErrImmutableField 包裹编号分配后不可修改
	ErrImmutableField = errors.New("字段不可修改")

	// ErrFieldType 字段值类型不匹配（不做隐式转换）
	ErrFieldType = errors.New("字段值类型不匹配")

	// ErrUnknownSlot 槽位未注册
	ErrUnknownSlot = errors.New("未知图片槽位")

	// ErrStorageNotConfigured 存储服务未初始化
	ErrStorageNotConfigured = errors.New("存储服务未配置")
)

// ValidationError 必填字段缺失，本地拦截，不发起网络调用
type ValidationError struct {
	Errors model.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("缺少必填字段: %s", strings.Join(fields, ", "))
}

// UploadError 上传网关调用失败
type UploadError struct {
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("图片上传失败: %v", e.Cause)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// RequestError 目录 API 返回非成功状态或传输失败
type RequestError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("网络请求失败: %v", e.Cause)
	}
	return fmt.Sprintf("API 异常 [%d]: %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

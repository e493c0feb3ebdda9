package controller

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"sourcexpet_admin_v1/internal/api/dto"
	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/internal/service"
)

// DraftController 草稿表单接口
// 承载创建/编辑两个表单页的全部交互
type DraftController struct {
	formService   *service.FormService
	uploadService *service.UploadService
	submitService *service.SubmitService
}

func NewDraftController(
	formService *service.FormService,
	uploadService *service.UploadService,
	submitService *service.SubmitService,
) *DraftController {
	return &DraftController{
		formService:   formService,
		uploadService: uploadService,
		submitService: submitService,
	}
}

// toDraftResp 会话快照 -> 响应
func toDraftResp(sess *service.FormSession) dto.DraftResp {
	view := sess.View()

	slots := make(map[model.Slot]dto.SlotStateResp, len(view.SlotBusy))
	for slot, busy := range view.SlotBusy {
		slots[slot] = dto.SlotStateResp{
			Busy: busy,
			URL:  view.Draft.ImageURL(slot),
		}
	}

	return dto.DraftResp{
		SessionID:   sess.ID,
		Mode:        sess.Mode,
		ProductID:   sess.ProductID,
		Draft:       view.Draft,
		Errors:      view.Errors,
		Slots:       slots,
		SubmitState: string(view.SubmitState),
	}
}

// ==================== 会话管理 ====================

// CreateDraft 新建草稿会话
// @Summary 新建草稿会话（create 空白草稿 / edit 加载已有商品）
// @Tags Draft
// @Accept json
// @Produce json
// @Param body body dto.CreateDraftReq true "会话参数"
// @Success 201 {object} dto.DraftResp
// @Router /api/drafts [post]
func (ctrl *DraftController) CreateDraft(c *gin.Context) {
	var req dto.CreateDraftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	var (
		sess *service.FormSession
		err  error
	)
	switch req.Mode {
	case service.ModeCreate:
		sess = ctrl.formService.CreateSession()
	case service.ModeEdit:
		if req.ProductID <= 0 {
			c.JSON(400, gin.H{"code": 400, "message": "edit 模式必须指定 productId"})
			return
		}
		sess, err = ctrl.formService.EditSession(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
				return
			}
			c.JSON(502, gin.H{"code": 502, "message": "加载商品失败: " + err.Error()})
			return
		}
	}

	c.JSON(201, gin.H{"code": 0, "message": "success", "data": toDraftResp(sess)})
}

// GetDraft 获取草稿会话快照
// @Summary 获取草稿会话快照
// @Tags Draft
// @Param id path string true "会话ID"
// @Success 200 {object} dto.DraftResp
// @Router /api/drafts/{id} [get]
func (ctrl *DraftController) GetDraft(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toDraftResp(sess)})
}

// DiscardDraft 丢弃草稿会话
// @Summary 丢弃草稿会话（未提交内容不保留）
// @Tags Draft
// @Param id path string true "会话ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/drafts/{id} [delete]
func (ctrl *DraftController) DiscardDraft(c *gin.Context) {
	ctrl.formService.Discard(c.Param("id"))
	c.JSON(200, gin.H{"code": 0, "message": "已丢弃"})
}

// ==================== 字段编辑 ====================

// SetField 写入顶层字段
// @Summary 覆盖写入草稿顶层字段
// @Tags Draft
// @Accept json
// @Param id path string true "会话ID"
// @Param body body dto.SetFieldReq true "字段与值"
// @Success 200 {object} dto.DraftResp
// @Router /api/drafts/{id}/fields [patch]
func (ctrl *DraftController) SetField(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	var req dto.SetFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := sess.SetField(req.Field, req.Value); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toDraftResp(sess)})
}

// SetSellerField 写入卖家子字段
// @Summary 覆盖写入卖家信息子字段
// @Tags Draft
// @Accept json
// @Param id path string true "会话ID"
// @Param body body dto.SetSellerFieldReq true "字段与值"
// @Success 200 {object} dto.DraftResp
// @Router /api/drafts/{id}/seller [patch]
func (ctrl *DraftController) SetSellerField(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	var req dto.SetSellerFieldReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := sess.SetSellerField(req.Field, req.Value); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toDraftResp(sess)})
}

// ==================== 图片接口 ====================

// UploadImage 上传槽位图片
// @Summary 上传图片到指定槽位
// @Tags Draft
// @Accept multipart/form-data
// @Param id path string true "会话ID"
// @Param slot path string true "槽位名 productImageUrl|shopVisitingCardImageUrl"
// @Param image formData file true "图片文件"
// @Success 201 {object} dto.UploadResp
// @Router /api/drafts/{id}/images/{slot} [post]
func (ctrl *DraftController) UploadImage(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	slot := model.Slot(c.Param("slot"))

	// 未携带文件时仍然走协调器，保持"busy 置位后静默结束"的语义
	var (
		filename string
		data     []byte
	)
	if file, header, ferr := c.Request.FormFile("image"); ferr == nil {
		defer file.Close()
		filename = header.Filename
		if data, err = io.ReadAll(file); err != nil {
			c.JSON(500, gin.H{"code": 500, "message": "读取文件失败"})
			return
		}
	}

	url, err := ctrl.uploadService.Upload(c.Request.Context(), sess, slot, filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSlot):
			c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		case errors.Is(err, service.ErrNoFileSelected):
			c.JSON(400, gin.H{"code": 400, "message": "请上传图片文件"})
		case errors.Is(err, service.ErrSlotBusy):
			c.JSON(409, gin.H{"code": 409, "message": err.Error()})
		default:
			c.JSON(502, gin.H{"code": 502, "message": err.Error()})
		}
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.UploadResp{Slot: slot, URL: url},
	})
}

// RemoveImage 清空槽位图片
// @Summary 清空槽位的图片地址（远端对象不删除）
// @Tags Draft
// @Param id path string true "会话ID"
// @Param slot path string true "槽位名"
// @Success 200 {object} dto.DraftResp
// @Router /api/drafts/{id}/images/{slot} [delete]
func (ctrl *DraftController) RemoveImage(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	if err := ctrl.uploadService.RemoveImage(sess, model.Slot(c.Param("slot"))); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toDraftResp(sess)})
}

// ==================== 提交接口 ====================

// Submit 提交草稿
// @Summary 提交草稿（create 发 POST，edit 发 PUT）
// @Tags Draft
// @Param id path string true "会话ID"
// @Success 200 {object} dto.OutcomeResp
// @Router /api/drafts/{id}/submit [post]
func (ctrl *DraftController) Submit(c *gin.Context) {
	sess, err := ctrl.formService.Get(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"code": 404, "message": "草稿会话不存在"})
		return
	}

	var outcome service.Outcome
	if sess.Mode == service.ModeEdit {
		outcome, err = ctrl.submitService.SubmitUpdate(c.Request.Context(), sess)
	} else {
		outcome, err = ctrl.submitService.SubmitCreate(c.Request.Context(), sess)
	}

	if err != nil {
		if errors.Is(err, service.ErrSubmitInFlight) {
			c.JSON(409, gin.H{"code": 409, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "提交失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.OutcomeResp{
			Status:    string(outcome.Status),
			Errors:    outcome.Errors,
			Reason:    outcome.Reason,
			ProductID: outcome.ProductID,
			Redirect:  outcome.Redirect,
		},
	})
}

package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/internal/repository"
	"sourcexpet_admin_v1/internal/service"
)

// ProductController 商品目录 REST 接口
// 响应形状沿用原线上 API：列表返回裸数组，详情返回裸记录
type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取采购商品列表
// @Tags ProductSourcing
// @Param category query string false "分类筛选"
// @Param keyword query string false "名称搜索"
// @Success 200 {array} dto.ProductRecord
// @Router /api/product-sourcing [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
	}
	if pageStr := c.Query("page"); pageStr != "" {
		filter.Page, _ = strconv.Atoi(pageStr)
		filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	}

	records, _, err := ctrl.productService.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, records)
}

// GetProduct 获取商品详情
// @Summary 获取单个采购商品
// @Tags ProductSourcing
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductRecord
// @Router /api/product-sourcing/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	record, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, record)
}

// ==================== CRUD 接口 ====================

// CreateProduct 创建商品
// @Summary 创建采购商品
// @Tags ProductSourcing
// @Accept json
// @Produce json
// @Param body body model.ProductDraft true "商品信息"
// @Success 201 {object} dto.ProductRecord
// @Router /api/product-sourcing [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var draft model.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	record, err := ctrl.productService.Create(c.Request.Context(), draft)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(400, gin.H{"code": 400, "message": verr.Error(), "errors": verr.Errors})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(201, record)
}

// UpdateProduct 更新商品
// @Summary 整体更新采购商品
// @Tags ProductSourcing
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param body body model.ProductDraft true "商品信息"
// @Success 200 {object} dto.ProductRecord
// @Router /api/product-sourcing/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var draft model.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	record, err := ctrl.productService.Update(c.Request.Context(), id, draft)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		case errors.As(err, &verr):
			c.JSON(400, gin.H{"code": 400, "message": verr.Error(), "errors": verr.Errors})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, record)
}

// DeleteProduct 删除商品
// @Summary 删除采购商品
// @Tags ProductSourcing
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/product-sourcing/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "删除成功"})
}

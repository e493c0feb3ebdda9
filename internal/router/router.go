package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sourcexpet_admin_v1/internal/controller"
	"sourcexpet_admin_v1/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Product *controller.ProductController
	Draft   *controller.DraftController
}

// SetupRouter 注册所有路由
// uploadsDir 非空时挂载本地存储目录（local 存储模式）
func SetupRouter(ctrls *Controllers, uploadsDir string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	api := r.Group("/api")
	{
		// 商品目录（与原线上 API 路径保持一致）
		products := api.Group("/product-sourcing")
		{
			products.GET("", ctrls.Product.GetProducts)
			products.GET("/:id", ctrls.Product.GetProduct)
			products.POST("", ctrls.Product.CreateProduct)
			products.PUT("/:id", ctrls.Product.UpdateProduct)
			products.DELETE("/:id", ctrls.Product.DeleteProduct)
		}

		// 草稿表单流
		drafts := api.Group("/drafts")
		{
			drafts.POST("", ctrls.Draft.CreateDraft)
			drafts.GET("/:id", ctrls.Draft.GetDraft)
			drafts.DELETE("/:id", ctrls.Draft.DiscardDraft)
			drafts.PATCH("/:id/fields", ctrls.Draft.SetField)
			drafts.PATCH("/:id/seller", ctrls.Draft.SetSellerField)
			drafts.POST("/:id/images/:slot", ctrls.Draft.UploadImage)
			drafts.DELETE("/:id/images/:slot", ctrls.Draft.RemoveImage)
			drafts.POST("/:id/submit", ctrls.Draft.Submit)
		}
	}

	return r
}

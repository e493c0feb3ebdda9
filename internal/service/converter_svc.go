package service

import (
	"sourcexpet_admin_v1/internal/api/dto"
	"sourcexpet_admin_v1/internal/model"
)

// ToProductModel 草稿 -> 持久化模型
func ToProductModel(draft model.ProductDraft) *model.Product {
	return &model.Product{
		Name:                     draft.Name,
		Category:                 draft.Category,
		Price:                    draft.Price,
		Description:              draft.Description,
		ProductImageUrl:          draft.ProductImageUrl,
		ShopVisitingCardImageUrl: draft.ShopVisitingCardImageUrl,
		IsSampleCollected:        draft.IsSampleCollected,
		PackageNumber:            draft.PackageNumber,
		SellerInfo:               draft.SellerInfo,
	}
}

// ApplyDraft 用草稿整体覆盖已有记录的业务字段
// PUT 语义是整体替换，不做字段级合并
func ApplyDraft(p *model.Product, draft model.ProductDraft) {
	p.Name = draft.Name
	p.Category = draft.Category
	p.Price = draft.Price
	p.Description = draft.Description
	p.ProductImageUrl = draft.ProductImageUrl
	p.ShopVisitingCardImageUrl = draft.ShopVisitingCardImageUrl
	p.IsSampleCollected = draft.IsSampleCollected
	p.PackageNumber = draft.PackageNumber
	p.SellerInfo = draft.SellerInfo
}

// ToProductRecord 持久化模型 -> 接口记录
func ToProductRecord(p *model.Product) dto.ProductRecord {
	return dto.ProductRecord{
		ID: p.ID,
		ProductDraft: model.ProductDraft{
			Name:                     p.Name,
			Category:                 p.Category,
			Price:                    p.Price,
			Description:              p.Description,
			ProductImageUrl:          p.ProductImageUrl,
			ShopVisitingCardImageUrl: p.ShopVisitingCardImageUrl,
			IsSampleCollected:        p.IsSampleCollected,
			PackageNumber:            p.PackageNumber,
			SellerInfo:               p.SellerInfo,
		},
	}
}

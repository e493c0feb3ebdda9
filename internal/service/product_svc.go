package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sourcexpet_admin_v1/internal/api/dto"
	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/internal/repository"
	"sourcexpet_admin_v1/pkg/logger"
)

// ==================== 目录服务 ====================

// ProductService 商品目录服务端逻辑
type ProductService struct {
	repo    repository.ProductRepository
	storage StorageProvider // 删除记录时尽力清理已上传图片，可为 nil
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, storage StorageProvider) *ProductService {
	return &ProductService{
		repo:    repo,
		storage: storage,
	}
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductRecord, int64, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	records := make([]dto.ProductRecord, 0, len(products))
	for i := range products {
		records = append(records, ToProductRecord(&products[i]))
	}
	return records, total, nil
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, id int64) (*dto.ProductRecord, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	record := ToProductRecord(product)
	return &record, nil
}

// Create 创建商品记录
func (s *ProductService) Create(ctx context.Context, draft model.ProductDraft) (*dto.ProductRecord, error) {
	if errs := requiredFieldErrors(draft); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	product := ToProductModel(draft)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	record := ToProductRecord(product)
	return &record, nil
}

// Update 整体更新商品记录
func (s *ProductService) Update(ctx context.Context, id int64, draft model.ProductDraft) (*dto.ProductRecord, error) {
	if errs := requiredFieldErrors(draft); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ApplyDraft(product, draft)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	record := ToProductRecord(product)
	return &record, nil
}

// Delete 删除商品记录
// 已上传图片尽力清理，失败只记日志不影响删除结果
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil {
		for _, url := range []string{product.ProductImageUrl, product.ShopVisitingCardImageUrl} {
			if url == "" {
				continue
			}
			if err := s.storage.Delete(ctx, url); err != nil {
				logger.L.Warnw("清理商品图片失败", "productId", id, "url", url, "err", err)
			}
		}
	}

	return nil
}

// requiredFieldErrors 服务端兜底校验，规则与表单端一致
func requiredFieldErrors(draft model.ProductDraft) model.ValidationErrors {
	errs := model.ValidationErrors{}
	if draft.Name == "" {
		errs["name"] = "Name is required"
	}
	if draft.Category == "" {
		errs["category"] = "Category is required"
	}
	if draft.Price == "" {
		errs["price"] = "Price is required"
	}
	if draft.ProductImageUrl == "" {
		errs["productImageUrl"] = "Product image is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

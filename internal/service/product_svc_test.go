package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setupProductService(t *testing.T, storage StorageProvider) *ProductService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return NewProductService(repository.NewProductRepository(db), storage)
}

func validDraft() model.ProductDraft {
	return model.ProductDraft{
		Name:            "Dog Leash",
		Category:        "Pet Supplies",
		Price:           "19.99",
		Description:     "Strong nylon leash",
		ProductImageUrl: "https://cdn/p.png",
		PackageNumber:   "4213",
		SellerInfo:      model.SellerInfo{Name: "Alice", Wechat: "alice_wx"},
	}
}

// ==================== CRUD ====================

func TestProductService_CreateGet(t *testing.T) {
	svc := setupProductService(t, nil)

	record, err := svc.Create(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("创建后应分配 id")
	}

	got, err := svc.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.Name != "Dog Leash" || got.PackageNumber != "4213" {
		t.Errorf("查询结果异常: %+v", got)
	}
	if got.SellerInfo.Wechat != "alice_wx" {
		t.Errorf("卖家信息丢失: %+v", got.SellerInfo)
	}

	if _, err := svc.Get(context.Background(), 999); err != ErrNotFound {
		t.Errorf("不存在的 id 应返回 ErrNotFound, got %v", err)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := setupProductService(t, nil)

	draft := validDraft()
	draft.Name = ""
	draft.ProductImageUrl = ""

	_, err := svc.Create(context.Background(), draft)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("缺字段应返回 ValidationError, got %v", err)
	}
	if verr.Errors["name"] != "Name is required" {
		t.Errorf("name 错误信息 = %q", verr.Errors["name"])
	}
	if verr.Errors["productImageUrl"] != "Product image is required" {
		t.Errorf("productImageUrl 错误信息 = %q", verr.Errors["productImageUrl"])
	}
}

func TestProductService_Update(t *testing.T) {
	svc := setupProductService(t, nil)

	record, _ := svc.Create(context.Background(), validDraft())

	draft := validDraft()
	draft.Name = "Cat Tree"
	draft.Description = ""
	draft.IsSampleCollected = true

	updated, err := svc.Update(context.Background(), record.ID, draft)
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.ID != record.ID {
		t.Errorf("更新后 id 应不变: %d -> %d", record.ID, updated.ID)
	}
	if updated.Name != "Cat Tree" || !updated.IsSampleCollected {
		t.Errorf("更新结果异常: %+v", updated)
	}
	// 整体替换语义：清空的字段也生效
	if updated.Description != "" {
		t.Error("PUT 应整体覆盖字段")
	}

	if _, err := svc.Update(context.Background(), 999, validDraft()); err != ErrNotFound {
		t.Errorf("更新不存在的记录应返回 ErrNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	storage := &fakeStorage{}
	svc := setupProductService(t, storage)

	draft := validDraft()
	draft.ShopVisitingCardImageUrl = "https://cdn/c.png"
	record, _ := svc.Create(context.Background(), draft)

	if err := svc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.Get(context.Background(), record.ID); err != ErrNotFound {
		t.Error("删除后应查不到记录")
	}

	// 两张图都尽力清理
	if len(storage.deletes) != 2 {
		t.Errorf("应清理 2 个对象, got %v", storage.deletes)
	}

	if err := svc.Delete(context.Background(), 999); err != ErrNotFound {
		t.Errorf("删除不存在的记录应返回 ErrNotFound, got %v", err)
	}
}

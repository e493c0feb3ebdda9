package model

import (
	"encoding/json"
	"math/rand"
	"strconv"
)

// ==================== 槽位常量 ====================

// Slot 图片上传槽位标识
// 槽位名同时充当存储 key 的命名空间段
type Slot string

const (
	SlotProductImage     Slot = "productImageUrl"
	SlotShopVisitingCard Slot = "shopVisitingCardImageUrl"
)

// Slots 全部槽位，新增图片字段时在这里注册
var Slots = []Slot{SlotProductImage, SlotShopVisitingCard}

// Valid 是否为已注册槽位
func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// ==================== JSON 类型 ====================

// Price 价格，内部按字符串保存
// 历史数据里既有 "5" 也有 5，解码时两种都接受
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

// ==================== 校验错误 ====================

// ValidationErrors 字段名 -> 提示信息
// 每次校验整体重建，不做增量合并
type ValidationErrors map[string]string

// ==================== 草稿 ====================

// ProductDraft 编辑中的商品记录（内存态，未确认）
type ProductDraft struct {
	Name                     string     `json:"name"`
	Category                 string     `json:"category"`
	Price                    Price      `json:"price"`
	Description              string     `json:"description"`
	ProductImageUrl          string     `json:"productImageUrl"`
	ShopVisitingCardImageUrl string     `json:"shopVisitingCardImageUrl"`
	IsSampleCollected        bool       `json:"isSampleCollected"`
	PackageNumber            string     `json:"packageNumber"`
	SellerInfo               SellerInfo `json:"sellerInfo"`
}

// NewProductDraft 创建空白草稿并分配新的包裹编号
func NewProductDraft() ProductDraft {
	return ProductDraft{
		PackageNumber: NewPackageNumber(),
	}
}

// NewPackageNumber 生成 4 位包裹编号，[1000, 9999]
func NewPackageNumber() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// ImageURL 读取指定槽位的图片地址
func (d *ProductDraft) ImageURL(slot Slot) string {
	switch slot {
	case SlotProductImage:
		return d.ProductImageUrl
	case SlotShopVisitingCard:
		return d.ShopVisitingCardImageUrl
	}
	return ""
}

// SetImageURL 写入指定槽位的图片地址，只动目标字段
func (d *ProductDraft) SetImageURL(slot Slot, url string) {
	switch slot {
	case SlotProductImage:
		d.ProductImageUrl = url
	case SlotShopVisitingCard:
		d.ShopVisitingCardImageUrl = url
	}
}

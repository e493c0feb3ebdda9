package model

import (
	"encoding/json"
	"strconv"
	"testing"
)

// ==================== 包裹编号 ====================

func TestNewPackageNumber_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		pkg := NewPackageNumber()
		if len(pkg) != 4 {
			t.Fatalf("包裹编号长度 = %d, want 4 (%s)", len(pkg), pkg)
		}
		n, err := strconv.Atoi(pkg)
		if err != nil {
			t.Fatalf("包裹编号不是数字: %s", pkg)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("包裹编号超出范围: %d", n)
		}
	}
}

func TestNewProductDraft(t *testing.T) {
	draft := NewProductDraft()

	if draft.PackageNumber == "" {
		t.Error("新草稿应当分配包裹编号")
	}
	if draft.Name != "" || draft.Category != "" || draft.Price != "" {
		t.Error("新草稿的业务字段应当为空")
	}
	if draft.IsSampleCollected {
		t.Error("新草稿 isSampleCollected 应当为 false")
	}
}

// ==================== 价格解码 ====================

func TestPrice_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		input string
		want  Price
	}{
		{`"5"`, "5"},
		{`"19.99"`, "19.99"},
		{`5`, "5"},
		{`19.99`, "19.99"},
		{`""`, ""},
	}

	for _, c := range cases {
		var p Price
		if err := json.Unmarshal([]byte(c.input), &p); err != nil {
			t.Errorf("解码 %s 失败: %v", c.input, err)
			continue
		}
		if p != c.want {
			t.Errorf("解码 %s = %q, want %q", c.input, p, c.want)
		}
	}

	var p Price
	if err := json.Unmarshal([]byte(`true`), &p); err == nil {
		t.Error("布尔值应当解码失败")
	}
}

// ==================== 槽位 ====================

func TestSlot_Valid(t *testing.T) {
	if !SlotProductImage.Valid() {
		t.Error("productImageUrl 应当是合法槽位")
	}
	if !SlotShopVisitingCard.Valid() {
		t.Error("shopVisitingCardImageUrl 应当是合法槽位")
	}
	if Slot("avatar").Valid() {
		t.Error("未注册槽位不应通过校验")
	}
}

func TestProductDraft_SlotIsolation(t *testing.T) {
	var draft ProductDraft

	draft.SetImageURL(SlotProductImage, "https://cdn/p.png")
	if draft.ShopVisitingCardImageUrl != "" {
		t.Error("写入商品图不应影响名片图")
	}

	draft.SetImageURL(SlotShopVisitingCard, "https://cdn/c.png")
	if draft.ImageURL(SlotProductImage) != "https://cdn/p.png" {
		t.Error("写入名片图不应影响商品图")
	}

	draft.SetImageURL(SlotProductImage, "")
	if draft.ImageURL(SlotShopVisitingCard) != "https://cdn/c.png" {
		t.Error("清空商品图不应影响名片图")
	}
}

// ==================== JSON 字段名 ====================

func TestProductDraft_JSONKeys(t *testing.T) {
	draft := ProductDraft{Name: "Dog Leash", PackageNumber: "4213"}
	data, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	var m map[string]interface{}
	json.Unmarshal(data, &m)

	for _, key := range []string{
		"name", "category", "price", "description",
		"productImageUrl", "shopVisitingCardImageUrl",
		"isSampleCollected", "packageNumber", "sellerInfo",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("缺少字段 %s", key)
		}
	}
}

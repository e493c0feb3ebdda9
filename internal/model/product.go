package model

// SellerInfo 卖家信息子记录
// 始终存在，字段允许为空字符串，避免前端那种"可能缺失"的嵌套判空
type SellerInfo struct {
	Name        string `gorm:"size:100;column:seller_name" json:"name"`
	Wechat      string `gorm:"size:100;column:seller_wechat" json:"wechat"`
	Email       string `gorm:"size:100;column:seller_email" json:"email"`
	OnlineStore string `gorm:"size:255;column:seller_online_store" json:"onlineStore"`
}

// Product 采购商品记录（catalog 服务端持久化模型）
type Product struct {
	BaseModel

	// --- 商品基本信息 ---
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Category    string `gorm:"size:100;index" json:"category"`
	Price       Price  `gorm:"size:50" json:"price"`
	Description string `gorm:"type:text" json:"description"`

	// --- 图片 ---
	// 永远是完整可访问的 URL，不存储本地/临时引用
	ProductImageUrl          string `gorm:"size:512" json:"productImageUrl"`
	ShopVisitingCardImageUrl string `gorm:"size:512" json:"shopVisitingCardImageUrl"`

	// --- 采购状态 ---
	IsSampleCollected bool `gorm:"default:false" json:"isSampleCollected"`

	// --- 包裹编号 ---
	// 草稿创建时生成一次，[1000,9999]，之后不再变化
	PackageNumber string `gorm:"size:10;index" json:"packageNumber"`

	// --- 卖家信息 ---
	SellerInfo SellerInfo `gorm:"embedded" json:"sellerInfo"`
}

func (Product) TableName() string {
	return "products"
}

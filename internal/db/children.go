package db

// 子集合模型。每条记录归属于一个父内容（parent_type + parent_id），
// order_index 为稠密的零起始展示顺序，随父内容的每次保存整体重建。

// GalleryItem 定义图库条目模型
type GalleryItem struct {
	Base
	ParentType string `gorm:"size:20;not null" json:"-"`
	ParentID   uint   `gorm:"index;not null" json:"-"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
	ImageURL   string `gorm:"not null" json:"imageUrl"`
	Caption    string `json:"caption"`
	AltText    string `json:"altText"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// DownloadItem 定义下载附件模型
type DownloadItem struct {
	Base
	ParentType string `gorm:"size:20;not null" json:"-"`
	ParentID   uint   `gorm:"index;not null" json:"-"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
	Title      string `json:"title"`
	URL        string `gorm:"not null" json:"url"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
}

// FAQItem 定义常见问题模型
type FAQItem struct {
	Base
	ParentType string `gorm:"size:20;not null" json:"-"`
	ParentID   uint   `gorm:"index;not null" json:"-"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
	Question   string `gorm:"not null" json:"question"`
	Answer     string `gorm:"type:text" json:"answer"`
}

// TableName 自定义表名以保持命名一致。
func (FAQItem) TableName() string {
	return "faq_items"
}

// Feature 定义服务或项目的亮点条目模型
type Feature struct {
	Base
	ParentType  string `gorm:"size:20;not null" json:"-"`
	ParentID    uint   `gorm:"index;not null" json:"-"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// Package 定义服务套餐模型，Highlights 以换行分隔存储
type Package struct {
	Base
	ParentType  string `gorm:"size:20;not null" json:"-"`
	ParentID    uint   `gorm:"index;not null" json:"-"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	BillingNote string `json:"billingNote"`
	Highlights  string `gorm:"type:text" json:"highlights"`
}

// ProblemItem 定义服务页"痛点"条目模型
type ProblemItem struct {
	Base
	ParentType  string `gorm:"size:20;not null" json:"-"`
	ParentID    uint   `gorm:"index;not null" json:"-"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
}

// SolutionItem 定义服务页"解法"条目模型
type SolutionItem struct {
	Base
	ParentType  string `gorm:"size:20;not null" json:"-"`
	ParentID    uint   `gorm:"index;not null" json:"-"`
	OrderIndex  int    `gorm:"not null;default:0" json:"orderIndex"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
}

// Testimonial 定义客户评价模型
type Testimonial struct {
	Base
	ParentType string `gorm:"size:20;not null" json:"-"`
	ParentID   uint   `gorm:"index;not null" json:"-"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
	Author     string `gorm:"not null" json:"author"`
	Role       string `json:"role"`
	Company    string `json:"company"`
	Quote      string `gorm:"type:text" json:"quote"`
	AvatarURL  string `json:"avatarUrl"`
}

// RelatedLink 定义内容之间的关联引用，目标在同步时由 slug 解析为 id
type RelatedLink struct {
	Base
	ParentType string `gorm:"size:20;not null" json:"-"`
	ParentID   uint   `gorm:"index;not null" json:"-"`
	OrderIndex int    `gorm:"not null;default:0" json:"orderIndex"`
	TargetType string `gorm:"size:20;not null" json:"targetType"`
	TargetID   uint   `gorm:"not null" json:"-"`
}

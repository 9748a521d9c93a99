package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryAccessories Category = "Accessories"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryOther       Category = "Other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryAccessories,
		CategoryHome, CategorySports, CategoryOther:
		return true
	}
	return false
}

// Condition describes the physical state of a listed item.
type Condition string

const (
	ConditionNew       Condition = "New"
	ConditionLikeNew   Condition = "Like New"
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionPoor      Condition = "Poor"
)

type Review struct {
	UserName  string    `bson:"userName" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name            string              `bson:"name" json:"name"`
	Slug            string              `bson:"slug" json:"slug"`
	Description     string              `bson:"description" json:"description"`
	LongDescription string              `bson:"longDescription" json:"longDescription"`
	Price           float64             `bson:"price" json:"price"`
	OriginalPrice   *float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Image           string              `bson:"image" json:"image"`
	Images          []string            `bson:"images" json:"images"`
	Category        Category            `bson:"category" json:"category"`
	Brand           string              `bson:"brand" json:"brand"`
	Featured        bool                `bson:"featured" json:"featured"`
	InStock         bool                `bson:"inStock" json:"inStock"`
	StockQuantity   int                 `bson:"stockQuantity" json:"stockQuantity"`
	Condition       Condition           `bson:"condition" json:"condition"`
	Seller          *primitive.ObjectID `bson:"seller,omitempty" json:"seller,omitempty"`
	SellerName      string              `bson:"sellerName" json:"sellerName"`
	SellerContact   string              `bson:"sellerContact" json:"sellerContact"`
	IsUserProduct   bool                `bson:"isUserProduct" json:"isUserProduct"`
	Rating          float64             `bson:"rating" json:"rating"`
	Reviews         []Review            `bson:"reviews" json:"reviews"`
	ReviewCount     int                 `bson:"reviewCount" json:"-"`
	Specifications  map[string]string   `bson:"specifications" json:"specifications"`
	Tags            []string            `bson:"tags" json:"tags"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}

// Discount is the absolute markdown against the original price, zero when
// the product was never discounted or the listed price is not a reduction.
func (p *Product) Discount() float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	return *p.OriginalPrice - p.Price
}

// AverageRating recomputes the mean of the embedded reviews' ratings.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range p.Reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(p.Reviews))
}

// SortByDiscount orders products by descending markdown. Markdown is a
// derived value the store cannot sort on, so listings sorted this way are
// sorted in memory after retrieval.
func SortByDiscount(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Discount() > products[j].Discount()
	})
}

// ProductSummary is the denormalized slice of a product embedded in order
// and purchase views.
type ProductSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Image string             `json:"image"`
	Price float64            `json:"price"`
	Slug  string             `json:"slug"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price,
		Slug:  p.Slug,
	}
}

package domain

// ProductSort is the closed set of catalog orderings.
type ProductSort string

const (
	SortNewest     ProductSort = "newest"
	SortOldest     ProductSort = "oldest"
	SortPriceLow   ProductSort = "price-low"
	SortPriceHigh  ProductSort = "price-high"
	SortRating     ProductSort = "rating"
	SortRatingLow  ProductSort = "rating-low"
	SortName       ProductSort = "name"
	SortNameDesc   ProductSort = "name-desc"
	SortReviews    ProductSort = "reviews"
	SortDiscount   ProductSort = "discount"
)

// ParseProductSort maps a query-string value onto the sort enumeration,
// falling back to newest-first for anything unrecognized.
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortOldest, SortPriceLow, SortPriceHigh, SortRating, SortRatingLow,
		SortName, SortNameDesc, SortReviews, SortDiscount:
		return ProductSort(s)
	}
	return SortNewest
}

// ProductFilter is the conjunctive filter specification over the catalog.
// Zero values (nil pointers, empty strings) mean "not filtered".
type ProductFilter struct {
	Category      string
	Brand         string
	Condition     string
	MinRating     *float64
	MinPrice      *float64
	MaxPrice      *float64
	InStock       *bool
	IsUserProduct *bool
	HasDiscount   bool
	Tag           string
	Search        string
}

package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
)

type seedEntry struct {
	name          string
	description   string
	price         float64
	originalPrice float64
	category      domain.Category
	brand         string
	featured      bool
	tags          []string
}

var seedEntries = []seedEntry{
	{"Wireless Noise-Cancelling Headphones", "Over-ear headphones with 30 hour battery life and active noise cancellation.", 199.99, 249.99, domain.CategoryElectronics, "SoundCore", true, []string{"audio", "wireless", "headphones"}},
	{"4K Action Camera", "Waterproof action camera shooting 4K at 60fps with image stabilisation.", 149.00, 0, domain.CategoryElectronics, "TrailCam", false, []string{"camera", "outdoor"}},
	{"Smart Fitness Watch", "Heart rate, sleep and workout tracking with a week of battery.", 89.99, 129.99, domain.CategoryElectronics, "PulseFit", true, []string{"wearable", "fitness"}},
	{"Mechanical Keyboard", "Tenkeyless mechanical keyboard with hot-swappable switches.", 74.50, 0, domain.CategoryElectronics, "KeyForge", false, []string{"keyboard", "desk"}},
	{"Classic Denim Jacket", "Mid-wash denim jacket with a relaxed fit.", 59.99, 79.99, domain.CategoryFashion, "UrbanThread", true, []string{"jacket", "denim"}},
	{"Linen Summer Shirt", "Breathable linen shirt in off-white.", 34.99, 0, domain.CategoryFashion, "UrbanThread", false, []string{"shirt", "summer"}},
	{"Running Sneakers", "Lightweight road running shoes with responsive foam midsole.", 94.99, 119.99, domain.CategoryFashion, "Stride", false, []string{"shoes", "running"}},
	{"Leather Messenger Bag", "Full-grain leather bag with padded laptop sleeve.", 129.00, 0, domain.CategoryAccessories, "Imperial", true, []string{"bag", "leather"}},
	{"Polarised Sunglasses", "UV400 polarised lenses in a matte black frame.", 24.99, 39.99, domain.CategoryAccessories, "ShadeWorks", false, []string{"sunglasses"}},
	{"Minimalist Wallet", "Slim RFID-blocking card wallet in aluminium.", 19.99, 0, domain.CategoryAccessories, "Imperial", false, []string{"wallet"}},
	{"Cast Iron Skillet", "Pre-seasoned 12 inch cast iron skillet.", 39.99, 54.99, domain.CategoryHome, "HearthWare", true, []string{"kitchen", "cookware"}},
	{"Aromatherapy Diffuser", "Ultrasonic essential oil diffuser with warm light modes.", 29.99, 0, domain.CategoryHome, "CalmNest", false, []string{"home", "wellness"}},
	{"Weighted Blanket", "7kg weighted blanket with removable washable cover.", 64.99, 89.99, domain.CategoryHome, "CalmNest", false, []string{"bedding"}},
	{"Adjustable Dumbbell Set", "Pair of dumbbells adjustable from 2.5 to 25kg.", 219.00, 279.00, domain.CategorySports, "IronPeak", true, []string{"gym", "weights"}},
	{"Yoga Mat", "Non-slip 6mm yoga mat with carry strap.", 24.99, 0, domain.CategorySports, "IronPeak", false, []string{"yoga", "fitness"}},
	{"Board Game Night Bundle", "Three party board games for groups of four to eight.", 44.99, 59.99, domain.CategoryOther, "TableTop Co", false, []string{"games", "party"}},
}

var seedReviewers = []string{"Aarav", "Meera", "Daniel", "Sofia", "Ravi", "Hana"}

// seedProducts builds the demo catalog loaded by ProductService.Seed. Stock
// levels and review sets are randomised on every run.
func seedProducts() []domain.Product {
	now := time.Now()
	products := make([]domain.Product, 0, len(seedEntries))

	for i, e := range seedEntries {
		p := domain.Product{
			Name:            e.name,
			Slug:            GenerateSlug(e.name),
			Description:     e.description,
			LongDescription: e.description,
			Price:           e.price,
			Image:           fmt.Sprintf("https://picsum.photos/seed/imperialhub-%d/600/400", i+1),
			Category:        e.category,
			Brand:           e.brand,
			Featured:        e.featured,
			StockQuantity:   10 + rand.Intn(100),
			Condition:       domain.ConditionNew,
			Tags:            e.tags,
			Specifications:  map[string]string{"Brand": e.brand},
			CreatedAt:       now.Add(-time.Duration(len(seedEntries)-i) * time.Hour),
		}
		p.Images = []string{p.Image}
		p.InStock = p.StockQuantity > 0
		if e.originalPrice > 0 {
			original := e.originalPrice
			p.OriginalPrice = &original
		}

		p.Reviews = seedReviews(now)
		p.ReviewCount = len(p.Reviews)
		p.Rating = p.AverageRating()

		products = append(products, p)
	}

	return products
}

func seedReviews(now time.Time) []domain.Review {
	reviews := make([]domain.Review, 0, 5)
	count := 2 + rand.Intn(4)
	for i := 0; i < count; i++ {
		reviews = append(reviews, domain.Review{
			UserName:  seedReviewers[rand.Intn(len(seedReviewers))],
			Rating:    4 + rand.Intn(2),
			Comment:   "Great value, would buy again.",
			CreatedAt: now.AddDate(0, 0, -rand.Intn(60)),
		})
	}
	return reviews
}

package voyagekit

import "github.com/voyagekit/voyagekit.go/pkg/mirror"

// Entity describes one record type's REST surface: its path segment under
// /api/admin, the JSON key carrying its server-side count, the filename
// prefix for exports, and the search-field precedence of its dashboard page.
type Entity struct {
	Name         string
	Namespace    mirror.Namespace
	TotalKey     string
	ExportPrefix string

	// SearchFields is ordered by precedence: when several filter inputs are
	// non-empty, only the first matching field is sent to the query
	// endpoint. Secondary filters are ignored, matching the portal.
	SearchFields []string
}

var (
	EntityHotel = Entity{
		Name:         "hotel",
		Namespace:    mirror.Hotels,
		TotalKey:     "totalHotels",
		ExportPrefix: "hotels",
		SearchFields: []string{"hotel", "country", "tier"},
	}
	EntityFoodOption = Entity{
		Name:         "food",
		Namespace:    mirror.FoodOptions,
		TotalKey:     "totalFoods",
		ExportPrefix: "food_options",
		SearchFields: []string{"food", "category", "mealType"},
	}
	EntityLocation = Entity{
		Name:         "location",
		Namespace:    mirror.Locations,
		TotalKey:     "totalLocations",
		ExportPrefix: "locations",
		SearchFields: []string{"location", "country", "season"},
	}
	EntityPackage = Entity{
		Name:         "package",
		Namespace:    mirror.Packages,
		TotalKey:     "totalPackages",
		ExportPrefix: "packages",
		SearchFields: []string{"name", "price", "days"},
	}
	EntityBooking = Entity{
		Name:         "booking",
		Namespace:    mirror.Bookings,
		TotalKey:     "totalBookings",
		ExportPrefix: "bookings",
		SearchFields: []string{"name", "email", "status"},
	}
	EntityReview = Entity{
		Name:         "review",
		Namespace:    mirror.Reviews,
		TotalKey:     "totalReviews",
		ExportPrefix: "reviews",
		SearchFields: []string{"name", "rating"},
	}
)

// Entities lists every entity the admin API exposes.
func Entities() []Entity {
	return []Entity{
		EntityHotel, EntityFoodOption, EntityLocation,
		EntityPackage, EntityBooking, EntityReview,
	}
}

// EntityByName looks an entity up by its path segment.
func EntityByName(name string) (Entity, bool) {
	for _, e := range Entities() {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// Hotel is one bookable property.
type Hotel struct {
	ID            string   `json:"_id"`
	Name          string   `json:"hotel"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	Tier          string   `json:"tier"`
	PricePerNight int      `json:"pricePerNight"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
}

// FoodOption is one meal choice attachable to a package.
type FoodOption struct {
	ID       string `json:"_id"`
	Name     string `json:"food"`
	Category string `json:"category"`
	MealType string `json:"mealType"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
}

// ItineraryLocation is one stop on a package itinerary.
type ItineraryLocation struct {
	ID          string   `json:"_id"`
	Name        string   `json:"location"`
	Country     string   `json:"country"`
	Season      string   `json:"season"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Package is a composed travel offering referencing hotels, itinerary
// locations and food options by id.
type Package struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	Days          int      `json:"days"`
	Nights        int      `json:"nights"`
	Summary       string   `json:"summary"`
	HotelIDs      []string `json:"hotelIds"`
	LocationIDs   []string `json:"locationIds"`
	FoodOptionIDs []string `json:"foodIds"`
}

// Booking is one customer reservation of a package.
type Booking struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PackageID  string `json:"packageId"`
	Travellers int    `json:"travellers"`
	Status     string `json:"status"`
	BookedAt   string `json:"bookedAt"`
}

// Review is customer feedback on a package.
type Review struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	PackageID string `json:"packageId"`
	CreatedAt string `json:"createdAt"`
}

// DashboardStats are the per-entity counts shown on the landing page.
type DashboardStats struct {
	TotalHotels      int `json:"totalHotels"`
	TotalFoodOptions int `json:"totalFoods"`
	TotalLocations   int `json:"totalLocations"`
	TotalPackages    int `json:"totalPackages"`
	TotalBookings    int `json:"totalBookings"`
	TotalReviews     int `json:"totalReviews"`
}

// The [voyagekit] package is the Go client SDK for the travel-booking admin
// API: typed remote data access for hotels, food options, itinerary
// locations, packages, bookings and reviews, a freshness-window query cache
// with request deduplication, and a mirror store shared across UI regions.
//
// # Layout
//
// The root package carries the client surface: [Client], one [Collection]
// per entity, multipart [Form] submissions and spreadsheet exports.
// Subpackages own one concern each:
//
//   - [github.com/voyagekit/voyagekit.go/pkg/pagectrl] drives the
//     list/search/pagination flow of a dashboard page
//   - [github.com/voyagekit/voyagekit.go/pkg/querycache] dedupes and caches
//     reads keyed by (namespace, operation, params)
//   - [github.com/voyagekit/voyagekit.go/pkg/mirror] is the shared
//     client-side copy of server data
//   - [github.com/voyagekit/voyagekit.go/pkg/live] invalidates cached reads
//     from the backend's websocket change feed
//
// # Getting started
//
//	c, err := voyagekit.New("http://localhost:5000")
//	if err != nil { ... }
//	hotels := voyagekit.NewController(c.Hotels())
//	rows, err := hotels.Load(ctx)
package voyagekit

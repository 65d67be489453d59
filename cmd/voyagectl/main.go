package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/voyagekit/voyagekit.go"
	"github.com/voyagekit/voyagekit.go/pkg/cache"
	"github.com/voyagekit/voyagekit.go/pkg/live"
	"github.com/voyagekit/voyagekit.go/pkg/logger"
	"github.com/voyagekit/voyagekit.go/pkg/mirror"
)

type runOpts struct {
	page   int
	field  string
	value  string
	id     string
	export string
	outDir string
}

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	var (
		entityName = flag.String("entity", "hotel", "entity to operate on: hotel, food, location, package, booking, review")
		page       = flag.Int("page", 1, "page number")
		field      = flag.String("field", "", "search field name (see the entity's search fields)")
		value      = flag.String("value", "", "search value")
		id         = flag.String("id", "", "fetch one record by id instead of a page")
		export     = flag.String("export", "", "download a spreadsheet export: all or current")
		outDir     = flag.String("out", ".", "directory for exports")
		watch      = flag.Bool("watch", false, "follow the live change feed and log invalidations")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		zl = zl.Level(zerolog.InfoLevel)
	}
	log := logger.FromZerolog(zl)

	baseURL := voyagekit.GetEnvOrDefault("VOYAGE_API_URL", "http://localhost:5000")
	opts := []voyagekit.Option{voyagekit.WithLogger(log)}
	if token := os.Getenv("VOYAGE_API_TOKEN"); token != "" {
		opts = append(opts, voyagekit.WithToken(token))
	}
	if addr := os.Getenv("VOYAGE_REDIS_ADDR"); addr != "" {
		redisCache := cache.NewRedis(addr, os.Getenv("VOYAGE_REDIS_PASSWORD"), 0)
		opts = append(opts, voyagekit.WithCacheBackend(redisCache))
	}

	c, err := voyagekit.New(baseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *watch {
		if err := runWatch(ctx, c, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ro := runOpts{
		page:   *page,
		field:  *field,
		value:  *value,
		id:     *id,
		export: *export,
		outDir: *outDir,
	}

	switch *entityName {
	case voyagekit.EntityHotel.Name:
		err = run(ctx, c.Hotels(), ro)
	case voyagekit.EntityFoodOption.Name:
		err = run(ctx, c.FoodOptions(), ro)
	case voyagekit.EntityLocation.Name:
		err = run(ctx, c.Locations(), ro)
	case voyagekit.EntityPackage.Name:
		err = run(ctx, c.Packages(), ro)
	case voyagekit.EntityBooking.Name:
		err = run(ctx, c.Bookings(), ro)
	case voyagekit.EntityReview.Name:
		err = run(ctx, c.Reviews(), ro)
	default:
		err = fmt.Errorf("unknown entity %q", *entityName)
		flag.Usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run[T any](ctx context.Context, col *voyagekit.Collection[T], opts runOpts) error {
	if opts.export != "" {
		path, err := col.SaveExport(ctx, voyagekit.ExportScope(opts.export), opts.outDir)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	ctrl := voyagekit.NewController(col)

	if opts.id != "" {
		record, err := ctrl.LoadDetail(ctx, opts.id)
		if err != nil {
			return err
		}
		defer ctrl.CloseDetail()
		return printJSON(record)
	}

	if opts.field != "" {
		ctrl.SetFilter(opts.field, opts.value)
	}
	ctrl.SetPage(opts.page)

	rows, err := ctrl.Load(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := printJSON(row); err != nil {
			return err
		}
	}
	fmt.Printf("page %d of %d\n", ctrl.Page(), ctrl.TotalPages())
	return nil
}

func runWatch(ctx context.Context, c *voyagekit.Client, log logger.Logger) error {
	feedURL := voyagekit.GetEnvOrDefault("VOYAGE_LIVE_URL", "ws://localhost:5000/api/admin/live")
	feed, err := live.Dial(feedURL, live.WithLogger(log))
	if err != nil {
		return err
	}
	defer feed.Close()

	namespaces := make(map[string]mirror.Namespace)
	for _, e := range voyagekit.Entities() {
		namespaces[e.Name] = e.Namespace
	}

	log.Info("watching change feed", "url", feedURL)
	return feed.Invalidate(ctx, c.Cache(), namespaces)
}

func printJSON(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

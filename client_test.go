package voyagekit_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/voyagekit.go"
	"github.com/voyagekit/voyagekit.go/pkg/mirror"
	"github.com/voyagekit/voyagekit.go/pkg/rest"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...voyagekit.Option) *voyagekit.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := voyagekit.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := voyagekit.New("")
	require.Error(t, err)
}

func TestListPaged(t *testing.T) {
	var gotPath, gotPage string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		fmt.Fprint(w, `{"data":[{"_id":"h1","hotel":"Taj Palace","country":"India","pricePerNight":2500}],"totalHotels":42}`)
	}))

	res, err := c.Hotels().List(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "/api/admin/hotel", gotPath)
	assert.Equal(t, "1", gotPage)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "h1", res.Data[0].ID)
	assert.Equal(t, "Taj Palace", res.Data[0].Name)
	assert.Equal(t, 2500, res.Data[0].PricePerNight)
	assert.Equal(t, 42, res.Total, "total must be the server count, not the page length")
}

func TestListPageDefaultsToOne(t *testing.T) {
	var gotPage string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		fmt.Fprint(w, `{"data":[],"totalHotels":0}`)
	}))

	_, err := c.Hotels().List(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
}

func TestQueryByField(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"data":[{"_id":"h1","hotel":"Taj Palace"}],"totalHotels":1}`)
	}))

	res, err := c.Hotels().Query(context.Background(), "hotel", "Taj", 1)
	require.NoError(t, err)

	assert.Equal(t, "/api/admin/hotel/query", gotPath)
	assert.Equal(t, []string{"Taj"}, gotQuery["hotel"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, 1, res.Total)
}

func TestQueryRequiresField(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := c.Hotels().Query(context.Background(), "", "Taj", 1)
	require.Error(t, err)
}

func TestGetUnwrapsObjectShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/hotel/h1", r.URL.Path)
		fmt.Fprint(w, `{"data":{"_id":"h1","hotel":"Taj Palace"}}`)
	}))

	hotel, err := c.Hotels().Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "Taj Palace", hotel.Name)
}

func TestGetUnwrapsArrayShape(t *testing.T) {
	// some endpoints wrap the detail record in a one-element array
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"_id":"h1","hotel":"Taj Palace"}]}`)
	}))

	hotel, err := c.Hotels().Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "Taj Palace", hotel.Name)
}

func TestGetEmptyArrayIsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))

	_, err := c.Hotels().Get(context.Background(), "missing")
	require.ErrorIs(t, err, voyagekit.ErrNotFound)
}

func TestGetNullIsNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null}`)
	}))

	_, err := c.Hotels().Get(context.Background(), "missing")
	require.ErrorIs(t, err, voyagekit.ErrNotFound)
}

func TestPickerDefaultLimit(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/hotel/picker", r.URL.Path)
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"data":[{"_id":"h1"},{"_id":"h2"}]}`)
	}))

	items, err := c.Hotels().Picker(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, []string{"50"}, gotQuery["limit"])
	assert.Equal(t, []string{""}, gotQuery["q"])
}

func TestCreateSubmitsMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/hotel/create-hotel", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Test Hotel", r.FormValue("hotel"))
		assert.Equal(t, "Pune", r.FormValue("city"))
		assert.Equal(t, "2500", r.FormValue("pricePerNight"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "front.jpg", header.Filename)

		fmt.Fprint(w, `{"data":{"_id":"h9","hotel":"Test Hotel","city":"Pune","pricePerNight":2500}}`)
	}))

	form := voyagekit.NewForm().
		Set("hotel", "Test Hotel").
		Set("city", "Pune").
		SetInt("pricePerNight", 2500).
		AddFile("image", "front.jpg", strings.NewReader("jpegbytes"))

	hotel, err := c.Hotels().Create(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "h9", hotel.ID)
	assert.Equal(t, 2500, hotel.PricePerNight)
}

func TestUpdateHitsUpdatePath(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"data":{"_id":"h1","hotel":"Renamed"}}`)
	}))

	form := voyagekit.NewForm().Set("hotel", "Renamed")
	hotel, err := c.Hotels().Update(context.Background(), "h1", form)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/admin/hotel/update-hotel/h1", gotPath)
	assert.Equal(t, "Renamed", hotel.Name)
}

func TestReadFailureSurfacesAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"tier must be one of budget, standard, luxury"}`)
	}))

	_, err := c.Hotels().List(context.Background(), 1)
	require.Error(t, err)

	var apiErr *rest.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "tier must be one of")
}

func TestSaveExportFilename(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/hotel/export", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("type"))
		w.Write([]byte("spreadsheet-bytes"))
	}))

	dir := t.TempDir()
	path, err := c.Hotels().SaveExport(context.Background(), voyagekit.ExportAll, dir)
	require.NoError(t, err)

	want := fmt.Sprintf("hotels_all_%s.xlsx", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, filepath.Base(path))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spreadsheet-bytes", string(blob))
}

func TestExportRejectsUnknownScope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := c.Hotels().Export(context.Background(), "everything")
	require.Error(t, err)
}

func TestDashboardMirrorsStats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/dashboard", r.URL.Path)
		fmt.Fprint(w, `{"data":{"totalHotels":5,"totalBookings":17}}`)
	}))

	stats, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalHotels)
	assert.Equal(t, 17, stats.TotalBookings)

	mirrored, ok := mirror.SingleOf[voyagekit.DashboardStats](c.Store(), mirror.Dashboard)
	require.True(t, ok)
	assert.Equal(t, stats, mirrored)
}

// TestHotelsDashboardScenario walks the documented flow: an unfiltered page 1
// load, then typing "Taj" into the name filter, which resets the page and
// switches to the query endpoint.
func TestHotelsDashboardScenario(t *testing.T) {
	var requests []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path+"?"+r.URL.RawQuery)
		if strings.HasSuffix(r.URL.Path, "/query") {
			fmt.Fprint(w, `{"data":[{"_id":"h1","hotel":"Taj Palace"}],"totalHotels":1}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"_id":"h1","hotel":"Taj Palace"},{"_id":"h2","hotel":"Grand Oasis"}],"totalHotels":23}`)
	}))

	ctrl := voyagekit.NewController(c.Hotels())
	ctx := context.Background()

	rows, err := ctrl.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 23, c.Store().Total(mirror.Hotels))
	assert.Equal(t, 3, ctrl.TotalPages())
	assert.Equal(t, rows, mirror.AllOf[voyagekit.Hotel](c.Store(), mirror.Hotels))

	ctrl.SetPage(2)
	ctrl.SetFilter("hotel", "Taj")
	assert.Equal(t, 1, ctrl.Page(), "filter change must reset to page 1")
	assert.True(t, ctrl.IsSearching())

	rows, err = ctrl.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, c.Store().Total(mirror.Hotels))

	require.Len(t, requests, 2)
	assert.Equal(t, "/api/admin/hotel?page=1", requests[0])
	assert.Contains(t, requests[1], "/api/admin/hotel/query?")
	assert.Contains(t, requests[1], "hotel=Taj")
	assert.Contains(t, requests[1], "page=1")
}

package voyagekit

import (
	"context"

	"github.com/voyagekit/voyagekit.go/pkg/mirror"
	"github.com/voyagekit/voyagekit.go/pkg/querycache"
)

// Dashboard fetches the per-entity counts for the landing page and mirrors
// them into the Dashboard namespace. Served from cache inside the freshness
// window like any other read.
func (c *Client) Dashboard(ctx context.Context) (DashboardStats, error) {
	key := querycache.Key{Namespace: string(mirror.Dashboard), Op: "stats"}
	res, err := querycache.Lookup(ctx, c.cache, key, true,
		func(ctx context.Context) (DashboardStats, error) {
			var out struct {
				Data DashboardStats `json:"data"`
			}
			if err := c.conn.GetJSON(ctx, "/api/admin/dashboard", nil, &out); err != nil {
				return DashboardStats{}, err
			}
			return out.Data, nil
		})
	if err != nil {
		return DashboardStats{}, err
	}
	c.store.SetSingle(mirror.Dashboard, res.Data)
	return res.Data, nil
}

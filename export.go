package voyagekit

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ExportScope selects what the export endpoint includes.
type ExportScope string

const (
	ExportAll     ExportScope = "all"
	ExportCurrent ExportScope = "current"
)

func (s ExportScope) valid() bool {
	return s == ExportAll || s == ExportCurrent
}

// Export downloads the entity's dataset as a spreadsheet blob. The blob is
// opaque to the client.
func (col *Collection[T]) Export(ctx context.Context, scope ExportScope) ([]byte, error) {
	if !scope.valid() {
		return nil, fmt.Errorf("voyagekit: invalid export scope %q", scope)
	}
	q := url.Values{}
	q.Set("type", string(scope))
	return col.client.conn.Get(ctx, col.base()+"/export", q)
}

// SaveExport downloads the export and writes it to dir as
// {prefix}_{scope}_{date}.xlsx, returning the written path.
func (col *Collection[T]) SaveExport(ctx context.Context, scope ExportScope, dir string) (string, error) {
	blob, err := col.Export(ctx, scope)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s.xlsx",
		col.entity.ExportPrefix, scope, time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

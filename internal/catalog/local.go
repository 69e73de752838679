package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-demo/internal/domain"
	"golang.org/x/text/currency"
)

// Document is the layout of the static catalog file.
type Document struct {
	Currency string           `json:"currency"`
	Products []domain.Product `json:"products"`
}

// LocalSource reads the catalog from a static JSON document.
type LocalSource struct {
	fsys fs.FS
	name string
}

func NewLocalSource(path string) *LocalSource {
	return NewLocalSourceFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func NewLocalSourceFS(fsys fs.FS, name string) *LocalSource {
	return &LocalSource{
		fsys: fsys,
		name: name,
	}
}

func (s *LocalSource) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}

	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("fs.ReadFile: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Catalog{}, fmt.Errorf("json.Unmarshal[%s]: %w", s.name, err)
	}

	cur := currency.USD
	if doc.Currency != "" {
		cur, err = currency.ParseISO(doc.Currency)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("currency[%s] is not valid: %w", doc.Currency, err)
		}
	}

	catalog, err := domain.NewCatalog(cur, doc.Products)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("domain.NewCatalog: %w", err)
	}

	return catalog, nil
}

// Package catalog reads content catalogs from TOML files and watches them
// for changes.
//
// A catalog is a list of [[item]] tables:
//
//	[[item]]
//	id = "cats"
//	kind = "article"
//	title = "Cats"
//	synopsis = "Small felines"
//	tags = ["animals"]
//
//	[[item]]
//	id = "animals"
//	kind = "set"
//	title = "Animals"
//	featured = true
//	tags = ["EknHomePageTag"]
//	child_tags = ["animals"]
package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/lore/internal/core/domain"
)

// File is the on-disk catalog layout.
type File struct {
	Items []Item `toml:"item"`
}

// Item is one catalog entry.
type Item struct {
	ID        string   `toml:"id"`
	Kind      string   `toml:"kind"`
	Title     string   `toml:"title"`
	Synopsis  string   `toml:"synopsis,omitempty"`
	Body      string   `toml:"body,omitempty"`
	Tags      []string `toml:"tags,omitempty"`
	ChildTags []string `toml:"child_tags,omitempty"`
	Featured  bool     `toml:"featured,omitempty"`
}

// Load reads and parses the catalog at path.
func Load(path string) ([]*domain.ContentRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Parse decodes catalog TOML. Kind defaults to article.
func Parse(data []byte) ([]*domain.ContentRef, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	items := make([]*domain.ContentRef, 0, len(f.Items))
	for i, it := range f.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: missing id: %w", i, domain.ErrInvalidInput)
		}
		kind := domain.ContentKind(it.Kind)
		if it.Kind == "" {
			kind = domain.KindArticle
		}
		if !kind.IsValid() {
			return nil, fmt.Errorf("item %s: %w: %q", it.ID, domain.ErrUnsupportedKind, it.Kind)
		}

		items = append(items, &domain.ContentRef{
			ID:        it.ID,
			Kind:      kind,
			Title:     it.Title,
			Synopsis:  it.Synopsis,
			Body:      it.Body,
			Tags:      it.Tags,
			ChildTags: it.ChildTags,
			Featured:  it.Featured,
		})
	}
	return items, nil
}

// Encode renders items back to catalog TOML.
func Encode(items []*domain.ContentRef) ([]byte, error) {
	f := File{Items: make([]Item, 0, len(items))}
	for _, item := range items {
		f.Items = append(f.Items, Item{
			ID:        item.ID,
			Kind:      item.Kind.String(),
			Title:     item.Title,
			Synopsis:  item.Synopsis,
			Body:      item.Body,
			Tags:      item.Tags,
			ChildTags: item.ChildTags,
			Featured:  item.Featured,
		})
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return data, nil
}

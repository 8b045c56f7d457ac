package domain

// ContentKind identifies what a content item represents.
type ContentKind string

// Content kinds stored in the index.
const (
	// KindArticle is a readable article.
	KindArticle ContentKind = "article"

	// KindSet is a category grouping other items through ChildTags.
	KindSet ContentKind = "set"

	// KindMedia is an image or video shown in a lightbox.
	KindMedia ContentKind = "media"
)

// IsValid returns true if the kind is recognised.
func (k ContentKind) IsValid() bool {
	switch k {
	case KindArticle, KindSet, KindMedia:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ContentKind) String() string {
	return string(k)
}

// HomePageTag marks sets that appear on the home page.
const HomePageTag = "EknHomePageTag"

// ContentRef is a content item owned by the content index.
// Page states hold pointers to it and never copy it.
type ContentRef struct {
	// ID is the stable identity of the item.
	ID string

	// Kind is the item kind.
	Kind ContentKind

	// Title is the human-readable title.
	Title string

	// Synopsis is a short description shown on cards.
	Synopsis string

	// Body is the full article text.
	Body string

	// Tags are the tags this item carries.
	Tags []string

	// ChildTags is the tag filter listing a set's children.
	ChildTags []string

	// Featured sets sort before the rest on the home page.
	Featured bool
}

// HasTag reports whether the item carries the given tag.
func (c *ContentRef) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SortFeaturedFirst returns items with featured ones first.
// Relative order inside each group is preserved.
func SortFeaturedFirst(items []*ContentRef) []*ContentRef {
	sorted := make([]*ContentRef, 0, len(items))
	for _, item := range items {
		if item.Featured {
			sorted = append(sorted, item)
		}
	}
	for _, item := range items {
		if !item.Featured {
			sorted = append(sorted, item)
		}
	}
	return sorted
}

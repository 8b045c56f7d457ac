package domain

const unknownDescription = "Unknown"

// Layout selects how article pages are arranged.
type Layout string

// Available layouts.
const (
	// LayoutA shows articles on their own.
	LayoutA Layout = "A"

	// LayoutB keeps the list the article came from beside it.
	LayoutB Layout = "B"
)

// IsValid returns true if the layout is recognised.
func (l Layout) IsValid() bool {
	return l == LayoutA || l == LayoutB
}

// String returns the string representation.
func (l Layout) String() string {
	return string(l)
}

// Description returns a human-readable description of the layout.
func (l Layout) Description() string {
	switch l {
	case LayoutA:
		return "Article only"
	case LayoutB:
		return "Article with its list"
	default:
		return unknownDescription
	}
}

// IndexBackend identifies the content index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendMemory loads the catalog file into memory.
	IndexBackendMemory IndexBackend = "memory"

	// IndexBackendSQLite reads from an imported SQLite database.
	IndexBackendSQLite IndexBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	return b == IndexBackendMemory || b == IndexBackendSQLite
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendMemory:
		return "In-memory catalog"
	case IndexBackendSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// BrowseSettings configures navigation behaviour.
type BrowseSettings struct {
	// ResultsSize is the page size for search and section queries.
	ResultsSize int

	// Layout selects the article page arrangement.
	Layout Layout
}

// IndexSettings configures the content index.
type IndexSettings struct {
	// Backend selects the index implementation.
	Backend IndexBackend

	// CatalogPath is the TOML catalog file for the memory backend.
	CatalogPath string

	// DataDir holds the SQLite database.
	DataDir string

	// Watch reloads the catalog when the file changes.
	Watch bool

	// Rate limits index queries per second. Zero disables throttling.
	Rate float64

	// Burst is the throttle bucket size.
	Burst int
}

// MetricsSettings configures the metrics recorder.
type MetricsSettings struct {
	// Enabled turns metric recording on.
	Enabled bool

	// Path is the JSON lines file metrics are appended to.
	Path string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// AppID identifies the application in metric payloads.
	AppID string

	// Browse holds navigation settings.
	Browse BrowseSettings

	// Index holds content index settings.
	Index IndexSettings

	// Metrics holds metrics settings.
	Metrics MetricsSettings
}

// AllLayouts returns every article page layout.
func AllLayouts() []Layout {
	return []Layout{LayoutA, LayoutB}
}

// AllIndexBackends returns every index backend.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{IndexBackendMemory, IndexBackendSQLite}
}

// DefaultAppSettings returns settings with sensible defaults.
// Paths are left empty and resolved against the lore home directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AppID: "com.custodia.lore",
		Browse: BrowseSettings{
			ResultsSize: DefaultResultsSize,
			Layout:      LayoutA,
		},
		Index: IndexSettings{
			Backend: IndexBackendMemory,
			Watch:   true,
			Burst:   1,
		},
		Metrics: MetricsSettings{
			Enabled: false,
		},
	}
}

// Validate checks settings for values the application cannot use.
func (s AppSettings) Validate() error {
	if s.Browse.ResultsSize <= 0 {
		return ErrInvalidInput
	}
	if !s.Browse.Layout.IsValid() || !s.Index.Backend.IsValid() {
		return ErrInvalidInput
	}
	if s.Index.Rate < 0 || s.Index.Burst < 0 {
		return ErrInvalidInput
	}
	return nil
}

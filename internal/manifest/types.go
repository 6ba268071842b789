package manifest

// Manifest is the top-level output of an epdconv build.
type Manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	Profile     string            `json:"profile"`
	Palette     string            `json:"palette"`
	Canvas      Size              `json:"canvas"`
	Params      map[string]string `json:"params,omitempty"` // conversion form values
	BasePath    string            `json:"base_path"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Assets      map[string]Asset  `json:"assets"`
	Stats       Stats             `json:"stats"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"` // base seed of the per-image noise streams
}

// Asset describes a single source image and everything written for it.
type Asset struct {
	Original  OriginalInfo `json:"original"`
	Histogram []int        `json:"histogram"` // pixels per palette index
	ElapsedMS int64        `json:"elapsed_ms"`
	Outputs   []Output     `json:"outputs"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Output is one encoded file of an asset.
type Output struct {
	Format string `json:"format"` // "bin", "c", "png"
	Size   int64  `json:"size"`   // bytes on disk
	Hash   string `json:"hash"`   // 16 hex chars of xxhash64
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalOutputs     int   `json:"total_outputs"`
	IndexTotals      []int `json:"index_totals,omitempty"` // histogram summed over assets
	Failed           int   `json:"failed,omitempty"`       // sources that could not be converted
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "epdconv.manifest.json"

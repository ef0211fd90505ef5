package types

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	RenderOptions `yaml:",inline"`

	// OutputDir is the base directory for converted pages in batch mode.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// PNG enables rasterised PNG output alongside the SVG.
	PNG bool `json:"png" yaml:"png"`
}

// BackupConfig holds settings for stages that read a local tablet backup
// (a copy of the device's xochitl data directory).
type BackupConfig struct {
	// BackupDir is the root of the backup (contains <uuid>.metadata,
	// <uuid>.content, and <uuid>/ page directories).
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`
}

// CatalogConfig holds settings for the SQLite backup catalog.
type CatalogConfig struct {
	BackupConfig `yaml:",inline"`

	// CatalogDir is the directory holding catalog.db (default: BackupDir).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`
}

// PipelineConfig groups all stage configurations for the CLI.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Backup     BackupConfig     `json:"backup" yaml:"backup"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}

package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Garment slotSchema    `toml:"garment"`
	Person  slotSchema    `toml:"person"`
	Result  resultSchema  `toml:"result"`
	Status  statusSchema  `toml:"status"`
	History historySchema `toml:"history"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type slotSchema struct {
	Status     string            `toml:"status"`
	Error      string            `toml:"error,omitempty"`
	Asset      *assetSchema      `toml:"asset,omitempty"`
	Descriptor *descriptorSchema `toml:"descriptor,omitempty"`
}

// assetSchema keeps the source path only; image bytes are read again at
// composition time.
type assetSchema struct {
	Filename  string `toml:"filename"`
	MediaType string `toml:"media_type"`
	Path      string `toml:"path,omitempty"`
}

type descriptorSchema struct {
	ID         int64  `toml:"id"`
	Image      string `toml:"image"`
	UploadedAt string `toml:"uploaded_at,omitempty"`
}

type resultSchema struct {
	URL string `toml:"url,omitempty"`
}

type statusSchema struct {
	Error      string `toml:"error,omitempty"`
	Validation string `toml:"validation,omitempty"`
}

type historySchema struct {
	Error   string                `toml:"error,omitempty"`
	Records []historyRecordSchema `toml:"records,omitempty"`
}

type historyRecordSchema struct {
	ID             int64  `toml:"id"`
	GarmentImage   string `toml:"garment_image,omitempty"`
	PersonImage    string `toml:"person_image,omitempty"`
	GeneratedImage string `toml:"generated_image"`
	CreatedAt      string `toml:"created_at,omitempty"`
}

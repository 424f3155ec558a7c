package domain

import (
	"fmt"
	"strings"
)

type AssetKind string

const (
	AssetGarment AssetKind = "garment"
	AssetPerson  AssetKind = "person"
)

func (k AssetKind) Valid() bool {
	switch k {
	case AssetGarment, AssetPerson:
		return true
	default:
		return false
	}
}

func ParseAssetKind(raw string) (AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "garment", "cloth":
		return AssetGarment, nil
	case "person", "human":
		return AssetPerson, nil
	default:
		return "", fmt.Errorf("unsupported asset kind %q", raw)
	}
}

type SlotStatus string

const (
	SlotIdle      SlotStatus = "idle"
	SlotUploading SlotStatus = "uploading"
	SlotUploaded  SlotStatus = "uploaded"
	SlotFailed    SlotStatus = "failed"
)

const (
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

// AllowedMediaType reports whether the upload endpoints accept mediaType.
func AllowedMediaType(mediaType string) bool {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case MediaTypePNG, MediaTypeJPEG:
		return true
	default:
		return false
	}
}

// Asset is a local image selected by the user. Data may be empty when only Path
// is known (state restored from disk).
type Asset struct {
	Filename  string
	MediaType string
	Path      string
	Data      []byte
}

// Descriptor is the server's reference to an uploaded image.
type Descriptor struct {
	ID         int64
	Image      string
	UploadedAt string
}

type AssetSlot struct {
	Kind         AssetKind
	Status       SlotStatus
	Asset        *Asset
	Descriptor   *Descriptor
	ErrorMessage string
}

func NewAssetSlot(kind AssetKind) AssetSlot {
	return AssetSlot{Kind: kind, Status: SlotIdle}
}

// Ready reports whether the slot can feed a composition request.
func (s AssetSlot) Ready() bool {
	return s.Status == SlotUploaded && s.Descriptor != nil && s.Asset != nil && s.ErrorMessage == ""
}

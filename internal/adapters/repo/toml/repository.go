package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/bnema/vton-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	statePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".vton"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"

	// MessageUploadInterrupted replaces an upload that was still running when
	// the previous process exited.
	MessageUploadInterrupted = "Upload interrupted. Please upload the image again."
)

// StateRepository persists the durable part of the workflow state between
// CLI invocations. Loading flags and the skeleton gate are never written.
type StateRepository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.StateRepository = (*StateRepository)(nil)

func NewStateRepository(cfg *viper.Viper) (*StateRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		statePath = filepath.Join(homeDir, stateConfigDir, stateConfigFile)
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &StateRepository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *StateRepository) Path() string {
	return r.statePath
}

func (r *StateRepository) Load(ctx context.Context) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.State{}, err
	}

	return fromSchema(file), nil
}

func (r *StateRepository) Save(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(state))
}

func (r *StateRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *StateRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(state domain.State) fileSchema {
	records := make([]historyRecordSchema, 0, len(state.History.Records))
	for _, record := range state.History.Records {
		records = append(records, historyRecordSchema{
			ID:             record.ID,
			GarmentImage:   record.GarmentImageRef,
			PersonImage:    record.PersonImageRef,
			GeneratedImage: record.GeneratedImageURL,
			CreatedAt:      record.CreatedAt,
		})
	}

	return fileSchema{
		Version: currentSchemaVersion,
		Garment: toSlotSchema(state.Garment),
		Person:  toSlotSchema(state.Person),
		Result:  resultSchema{URL: state.Result.ResultURL},
		Status:  statusSchema{Error: state.Status.Error, Validation: state.Validation},
		History: historySchema{Error: state.History.Error, Records: records},
	}
}

func toSlotSchema(slot domain.AssetSlot) slotSchema {
	encoded := slotSchema{Status: string(slot.Status), Error: slot.ErrorMessage}
	if slot.Asset != nil {
		encoded.Asset = &assetSchema{
			Filename:  slot.Asset.Filename,
			MediaType: slot.Asset.MediaType,
			Path:      slot.Asset.Path,
		}
	}
	if slot.Descriptor != nil {
		encoded.Descriptor = &descriptorSchema{
			ID:         slot.Descriptor.ID,
			Image:      slot.Descriptor.Image,
			UploadedAt: slot.Descriptor.UploadedAt,
		}
	}
	return encoded
}

func fromSchema(file fileSchema) domain.State {
	state := domain.NewState()
	state.Garment = fromSlotSchema(domain.AssetGarment, file.Garment)
	state.Person = fromSlotSchema(domain.AssetPerson, file.Person)
	state.Result = domain.CompositionResult{ResultURL: file.Result.URL}
	state.Status = domain.WorkflowStatus{Error: file.Status.Error}
	state.Validation = file.Status.Validation
	state.History.Error = file.History.Error

	if len(file.History.Records) > 0 {
		state.History.Records = make([]domain.HistoryRecord, 0, len(file.History.Records))
		for _, record := range file.History.Records {
			state.History.Records = append(state.History.Records, domain.HistoryRecord{
				ID:                record.ID,
				GarmentImageRef:   record.GarmentImage,
				PersonImageRef:    record.PersonImage,
				GeneratedImageURL: record.GeneratedImage,
				CreatedAt:         record.CreatedAt,
			})
		}
	}

	return state
}

func fromSlotSchema(kind domain.AssetKind, encoded slotSchema) domain.AssetSlot {
	slot := domain.AssetSlot{
		Kind:         kind,
		Status:       domain.SlotStatus(encoded.Status),
		ErrorMessage: encoded.Error,
	}
	if encoded.Asset != nil {
		slot.Asset = &domain.Asset{
			Filename:  encoded.Asset.Filename,
			MediaType: encoded.Asset.MediaType,
			Path:      encoded.Asset.Path,
		}
	}
	if encoded.Descriptor != nil {
		slot.Descriptor = &domain.Descriptor{
			ID:         encoded.Descriptor.ID,
			Image:      encoded.Descriptor.Image,
			UploadedAt: encoded.Descriptor.UploadedAt,
		}
	}

	switch slot.Status {
	case domain.SlotIdle, domain.SlotUploaded, domain.SlotFailed:
	case domain.SlotUploading:
		slot.Status = domain.SlotFailed
		slot.Descriptor = nil
		slot.ErrorMessage = MessageUploadInterrupted
	default:
		return domain.NewAssetSlot(kind)
	}

	return slot
}

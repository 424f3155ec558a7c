package domain

import "time"

type Token string

type CompositionResult struct {
	ResultURL string
}

type WorkflowStatus struct {
	Loading bool
	Error   string
}

type HistoryRecord struct {
	ID                int64
	GarmentImageRef   string
	PersonImageRef    string
	GeneratedImageURL string
	CreatedAt         string
}

type HistoryState struct {
	Records []HistoryRecord
	Loading bool
	Error   string
}

// SkeletonGate mirrors the presentation timer: Visible stays true for a
// minimum window after ArmedAt.
type SkeletonGate struct {
	Visible bool
	ArmedAt time.Time
}

// State is the single workflow state value. It is never mutated in place;
// Reduce returns a new value for every event.
type State struct {
	Garment    AssetSlot
	Person     AssetSlot
	Result     CompositionResult
	Status     WorkflowStatus
	Validation string
	History    HistoryState
	Gate       SkeletonGate
}

func NewState() State {
	return State{
		Garment: NewAssetSlot(AssetGarment),
		Person:  NewAssetSlot(AssetPerson),
	}
}

func (s State) Slot(kind AssetKind) AssetSlot {
	if kind == AssetPerson {
		return s.Person
	}
	return s.Garment
}

func (s State) withSlot(slot AssetSlot) State {
	switch slot.Kind {
	case AssetGarment:
		s.Garment = slot
	case AssetPerson:
		s.Person = slot
	}
	return s
}

// Clone returns a copy whose slots and history can be changed without touching s.
// Asset bytes are shared; they are never written after an upload starts.
func (s State) Clone() State {
	s.Garment = s.Garment.clone()
	s.Person = s.Person.clone()
	s.History.Records = cloneRecords(s.History.Records)
	return s
}

func (s AssetSlot) clone() AssetSlot {
	if s.Asset != nil {
		asset := *s.Asset
		s.Asset = &asset
	}
	if s.Descriptor != nil {
		descriptor := *s.Descriptor
		s.Descriptor = &descriptor
	}
	return s
}

func cloneRecords(records []HistoryRecord) []HistoryRecord {
	if records == nil {
		return nil
	}
	return append(make([]HistoryRecord, 0, len(records)), records...)
}

package domain

import "time"

// Event is one discrete state transition. Reduce applies it to a copy of the
// state so callers never observe a partially updated value.
type Event interface {
	apply(State) State
}

func Reduce(state State, event Event) State {
	if event == nil {
		return state
	}
	return event.apply(state.Clone())
}

type UploadStarted struct {
	Kind  AssetKind
	Asset Asset
}

func (e UploadStarted) apply(s State) State {
	asset := e.Asset
	return s.withSlot(AssetSlot{Kind: e.Kind, Status: SlotUploading, Asset: &asset})
}

type UploadSucceeded struct {
	Kind       AssetKind
	Descriptor Descriptor
}

func (e UploadSucceeded) apply(s State) State {
	slot := s.Slot(e.Kind)
	descriptor := e.Descriptor
	slot.Status = SlotUploaded
	slot.Descriptor = &descriptor
	slot.ErrorMessage = ""
	return s.withSlot(slot)
}

type UploadFailed struct {
	Kind    AssetKind
	Message string
}

func (e UploadFailed) apply(s State) State {
	slot := s.Slot(e.Kind)
	slot.Status = SlotFailed
	slot.Descriptor = nil
	slot.ErrorMessage = e.Message
	return s.withSlot(slot)
}

// AssetRejected marks a slot failed before any upload happened; the previous
// asset and descriptor are dropped.
type AssetRejected struct {
	Kind    AssetKind
	Message string
}

func (e AssetRejected) apply(s State) State {
	return s.withSlot(AssetSlot{Kind: e.Kind, Status: SlotFailed, ErrorMessage: e.Message})
}

type AssetCleared struct {
	Kind AssetKind
}

func (e AssetCleared) apply(s State) State {
	return s.withSlot(NewAssetSlot(e.Kind))
}

type TryOnRejected struct {
	Message string
}

func (e TryOnRejected) apply(s State) State {
	s.Validation = e.Message
	return s
}

type TryOnStarted struct{}

func (TryOnStarted) apply(s State) State {
	s.Status.Loading = true
	s.Validation = ""
	return s
}

type TryOnSucceeded struct {
	ResultURL string
}

func (e TryOnSucceeded) apply(s State) State {
	s.Status.Loading = false
	s.Result = CompositionResult{ResultURL: e.ResultURL}
	return s
}

type TryOnFailed struct {
	Message string
}

func (e TryOnFailed) apply(s State) State {
	s.Status.Loading = false
	s.Status.Error = e.Message
	return s
}

type ErrorCleared struct{}

func (ErrorCleared) apply(s State) State {
	s.Status.Error = ""
	s.Validation = ""
	return s
}

type HistoryRequested struct{}

func (HistoryRequested) apply(s State) State {
	s.History.Loading = true
	s.History.Error = ""
	return s
}

type HistoryLoaded struct {
	Records []HistoryRecord
}

func (e HistoryLoaded) apply(s State) State {
	records := cloneRecords(e.Records)
	if records == nil {
		records = []HistoryRecord{}
	}
	s.History = HistoryState{Records: records}
	return s
}

type HistoryFailed struct {
	Message string
}

func (e HistoryFailed) apply(s State) State {
	s.History.Loading = false
	s.History.Error = e.Message
	return s
}

type GateArmed struct {
	At time.Time
}

func (e GateArmed) apply(s State) State {
	s.Gate = SkeletonGate{Visible: true, ArmedAt: e.At}
	return s
}

type GateClosed struct{}

func (GateClosed) apply(s State) State {
	s.Gate.Visible = false
	return s
}

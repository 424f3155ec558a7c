package ports

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives transient UI signals that are not part of workflow state.
type Notifier interface {
	Shake()
	Notify(notice Notice)
}

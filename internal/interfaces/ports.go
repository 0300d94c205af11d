//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks
package interfaces

type Messenger interface {
	SendMessage(to, content string) error
}

// LoadStatus tells why a store returned what it returned.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadMissing
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// SeenUserStore persists the ordered list of usernames that already got a
// greeting. Load never fails on absent or unreadable history: it reports
// LoadMissing or LoadCorrupt with an empty list instead.
type SeenUserStore interface {
	Load() ([]string, LoadStatus, error)
	Save(users []string) error
}

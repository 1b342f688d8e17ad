package specification

import "gorm.io/gorm"

// ByChatSession filters interaction logs by the assistant session they
// were reconciled from.
type ByChatSession struct {
	SessionId string
}

func (s ByChatSession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionId)
}

// ByHcpName filters interaction logs by HCP name.
type ByHcpName struct {
	Name string
}

func (s ByHcpName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hcp_name = ?", s.Name)
}

// ByEventType filters audit logs by event type.
type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}

// Limit caps the result set size.
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}

// ABOUTME: Data models for church content resources
// ABOUTME: Defines Gallery, Sermon, LifeGroup, Ministry, Setting, LogEntry, Testimonial, and GiveEntry
package models

import "time"

type Gallery struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g Gallery) EntityID() ID { return g.ID }

type Sermon struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Speaker     string     `json:"speaker,omitempty"`
	Scripture   string     `json:"scripture,omitempty"`
	Description string     `json:"description,omitempty"` // markdown
	VideoLinks  []string   `json:"video_links,omitempty"`
	Audio       []string   `json:"audio,omitempty"`
	PreachedAt  *time.Time `json:"preached_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s Sermon) EntityID() ID { return s.ID }

type LifeGroup struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Leader      string    `json:"leader,omitempty"`
	MeetingDay  string    `json:"meeting_day,omitempty"`
	Location    string    `json:"location,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l LifeGroup) EntityID() ID { return l.ID }

type Ministry struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Leader      string    `json:"leader,omitempty"`
	Description string    `json:"description,omitempty"`
	Banner      string    `json:"banner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m Ministry) EntityID() ID { return m.ID }

type Setting struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Setting) EntityID() ID { return s.ID }

// LogEntry is read-only from the client's perspective; the server appends
// entries as a side effect of admin actions.
type LogEntry struct {
	ID        ID        `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (l LogEntry) EntityID() ID { return l.ID }

type Testimonial struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Testimonial) EntityID() ID { return t.ID }

type GiveEntry struct {
	ID          ID        `json:"id"`
	Method      string    `json:"method"`
	AccountName string    `json:"account_name,omitempty"`
	Links       []string  `json:"links,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g GiveEntry) EntityID() ID { return g.ID }

// Log action constants.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

// Give method constants.
const (
	MethodBank   = "bank"
	MethodMobile = "mobile"
	MethodOnline = "online"
)

// Asset type constants for asset-scoped deletion paths.
const (
	AssetImages = "images"
	AssetAudio  = "audio"
)

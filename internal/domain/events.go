package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError          EventType = "Error"
	EventCatalogChanged EventType = "CatalogChanged"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventConfigChanged  EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when an operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// Mutation names the kind of write applied to the catalog
type Mutation string

const (
	MutationCreate Mutation = "create"
	MutationUpdate Mutation = "update"
	MutationDelete Mutation = "delete"
)

// CatalogChangedEvent is emitted after a successful create, update or delete
type CatalogChangedEvent struct {
	Entity   EntityKind
	Mutation Mutation
	ID       int
}

func (e CatalogChangedEvent) Type() EventType { return EventCatalogChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when UI settings need to be saved
type ConfigChangedEvent struct {
	PageSize int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

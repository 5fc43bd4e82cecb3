package shared

// AggregateRoot is implemented by entities that own a consistency boundary.
// Aggregates carry a version for optimistic locking and collect domain
// events until a service drains them after persisting.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	PullDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides the version and event bookkeeping shared by
// all aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int           `gorm:"not null;default:1"`
	events  []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates a base aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// GetVersion returns the version used for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the optimistic lock version. Mutating aggregate
// methods call this once per logical change.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event to be drained after the aggregate is saved
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// GetDomainEvents returns the pending events without clearing them
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.events
}

// PullDomainEvents returns the pending events and clears them. Services call
// this exactly once after a successful save so an event is never emitted for
// a change that did not persist.
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}

// ClearDomainEvents drops pending events without emitting them
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}

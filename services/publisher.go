package services

// Lifecycle events emitted by the order core.
const (
	EventOrderCreated    = "order:created"
	EventOrderUpdated    = "order:updated"
	EventOrderCancelled  = "order:cancelled"
	EventOrderCheckedOut = "order:checkedOut"
	EventOrderDeleted    = "order:deleted"
	EventKOTNew          = "kot:new"
	EventKOTUpdate       = "kot:update"
	EventKOTVoid         = "kot:void"
	EventStockLow        = "stock:low"
)

// Publisher delivers lifecycle events to a restaurant's subscribers.
// Delivery is best effort and at-most-once; the core never fails an
// operation because a publish failed.
type Publisher interface {
	Publish(restaurantID uint, event string, payload interface{})
}

type NopPublisher struct{}

func (NopPublisher) Publish(uint, string, interface{}) {}

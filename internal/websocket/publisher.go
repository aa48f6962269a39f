package websocket

// EventPublisher is what the services see of the realtime layer: fire
// an event at a workspace and move on. Delivery is best effort.
type EventPublisher interface {
	Publish(workspaceID int32, event Event)
}

var (
	_ EventPublisher = (*Hub)(nil)
	_ EventPublisher = (*NoOpPublisher)(nil)
)

// Publish pushes the event to every dashboard open on the workspace
func (h *Hub) Publish(workspaceID int32, event Event) {
	h.Broadcast(workspaceID, event)
}

// NoOpPublisher drops every event. The services install it when no
// hub is wired in, so recalculation and export paths never have to
// nil-check their publisher.
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(workspaceID int32, event Event) {}

package outbox

// Event is one domain event to be relayed by the publisher. EventType doubles
// as the kafka topic name.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

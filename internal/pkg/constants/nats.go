package constants

// NATS Subjects
const (
	// Payment events
	SubjectPaymentInitiated = "payment.initiated"
	SubjectPaymentCompleted = "payment.completed"
	SubjectPaymentFailed    = "payment.failed"

	// Order events
	SubjectOrderCreated = "order.created"
	SubjectOrderPaid    = "order.paid"
)

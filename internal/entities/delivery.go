package entities

// DeliveryResult is the outcome of one best-effort gateway send. Sends are
// never retried; callers choose to log or ignore a failure.
type DeliveryResult struct {
	Delivered bool
	Reason    string
}

func Delivered() DeliveryResult {
	return DeliveryResult{Delivered: true}
}

func DeliveryFailed(reason string) DeliveryResult {
	return DeliveryResult{Delivered: false, Reason: reason}
}

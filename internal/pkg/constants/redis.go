package constants

// Redis key formats
const (
	// Payment service
	KeyPaymentOrderLock = "payment:lock:order:%s" // Format: payment:lock:order:{order_id}

	// Catalog service
	KeyProductCache = "catalog:product:%s" // Format: catalog:product:{product_id}
	KeyProductList  = "catalog:products:%s" // Format: catalog:products:{filter_hash}

	// Rate limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)

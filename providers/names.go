package providers

const (
	// Identifier for ipstack.com.
	NameIPStack = "ipstack"

	// Identifier for ip-api.com.
	NameIPAPI = "ip-api"
)

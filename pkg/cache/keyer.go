package cache

// maxPlainKeyLength is the longest raw key kept verbatim; longer keys
// (data query URLs with many parameters) are hashed.
const maxPlainKeyLength = 200

// Keyer generates cache keys.
type Keyer interface {
	// HTTPKey generates a key for a raw HTTP response.
	// namespace identifies the API client (e.g. "nomis:"), key is usually the URL.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces unscoped keys of the form "http:<namespace>:<key>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	if len(key) > maxPlainKeyLength {
		return hashKey("http:"+namespace, key)
	}
	return "http:" + namespace + ":" + key
}

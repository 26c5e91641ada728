package redis

import "fmt"

const (
	// KeyPrefixLanguage is the prefix for published language keys
	KeyPrefixLanguage = "langdocs:language:"
	// KeyPrefixReport is the prefix for published validation report keys
	KeyPrefixReport = "langdocs:report:"
	// KeyPrefixSearchCache is the prefix for cached search results
	KeyPrefixSearchCache = "langdocs:search:"
	// KeyAllLanguages is the key for the set of all published language IDs
	KeyAllLanguages = "langdocs:languages:all"
)

// LanguageKey returns the Redis key for a published language by ID
func LanguageKey(id string) string {
	return KeyPrefixLanguage + id
}

// ReportKey returns the Redis key for the report of a language
func ReportKey(id string) string {
	return KeyPrefixReport + id
}

// SearchCacheKey returns the Redis key for a cached search.
// Example: ("java", 20, "hash map") -> "langdocs:search:java:20:hash map"
func SearchCacheKey(lang string, limit int, query string) string {
	return fmt.Sprintf("%s%s:%d:%s", KeyPrefixSearchCache, lang, limit, query)
}

// AllLanguagesKey returns the key for the set of all published language IDs
func AllLanguagesKey() string {
	return KeyAllLanguages
}

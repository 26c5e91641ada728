package redis

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"language", LanguageKey("java"), "langdocs:language:java"},
		{"report", ReportKey("java"), "langdocs:report:java"},
		{"all languages", AllLanguagesKey(), "langdocs:languages:all"},
		{"search", SearchCacheKey("java", 20, "hash map"), "langdocs:search:java:20:hash map"},
		{"search all languages", SearchCacheKey("", 5, "loops"), "langdocs:search::5:loops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}

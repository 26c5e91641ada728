package redis

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
	"github.com/MrSnakeDoc/langdocs/internal/validate"
	"github.com/redis/go-redis/v9"
)

func testLanguage() domain.LanguageConfig {
	return domain.Assemble(domain.LanguageMeta{ID: "java", Label: "Java", Color: "#f89820"},
		[]domain.Category{{ID: "basics", Label: "Basics", Entries: []domain.Entry{{
			ID:         "strings",
			Title:      "Strings",
			Difficulty: domain.DifficultyBeginner,
			Tags:       []string{"text"},
			Summary:    "Immutable text.",
			Sections: []domain.Section{{
				Heading:            "Basics",
				Content:            "Strings are **immutable**.",
				Code:               "String s = \"hi\";",
				CodeHighlightLines: []int{1},
				Diagram:            domain.MermaidDiagram{Code: "graph TD; A-->B"},
			}},
		}}}},
	)
}

func TestCodecPreservesLanguage(t *testing.T) {
	lang := testLanguage()

	data, err := encode(lang)
	if err != nil {
		t.Fatalf("encode() error = %v", err)
	}
	if bytes.Contains(data, []byte("immutable")) {
		t.Error("encoded language should be compressed")
	}

	var got domain.LanguageConfig
	if err := decode(data, &got); err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if !reflect.DeepEqual(got, lang) {
		t.Errorf("decoded language differs:\n got %+v\nwant %+v", got, lang)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var r validate.Report
	if err := decode([]byte("not zstd"), &r); err == nil {
		t.Error("expected an error for non zstd data")
	}
}

func TestPublishManyEmpty(t *testing.T) {
	// No command is sent for an empty batch, so an unreachable client is fine.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	if err := NewStore(client).PublishMany(context.Background(), nil); err != nil {
		t.Errorf("PublishMany(nil) error = %v", err)
	}
}

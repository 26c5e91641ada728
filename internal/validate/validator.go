// Package validate checks assembled documentation content and reports every defect
// it finds as a Diagnostic, so authors can fix a whole language in one pass.
package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/langdocs/internal/domain"
)

// Language validates a fully assembled language.
func Language(cfg domain.LanguageConfig) Report {
	v := newChecker(cfg.ID)
	root := cfg.ID
	if root == "" {
		root = "<language>"
	}

	v.required(root+".id", "", cfg.ID, "language id")
	v.required(root+".label", "", cfg.Label, "language label")
	v.checkURL(root+".officialUrl", cfg.OfficialURL)
	v.checkURL(root+".playgroundUrl", cfg.PlaygroundURL)

	if len(cfg.Categories) == 0 {
		v.errorf(root+".categories", "", CodeNoCategories, "language declares no categories")
	}
	v.checkCategories(root, "", cfg.Categories)

	return v.report
}

// Partition validates one partition in isolation. Language is only used for paths.
func Partition(language, partition string, categories []domain.Category) Report {
	v := newChecker(language)
	if len(categories) == 0 {
		v.errorf(language+".categories", partition, CodeNoCategories, "partition declares no categories")
	}
	v.checkCategories(language, partition, categories)
	return v.report
}

// Catalog validates every language and flags language ids declared more than once.
// The returned reports are index-aligned with cfgs.
func Catalog(cfgs []domain.LanguageConfig) []Report {
	reports := make([]Report, len(cfgs))
	seen := make(map[string]int, len(cfgs))

	for i, cfg := range cfgs {
		reports[i] = Language(cfg)
		if cfg.ID == "" {
			continue
		}
		if first, ok := seen[cfg.ID]; ok {
			reports[i].Add(Diagnostic{
				Path:     cfg.ID + ".id",
				Code:     CodeDuplicateLanguageID,
				Severity: SeverityError,
				Message:  fmt.Sprintf("language id %q already declared by language #%d", cfg.ID, first),
			})
			continue
		}
		seen[cfg.ID] = i
	}

	return reports
}

type checker struct {
	report Report

	// first occurrence path of every id, for duplicate reporting
	categoryIDs map[string]string
	entryIDs    map[string]string
}

func newChecker(language string) *checker {
	return &checker{
		report:      NewReport(language),
		categoryIDs: make(map[string]string),
		entryIDs:    make(map[string]string),
	}
}

func (v *checker) errorf(path, partition string, code Code, msg string) {
	v.report.Add(Diagnostic{Path: path, Code: code, Severity: SeverityError, Message: msg, Partition: partition})
}

func (v *checker) warnf(path, partition string, code Code, msg string) {
	v.report.Add(Diagnostic{Path: path, Code: code, Severity: SeverityWarning, Message: msg, Partition: partition})
}

func (v *checker) required(path, partition, value, what string) {
	if strings.TrimSpace(value) == "" {
		v.errorf(path, partition, CodeMissingField, what+" is required")
	}
}

func (v *checker) checkURL(path, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.warnf(path, "", CodeMalformedURL, fmt.Sprintf("%q is not an absolute http(s) URL", raw))
	}
}

// key returns the id used in paths, falling back to the index for anonymous nodes.
func key(id string, i int) string {
	if id == "" {
		return "#" + strconv.Itoa(i)
	}
	return id
}

func (v *checker) checkCategories(root, partition string, categories []domain.Category) {
	for i, c := range categories {
		p := partition
		if c.Partition != "" {
			p = c.Partition
		}
		path := fmt.Sprintf("%s.categories[%s]", root, key(c.ID, i))

		v.required(path+".id", p, c.ID, "category id")
		v.required(path+".label", p, c.Label, "category label")

		if c.ID != "" {
			if first, ok := v.categoryIDs[c.ID]; ok {
				v.errorf(path, p, CodeDuplicateCategoryID,
					fmt.Sprintf("category id %q already declared at %s", c.ID, first))
			} else {
				v.categoryIDs[c.ID] = locate(path, p)
			}
		}

		if len(c.Entries) == 0 {
			v.errorf(path+".entries", p, CodeEmptyCategory, "category has no entries")
		}

		for j, e := range c.Entries {
			v.checkEntry(fmt.Sprintf("%s.entries[%s]", path, key(e.ID, j)), p, e)
		}
	}
}

// levels renders the recognized difficulties for messages
var levels = func() string {
	names := make([]string, 0, 3)
	for _, d := range domain.Difficulties() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}()

func locate(path, partition string) string {
	if partition == "" {
		return path
	}
	return path + " (" + partition + ")"
}

func (v *checker) checkEntry(path, partition string, e domain.Entry) {
	v.required(path+".id", partition, e.ID, "entry id")
	v.required(path+".title", partition, e.Title, "entry title")
	v.required(path+".summary", partition, e.Summary, "entry summary")

	if e.ID != "" {
		if first, ok := v.entryIDs[e.ID]; ok {
			v.errorf(path, partition, CodeDuplicateEntryID,
				fmt.Sprintf("entry id %q already declared at %s", e.ID, first))
		} else {
			v.entryIDs[e.ID] = locate(path, partition)
		}
	}

	if !e.Difficulty.Valid() {
		v.errorf(path+".difficulty", partition, CodeInvalidDifficulty,
			fmt.Sprintf("difficulty %q is not one of %s", e.Difficulty, levels))
	}

	v.checkTags(path+".tags", partition, e.Tags)

	if len(e.Sections) == 0 {
		v.errorf(path+".sections", partition, CodeMissingSections, "entry has no sections")
	}
	for i, s := range e.Sections {
		v.checkSection(fmt.Sprintf("%s.sections[%d]", path, i), partition, s)
	}

	for i, q := range e.Quiz {
		v.checkQuiz(fmt.Sprintf("%s.quiz[%d]", path, i), partition, q)
	}

	if e.Challenge != nil {
		v.checkChallenge(path+".challenge", partition, *e.Challenge)
	}
}

func (v *checker) checkTags(path, partition string, tags []string) {
	if len(tags) == 0 {
		v.errorf(path, partition, CodeEmptyTags, "entry has no tags")
		return
	}

	seen := make(map[string]bool, len(tags))
	for i, t := range tags {
		norm := strings.ToLower(strings.TrimSpace(t))
		if norm == "" {
			v.errorf(fmt.Sprintf("%s[%d]", path, i), partition, CodeBlankTag, "tag is blank")
			continue
		}
		if seen[norm] {
			v.warnf(fmt.Sprintf("%s[%d]", path, i), partition, CodeDuplicateTag, fmt.Sprintf("tag %q repeated", t))
		}
		seen[norm] = true
	}
}

func (v *checker) checkSection(path, partition string, s domain.Section) {
	v.required(path+".heading", partition, s.Heading, "section heading")
	v.required(path+".content", partition, s.Content, "section content")

	if s.Output != "" && !s.HasCode() {
		v.errorf(path+".output", partition, CodeOutputWithoutCode, "output is set but the section has no code")
	}

	if s.CodeHighlightLines != nil {
		if !s.HasCode() {
			v.errorf(path+".codeHighlightLines", partition, CodeHighlightWithoutCode,
				"codeHighlightLines is set but the section has no code")
		} else {
			lines := s.CodeLineCount()
			seen := make(map[int]bool, len(s.CodeHighlightLines))
			for i, n := range s.CodeHighlightLines {
				linePath := fmt.Sprintf("%s.codeHighlightLines[%d]", path, i)
				if n < 1 || n > lines {
					v.errorf(linePath, partition, CodeHighlightOutOfRange,
						fmt.Sprintf("line %d is out of range, code has %d line(s)", n, lines))
					continue
				}
				if seen[n] {
					v.warnf(linePath, partition, CodeDuplicateHighlight, fmt.Sprintf("line %d highlighted twice", n))
				}
				seen[n] = true
			}
		}
	}

	if s.Diagram != nil {
		v.checkDiagram(path+".diagram", partition, s.Diagram)
	}
}

func (v *checker) checkQuiz(path, partition string, q domain.QuizItem) {
	v.required(path+".question", partition, q.Question, "quiz question")

	if len(q.Options) < 2 {
		v.errorf(path+".options", partition, CodeQuizTooFewOptions,
			fmt.Sprintf("quiz has %d option(s), at least 2 are required", len(q.Options)))
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		v.errorf(path+".correctIndex", partition, CodeQuizAnswerOutOfRange,
			fmt.Sprintf("correctIndex %d is out of range for %d option(s)", q.CorrectIndex, len(q.Options)))
	}

	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		optPath := fmt.Sprintf("%s.options[%d]", path, i)
		norm := strings.TrimSpace(o)
		if norm == "" {
			v.errorf(optPath, partition, CodeEmptyOption, "option is blank")
			continue
		}
		if seen[norm] {
			v.warnf(optPath, partition, CodeDuplicateOption, fmt.Sprintf("option %q repeated", o))
		}
		seen[norm] = true
	}

	if strings.TrimSpace(q.Explanation) == "" {
		v.warnf(path+".explanation", partition, CodeMissingExplanation, "quiz item has no explanation")
	}
}

func (v *checker) checkChallenge(path, partition string, c domain.Challenge) {
	v.required(path+".prompt", partition, c.Prompt, "challenge prompt")
	v.required(path+".solutionCode", partition, c.SolutionCode, "challenge solution")

	if len(c.Hints) == 0 {
		v.warnf(path+".hints", partition, CodeChallengeNoHints, "challenge has no hints")
	}

	if c.SolutionCode != "" && strings.TrimSpace(c.SolutionCode) == strings.TrimSpace(c.StarterCode) {
		v.warnf(path+".solutionCode", partition, CodeChallengeSolved, "solution is identical to the starter code")
	}
}

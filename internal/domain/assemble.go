package domain

// Assemble builds a LanguageConfig by concatenating partitions in the given order.
//
// Categories are never reordered, merged or deduplicated: two partitions declaring
// the same category ID both show up in the result and validation reports the clash.
// Inputs are copied, so the result shares no state with the partitions and calling
// Assemble again with the same inputs yields a deep-equal value.
func Assemble(meta LanguageMeta, partitions ...[]Category) LanguageConfig {
	total := 0
	for _, p := range partitions {
		total += len(p)
	}

	categories := make([]Category, 0, total)
	for _, p := range partitions {
		for _, c := range p {
			categories = append(categories, c.Clone())
		}
	}

	return LanguageConfig{
		ID:             meta.ID,
		Label:          meta.Label,
		Icon:           meta.Icon,
		Color:          meta.Color,
		OfficialURL:    meta.OfficialURL,
		Tagline:        meta.Tagline,
		PlaygroundURL:  meta.PlaygroundURL,
		ExecutionAPIID: meta.ExecutionAPIID,
		Categories:     categories,
	}
}

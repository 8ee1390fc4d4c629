package catalog

import "aniview/pkg/models"

// UnknownTitle is returned when no title variant is present on a record.
const UnknownTitle = "Unknown Title"

// EnglishTitle resolves the display title for an anime. The fallback
// order is fixed: English title, then the default/romanized title, then
// the first synonym.
func EnglishTitle(anime models.Anime) string {
	if anime.TitleEnglish != "" {
		return anime.TitleEnglish
	}
	if anime.Title != "" {
		return anime.Title
	}
	if len(anime.TitleSynonyms) > 0 {
		return anime.TitleSynonyms[0]
	}
	return UnknownTitle
}

// AllTitles returns every distinct title variant of an anime, default
// title first.
func AllTitles(anime models.Anime) []string {
	var titles []string
	if anime.Title != "" {
		titles = append(titles, anime.Title)
	}
	if anime.TitleEnglish != "" && anime.TitleEnglish != anime.Title {
		titles = append(titles, anime.TitleEnglish)
	}
	for _, synonym := range anime.TitleSynonyms {
		if synonym != anime.Title && synonym != anime.TitleEnglish {
			titles = append(titles, synonym)
		}
	}
	return titles
}

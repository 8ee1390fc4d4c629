package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aniview/pkg/models"
)

func TestEnglishTitlePrefersEnglish(t *testing.T) {
	anime := models.Anime{TitleEnglish: "Foo", Title: "Bar"}
	assert.Equal(t, "Foo", EnglishTitle(anime))
}

func TestEnglishTitleFallsBackToDefault(t *testing.T) {
	anime := models.Anime{Title: "Bar"}
	assert.Equal(t, "Bar", EnglishTitle(anime))
}

func TestEnglishTitleFallsBackToSynonym(t *testing.T) {
	anime := models.Anime{TitleSynonyms: []string{"Baz", "Qux"}}
	assert.Equal(t, "Baz", EnglishTitle(anime))
}

func TestEnglishTitleUnknown(t *testing.T) {
	assert.Equal(t, "Unknown Title", EnglishTitle(models.Anime{}))
}

func TestAllTitlesSkipsDuplicates(t *testing.T) {
	anime := models.Anime{
		Title:         "Shingeki no Kyojin",
		TitleEnglish:  "Attack on Titan",
		TitleSynonyms: []string{"AoT", "Attack on Titan"},
	}
	assert.Equal(t, []string{"Shingeki no Kyojin", "Attack on Titan", "AoT"}, AllTitles(anime))
}

func TestAllTitlesEmpty(t *testing.T) {
	assert.Empty(t, AllTitles(models.Anime{}))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTitleFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		item map[string]interface{}
		want string
	}{
		{
			"prefers english title",
			map[string]interface{}{"title_english": "Attack on Titan", "title": "Shingeki no Kyojin"},
			"Attack on Titan",
		},
		{
			"falls back to default title",
			map[string]interface{}{"title_english": "", "title": "Shingeki no Kyojin"},
			"Shingeki no Kyojin",
		},
		{
			"falls back to first synonym",
			map[string]interface{}{"title_synonyms": []interface{}{"AoT", "SnK"}},
			"AoT",
		},
		{
			"no title variant at all",
			map[string]interface{}{},
			"Unknown Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayTitle(tt.item))
		})
	}
}

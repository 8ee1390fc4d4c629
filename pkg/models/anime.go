package models

// Anime is the normalized record for a catalog entry as returned by the
// Jikan v4 API. Only the fields the application renders are modeled;
// everything else in the upstream payload is ignored on decode.
type Anime struct {
	MalID         int64     `json:"mal_id"`
	Title         string    `json:"title"`
	TitleEnglish  string    `json:"title_english"`
	TitleSynonyms []string  `json:"title_synonyms"`
	Images        Images    `json:"images"`
	Synopsis      string    `json:"synopsis"`
	Type          string    `json:"type"`
	Episodes      int       `json:"episodes"`
	Status        string    `json:"status"`
	Aired         *Aired    `json:"aired,omitempty"`
	Score         float64   `json:"score"`
	Rank          int       `json:"rank"`
	Popularity    int       `json:"popularity"`
	Members       int       `json:"members"`
	Genres        []MalName `json:"genres"`
	Studios       []MalName `json:"studios"`
	Source        string    `json:"source"`
	Rating        string    `json:"rating"`
	Duration      string    `json:"duration"`
	Year          int       `json:"year"`
}

// Images holds the jpg and webp variants Jikan publishes per anime.
type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// Aired covers the broadcast window of an anime.
type Aired struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MalName is the id+name pair Jikan uses for genres, studios and similar
// reference entities.
type MalName struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
}

// Character is one entry of an anime's character listing.
type Character struct {
	Character CharacterInfo `json:"character"`
	Role      string        `json:"role"`
}

// CharacterInfo identifies the character itself inside a listing entry.
type CharacterInfo struct {
	MalID  int64  `json:"mal_id"`
	Name   string `json:"name"`
	Images Images `json:"images"`
}

// Episode is one entry of an anime's episode listing.
type Episode struct {
	MalID  int64   `json:"mal_id"`
	Title  string  `json:"title"`
	Aired  string  `json:"aired"`
	Score  float64 `json:"score"`
	Filler bool    `json:"filler"`
	Recap  bool    `json:"recap"`
}

// Relation groups related catalog entries by relation kind (sequel,
// prequel, adaptation, ...).
type Relation struct {
	RelationType string    `json:"relation"`
	Entries      []MalName `json:"entry"`
}

// CatalogSearchRequest carries the filter parameters the search surface
// forwards to the catalog.
type CatalogSearchRequest struct {
	Query   string `json:"query" form:"q"`
	Type    string `json:"type" form:"type"`
	Status  string `json:"status" form:"status"`
	GenreID string `json:"genre_id" form:"genre"`
	Page    int    `json:"page" form:"page"`
	Limit   int    `json:"limit" form:"limit"`
}

// NormalizeCatalogSearch clamps pagination to what the upstream accepts
func NormalizeCatalogSearch(req *CatalogSearchRequest) {
	if req.Limit <= 0 {
		req.Limit = 24
	}
	if req.Limit > 25 {
		req.Limit = 25
	}
	if req.Page < 0 {
		req.Page = 0
	}
}

package pokeapi

import (
	"strconv"
	"strings"
)

// Only the fields the CLI prints are decoded.

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID parses the trailing numeric path segment of URL, e.g.
// ".../pokemon-species/25/" -> 25. It returns 0 when there is none.
func (r NamedResource) ID() int {
	return IDFromURL(r.URL)
}

func IDFromURL(u string) int {
	parts := strings.Split(strings.TrimRight(u, "/"), "/")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}

type SpeciesList struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

type Pokemon struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         int    `json:"height"`
	Weight         int    `json:"weight"`
	BaseExperience int    `json:"base_experience"`
	Types          []struct {
		Slot int           `json:"slot"`
		Type NamedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     NamedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  NamedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Species NamedResource `json:"species"`
}

type Species struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   NamedResource `json:"language"`
	} `json:"flavor_text_entries"`
	Genera []struct {
		Genus    string        `json:"genus"`
		Language NamedResource `json:"language"`
	} `json:"genera"`
}

// FlavorText returns the first entry in lang with whitespace collapsed.
func (s *Species) FlavorText(lang string) string {
	for _, e := range s.FlavorTextEntries {
		if e.Language.Name == lang {
			return strings.Join(strings.Fields(e.FlavorText), " ")
		}
	}
	return ""
}

func (s *Species) Genus(lang string) string {
	for _, g := range s.Genera {
		if g.Language.Name == lang {
			return g.Genus
		}
	}
	return ""
}

type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// Stages flattens the chain breadth first, one slice of names per stage.
func (c *EvolutionChain) Stages() [][]string {
	var out [][]string
	level := []ChainLink{c.Chain}
	for len(level) > 0 {
		var names []string
		var next []ChainLink
		for _, l := range level {
			names = append(names, l.Species.Name)
			next = append(next, l.EvolvesTo...)
		}
		out = append(out, names)
		level = next
	}
	return out
}

type Type struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageTo   []NamedResource `json:"double_damage_to"`
		DoubleDamageFrom []NamedResource `json:"double_damage_from"`
		HalfDamageTo     []NamedResource `json:"half_damage_to"`
		HalfDamageFrom   []NamedResource `json:"half_damage_from"`
		NoDamageTo       []NamedResource `json:"no_damage_to"`
		NoDamageFrom     []NamedResource `json:"no_damage_from"`
	} `json:"damage_relations"`
	Pokemon []struct {
		Slot    int           `json:"slot"`
		Pokemon NamedResource `json:"pokemon"`
	} `json:"pokemon"`
}

// Detail is what the detail page shows: the Pokémon, its species and the
// evolution chain. Evolution is nil when the species has no chain.
type Detail struct {
	Pokemon   *Pokemon
	Species   *Species
	Evolution *EvolutionChain
}

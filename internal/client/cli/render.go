package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/pokodex/internal/client/favorites"
	"github.com/dmitrijs2005/pokodex/internal/client/pokeapi"
)

func pages(total, size int) int {
	if total == 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func renderSpecies(w io.Writer, l *pokeapi.SpeciesList, page, size int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range l.Results {
		fmt.Fprintf(tw, "#%04d\t%s\n", r.ID(), r.Name)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "page %d/%d (%d species)\n", page, pages(l.Count, size), l.Count)
}

func renderDetail(w io.Writer, d *pokeapi.Detail, favorite bool) {
	p := d.Pokemon
	star := ""
	if favorite {
		star = " ★"
	}
	fmt.Fprintf(w, "#%04d %s%s\n", p.ID, p.Name, star)
	if g := d.Species.Genus("en"); g != "" {
		fmt.Fprintln(w, g)
	}

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "types\t%s\n", strings.Join(types, ", "))
	fmt.Fprintf(tw, "height\t%.1f m\n", float64(p.Height)/10)
	fmt.Fprintf(tw, "weight\t%.1f kg\n", float64(p.Weight)/10)
	for _, s := range p.Stats {
		fmt.Fprintf(tw, "%s\t%d\n", s.Stat.Name, s.BaseStat)
	}
	_ = tw.Flush()

	if ft := d.Species.FlavorText("en"); ft != "" {
		fmt.Fprintf(w, "\n%s\n", ft)
	}
	if d.Evolution != nil {
		stages := d.Evolution.Stages()
		parts := make([]string, 0, len(stages))
		for _, s := range stages {
			parts = append(parts, strings.Join(s, "/"))
		}
		fmt.Fprintf(w, "\nevolution: %s\n", strings.Join(parts, " -> "))
	}
}

func renderType(w io.Writer, t *pokeapi.Type) {
	fmt.Fprintf(w, "%s (%d Pokémon)\n", t.Name, len(t.Pokemon))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	dr := t.DamageRelations
	for _, row := range []struct {
		label string
		list  []pokeapi.NamedResource
	}{
		{"2x damage to", dr.DoubleDamageTo},
		{"2x damage from", dr.DoubleDamageFrom},
		{"½ damage to", dr.HalfDamageTo},
		{"½ damage from", dr.HalfDamageFrom},
		{"no damage to", dr.NoDamageTo},
		{"no damage from", dr.NoDamageFrom},
	} {
		if len(row.list) == 0 {
			continue
		}
		names := make([]string, 0, len(row.list))
		for _, r := range row.list {
			names = append(names, r.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.label, strings.Join(names, ", "))
	}
	_ = tw.Flush()
}

func renderFavorites(w io.Writer, s favorites.State) {
	if len(s.Favorites) == 0 {
		fmt.Fprintln(w, "no favorites on this page")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range s.Favorites {
		fmt.Fprintf(tw, "★ #%04d\t%s\n", f.PokemonID, f.Name)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "page %d/%d (%d favorites)\n", s.Page, pages(s.TotalCount, s.PageSize), s.TotalCount)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/client/pokeapi"
)

var errUsage = errors.New("usage")

func nameArg(args []string, cmd string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: %s <name>", errUsage, cmd)
	}
	return strings.ToLower(args[0]), nil
}

func (a *App) List(ctx context.Context, args []string) error {
	page, err := parsePage(args, a.pageSize)
	if err != nil {
		return err
	}
	l, err := a.pokedex.ListSpecies(ctx, a.pageSize, (page-1)*a.pageSize)
	if err != nil {
		return err
	}
	renderSpecies(a.out, l, page, a.pageSize)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	name, err := nameArg(args, "show")
	if err != nil {
		return err
	}
	d, err := a.pokedex.Detail(ctx, name)
	if err != nil {
		return err
	}
	renderDetail(a.out, d, a.favorites.IsFavorite(ctx, d.Pokemon.Name))
	return nil
}

func (a *App) Type(ctx context.Context, args []string) error {
	name, err := nameArg(args, "type")
	if err != nil {
		return err
	}
	t, err := a.pokedex.Type(ctx, name)
	if err != nil {
		return err
	}
	renderType(a.out, t)
	return nil
}

// Fav looks the Pokémon up so the entry carries its id and resource URL.
func (a *App) Fav(ctx context.Context, args []string) error {
	name, err := nameArg(args, "fav")
	if err != nil {
		return err
	}
	p, err := a.pokedex.Pokemon(ctx, name)
	if err != nil {
		return err
	}
	ok := a.favorites.IsFavorite(ctx, p.Name)
	if err := a.favorites.Snapshot().Err; err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "%s is already a favorite\n", p.Name)
		return nil
	}
	if err := a.favorites.Save(ctx, a.entryFor(p)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "★ %s added to favorites\n", p.Name)
	return nil
}

func (a *App) entryFor(p *pokeapi.Pokemon) models.FavoriteEntry {
	return models.FavoriteEntry{
		PokemonID: p.ID,
		Name:      p.Name,
		URL:       a.apiBase + "/pokemon/" + p.Name,
	}
}

func (a *App) Unfav(ctx context.Context, args []string) error {
	name, err := nameArg(args, "unfav")
	if err != nil {
		return err
	}
	if err := a.favorites.Remove(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s removed from favorites\n", name)
	return nil
}

func (a *App) IsFav(ctx context.Context, args []string) error {
	name, err := nameArg(args, "isfav")
	if err != nil {
		return err
	}
	ok := a.favorites.IsFavorite(ctx, name)
	if err := a.favorites.Snapshot().Err; err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "★ %s is a favorite\n", name)
	} else {
		fmt.Fprintf(a.out, "%s is not a favorite\n", name)
	}
	return nil
}

func (a *App) Favs(ctx context.Context, args []string) error {
	page, err := parsePage(args, a.pageSize)
	if err != nil {
		return err
	}
	if err := a.favorites.Load(ctx, page, a.pageSize); err != nil {
		return err
	}
	renderFavorites(a.out, a.favorites.Snapshot())
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.favorites.Refresh(ctx); err != nil {
		return err
	}
	renderFavorites(a.out, a.favorites.Snapshot())
	return nil
}

package tokens

import (
	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/scryfall"
)

func ptr(s string) *string { return &s }

func text(s string) *cockatrice.Text {
	t := cockatrice.Text(s)
	return &t
}

func token(name, typeLine string, colors []string, power, toughness, oracle string) scryfall.Card {
	card := scryfall.Card{
		Object:    "card",
		Layout:    scryfall.LayoutToken,
		Name:      name,
		TypeLine:  typeLine,
		Colors:    colors,
		ImageURIs: &scryfall.ImageURIs{Large: "https://x/" + name + ".jpg"},
	}
	if oracle != "" {
		card.OracleText = ptr(oracle)
	}
	if power != "" {
		card.Power = ptr(power)
		card.Toughness = ptr(toughness)
	}
	return card
}

func catalogWith(cards ...*cockatrice.Card) *cockatrice.Database {
	db := cockatrice.NewDatabase(cockatrice.RootName)
	for _, c := range cards {
		db.Append(c)
	}
	return db
}

func goblinEntry(name string) *cockatrice.Card {
	return &cockatrice.Card{
		Name: name,
		Prop: cockatrice.Prop{
			Colors:   ptr("R"),
			Type:     "Token Creature — Goblin",
			MainType: cockatrice.MainTypeCreature,
			CMC:      ptr("0"),
			PT:       ptr("1/1"),
		},
		Sets:     []cockatrice.Set{{Code: "M19", PicURL: "https://x/m19.jpg"}},
		Token:    "1",
		TableRow: "2",
	}
}

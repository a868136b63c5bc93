package tokens

import (
	"strings"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
)

// ClassificationRule maps a type line containing Substring to MainType.
type ClassificationRule struct {
	Substring string
	MainType  cockatrice.MainType
}

// ClassificationRules are evaluated top-down and the first hit wins.
// Creature precedes Artifact and Enchantment: an artifact creature is
// grouped with the creatures.
var ClassificationRules = []ClassificationRule{
	{Substring: "Emblem", MainType: cockatrice.MainTypeEmblem},
	{Substring: "Dungeon", MainType: cockatrice.MainTypeDungeon},
	{Substring: "Creature", MainType: cockatrice.MainTypeCreature},
	{Substring: "Artifact", MainType: cockatrice.MainTypeArtifact},
	{Substring: "Enchantment", MainType: cockatrice.MainTypeEnchantment},
}

// Classify returns the classification for a type line. The boolean is false
// when no rule matched and the result is the manual-review placeholder.
func Classify(typeLine string) (cockatrice.MainType, bool) {
	for _, rule := range ClassificationRules {
		if strings.Contains(typeLine, rule.Substring) {
			return rule.MainType, true
		}
	}
	return cockatrice.MainTypeManualReview, false
}

package flower

import (
	"fmt"
	"math/rand"

	"github.com/danielgtaylor/huma/v2"
)

// VisualType is one of the six renderable flower categories. Whatever
// species the classifier returns, the garden only ever renders these.
type VisualType string

const (
	VisualIris       VisualType = "iris"
	VisualPoppy      VisualType = "poppy"
	VisualRose       VisualType = "rose"
	VisualWildflower VisualType = "wildflower"
	VisualLavender   VisualType = "lavender"
	VisualDaisy      VisualType = "daisy"
)

// VisualTypes lists every renderable category.
var VisualTypes = []VisualType{
	VisualIris, VisualPoppy, VisualRose, VisualWildflower, VisualLavender, VisualDaisy,
}

func (VisualType) Schema() huma.Schema {
	return huma.Schema{
		Type: "string",
		Enum: []any{
			string(VisualIris),
			string(VisualPoppy),
			string(VisualRose),
			string(VisualWildflower),
			string(VisualLavender),
			string(VisualDaisy),
		},
		Description: "Renderable flower category",
		Examples:    []any{VisualRose},
	}
}

// Validate implements the huma.Validatable interface.
func (t VisualType) Validate() error {
	switch t {
	case VisualIris, VisualPoppy, VisualRose, VisualWildflower, VisualLavender, VisualDaisy:
		return nil
	}
	return fmt.Errorf("unknown visual type: %s", t)
}

// String returns the type as a plain string.
func (t VisualType) String() string {
	return string(t)
}

// Species is the full open taxonomy the classifier may pick from,
// compiled from botanical encyclopedias. The garden accepts any of
// these; unknown values fall back to "wildflower" at render time.
var Species = []string{
	// Rose family
	"rose", "peony", "cherry_blossom", "plum_blossom", "apple_blossom", "hawthorn",
	// Lily family
	"lily", "tulip", "daylily", "hyacinth", "fritillaria",
	// Orchid family
	"orchid", "phalaenopsis", "cymbidium", "dendrobium", "cattleya",
	// Daisy family
	"daisy", "sunflower", "chrysanthemum", "gerbera", "aster", "dahlia", "zinnia", "marigold", "cosmos", "echinacea",
	// Iris family
	"iris", "gladiolus", "crocus", "freesia",
	// Mint family
	"lavender", "salvia", "rosemary",
	// Poppy family
	"poppy", "california_poppy", "bloodroot",
	// Buttercup family
	"ranunculus", "anemone", "clematis", "delphinium", "columbine", "hellebore",
	// Carnation family
	"carnation", "dianthus", "baby_breath",
	// Mallow family
	"hibiscus", "hollyhock", "cotton_rose",
	// Water lily family
	"lotus", "water_lily",
	// Magnolia family
	"magnolia", "yulan",
	// Camellia family
	"camellia",
	// Primrose family
	"primrose", "cyclamen",
	// Amaryllis family
	"amaryllis", "narcissus", "daffodil", "snowdrop", "agapanthus",
	// Nightshade family
	"petunia", "nicotiana",
	// Bindweed family
	"morning_glory", "moonflower",
	// Bellflower family
	"bellflower", "lobelia",
	// Honeysuckle family
	"honeysuckle", "scabiosa",
	// Jasmine family
	"jasmine", "lilac", "osmanthus",
	// Hydrangea family
	"hydrangea",
	// Verbena family
	"verbena", "lantana",
	// Geranium family
	"geranium",
	// Snapdragon family
	"snapdragon", "foxglove", "penstemon",
	// Balsam family
	"impatiens",
	// Begonia family
	"begonia",
	// Passion flower family
	"passion_flower",
	// Violet family
	"violet", "pansy",
	// Mustard family
	"stock", "sweet_alyssum",
	// Pea family
	"sweet_pea", "wisteria", "lupine", "acacia",
	// Saxifrage family
	"astilbe", "heuchera",
	// Bougainvillea family
	"bougainvillea",
	// Gardenia family
	"gardenia", "ixora",
	// Plumbago family
	"statice",
	// Protea family
	"protea", "banksia",
	// Bird of Paradise family
	"bird_of_paradise",
	// Ginger family
	"ginger_lily", "turmeric_flower",
	// Wildflowers and others
	"wildflower", "thistle", "clover", "buttercup", "forget_me_not", "cornflower",
	"bluebell", "heather", "azalea", "rhododendron",
}

var speciesSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Species))
	for _, s := range Species {
		set[s] = struct{}{}
	}
	return set
}()

// speciesVisual maps species to their renderable category by rough
// morphological resemblance: layered cup blooms render as roses,
// composite/ray flowers as daisies, sword-leaved and exotic blooms as
// irises, spiky clustered blooms as lavender, open cup blooms as
// poppies. Species without an entry render as wildflowers.
var speciesVisual = map[string]VisualType{
	// Layered cup blooms
	"peony":          VisualRose,
	"tulip":          VisualRose,
	"cherry_blossom": VisualRose,
	"plum_blossom":   VisualRose,
	"apple_blossom":  VisualRose,
	"hawthorn":       VisualRose,
	"magnolia":       VisualRose,
	"yulan":          VisualRose,
	"camellia":       VisualRose,
	"carnation":      VisualRose,
	"dianthus":       VisualRose,
	"ranunculus":     VisualRose,
	"gardenia":       VisualRose,
	"begonia":        VisualRose,
	"cotton_rose":    VisualRose,

	// Composite / ray flowers
	"sunflower":     VisualDaisy,
	"chrysanthemum": VisualDaisy,
	"daffodil":      VisualDaisy,
	"gerbera":       VisualDaisy,
	"aster":         VisualDaisy,
	"dahlia":        VisualDaisy,
	"zinnia":        VisualDaisy,
	"marigold":      VisualDaisy,
	"cosmos":        VisualDaisy,
	"echinacea":     VisualDaisy,
	"narcissus":     VisualDaisy,
	"primrose":      VisualDaisy,

	// Sword-leaved and exotic blooms
	"orchid":           VisualIris,
	"lotus":            VisualIris,
	"phalaenopsis":     VisualIris,
	"cymbidium":        VisualIris,
	"dendrobium":       VisualIris,
	"cattleya":         VisualIris,
	"gladiolus":        VisualIris,
	"crocus":           VisualIris,
	"freesia":          VisualIris,
	"water_lily":       VisualIris,
	"bird_of_paradise": VisualIris,
	"ginger_lily":      VisualIris,

	// Spiky clustered blooms
	"lily":       VisualLavender,
	"salvia":     VisualLavender,
	"rosemary":   VisualLavender,
	"delphinium": VisualLavender,
	"lupine":     VisualLavender,
	"wisteria":   VisualLavender,
	"lilac":      VisualLavender,
	"hyacinth":   VisualLavender,
	"bluebell":   VisualLavender,
	"heather":    VisualLavender,
	"verbena":    VisualLavender,
	"foxglove":   VisualLavender,
	"penstemon":  VisualLavender,

	// Open cup blooms
	"hibiscus":         VisualPoppy,
	"california_poppy": VisualPoppy,
	"anemone":          VisualPoppy,
	"hollyhock":        VisualPoppy,
	"morning_glory":    VisualPoppy,
	"moonflower":       VisualPoppy,
	"petunia":          VisualPoppy,
	"bellflower":       VisualPoppy,
}

// Normalize maps any species string to a renderable category. Members
// of the visual enumeration pass through unchanged; everything else is
// looked up in the morphological table with "wildflower" as the
// universal default. Normalize is pure and total.
func Normalize(species string) VisualType {
	t := VisualType(species)
	if t.Validate() == nil {
		return t
	}
	if v, ok := speciesVisual[species]; ok {
		return v
	}
	return VisualWildflower
}

// KnownSpecies reports whether s appears in the taxonomy.
func KnownSpecies(s string) bool {
	_, ok := speciesSet[s]
	return ok
}

// RandomSpecies returns a uniformly random member of the taxonomy,
// used as the fallback when classification fails.
func RandomSpecies() string {
	return Species[rand.Intn(len(Species))]
}

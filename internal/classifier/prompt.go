package classifier

import (
	"strings"

	"cosmicgarden/internal/domain/flower"
)

// systemPrompt enumerates the full taxonomy and instructs the model to
// answer with a bare JSON object. The caption must come back in the
// language of the input message.
func systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a flower garden AI. Based on the user's message, mood, language, or emoji, determine the most suitable flower type from this comprehensive botanical list: ")
	b.WriteString(strings.Join(flower.Species, ", "))
	b.WriteString("\n\nGenerate a beautiful short message (max 80 chars) in the SAME LANGUAGE as the user's input.\n\n")
	b.WriteString("Respond with ONLY valid JSON in this exact format:\n")
	b.WriteString(`{"flowerType": "flower_name", "message": "beautiful message in user's language"}`)
	b.WriteString("\n\nMatch emotions and themes to flowers:\n")
	b.WriteString(`- Love/romance: rose, tulip, peony, camellia, carnation
- Joy/happiness: sunflower, daisy, daffodil, gerbera, marigold
- Peace/calm: lavender, lotus, lily, water_lily, jasmine
- Hope/new beginnings: cherry_blossom, magnolia, snowdrop, primrose
- Strength/courage: poppy, iris, gladiolus, protea
- Elegance/beauty: orchid, phalaenopsis, chrysanthemum, hydrangea
- Passion: hibiscus, bougainvillea, bird_of_paradise
- Wildness/freedom: wildflower, cosmos, bluebell
- Purity: lily, gardenia, narcissus, magnolia
- Friendship: zinnia, freesia, acacia
- Memory/remembrance: forget_me_not, rosemary, statice
- Gratitude: hydrangea, bellflower, dahlia
- Wisdom: iris, salvia, delphinium
- Healing: echinacea, lavender
- Spring/renewal: tulip, crocus, hyacinth, daffodil
- Summer: sunflower, hibiscus, dahlia, zinnia
- Autumn: chrysanthemum, aster, marigold
- Winter: hellebore, camellia, snowdrop
- Asian themes: cherry_blossom, lotus, peony, osmanthus, plum_blossom
- European themes: rose, lavender, tulip, lilac
- Tropical themes: hibiscus, bird_of_paradise, orchid, passion_flower`)
	return b.String()
}

// stripFences removes an optional markdown code fence around a
// completion, with or without a json language tag.
func stripFences(content string) string {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// Package knowledge holds the corpus of short folklore and mythology
// passages that grounds story generation. Passages are immutable after
// load and shared read-only across requests.
package knowledge

// Passage is a single unit of the knowledge corpus. The ID is the
// passage's position in the corpus and doubles as its vector store key.
type Passage struct {
	ID      int    `yaml:"-"`
	Culture string `yaml:"culture"`
	Text    string `yaml:"text"`
}

// builtinPassages is the curated demo corpus. In a larger deployment the
// corpus would be loaded from files; see Load.
var builtinPassages = []Passage{
	{
		Culture: "Japanese",
		Text:    "In Japanese folklore, Kitsune are intelligent foxes that possess paranormal abilities that increase with their age and wisdom. They are known for having multiple tails—up to nine.",
	},
	{
		Culture: "Japanese",
		Text:    "The story of Momotarō (Peach Boy) is a famous Japanese folktale about a boy born from a giant peach who goes on to defeat a band of oni (demons) with the help of his animal companions: a dog, a monkey, and a pheasant.",
	},
	{
		Culture: "Greek",
		Text:    "In ancient Greek mythology, the Trojan War was a legendary conflict between the Achaeans (Greeks) and the city of Troy. It is most famously known for the tale of the Trojan Horse, a wooden horse used by the Greeks to enter the city.",
	},
	{
		Culture: "West African",
		Text:    "Anansi the Spider is a popular Akan folktale character from West Africa. He is a trickster god who often triumphs over more powerful opponents through his cunning and wit, and is credited with giving humanity wisdom.",
	},
	{
		Culture: "South American",
		Text:    "The legend of El Dorado in South America speaks of a lost city of immense wealth, hidden deep in the Amazon rainforest. Many explorers have searched for it, but it remains a myth.",
	},
	{
		Culture: "Norse",
		Text:    "Norse mythology features a world tree called Yggdrasil, which connects the Nine Worlds. At its roots lives the dragon Níðhöggr, and an eagle sits at its top.",
	},
}

// Builtin returns a fresh copy of the built-in corpus with IDs assigned.
func Builtin() []Passage {
	passages := make([]Passage, len(builtinPassages))
	copy(passages, builtinPassages)
	for i := range passages {
		passages[i].ID = i
	}
	return passages
}

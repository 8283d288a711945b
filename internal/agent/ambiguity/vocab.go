package ambiguity

// Vocabulary used by the rule-based classifier. Matching is case-insensitive;
// phrases (e.g. "nice one") are matched as substrings, single tokens against
// whole words.

// brands whose presence alongside a product category makes a query specific.
var brands = map[string]struct{}{
	"samsung": {}, "apple": {}, "sony": {}, "lg": {}, "hp": {}, "dell": {},
	"lenovo": {}, "nike": {}, "adidas": {}, "puma": {}, "zara": {},
	"tecno": {}, "infinix": {}, "itel": {}, "oraimo": {}, "rolex": {},
}

// productCategories are words that usually indicate a product request.
var productCategories = map[string]struct{}{
	"watch": {}, "boots": {}, "phone": {}, "bag": {}, "backpack": {},
	"shoes": {}, "laptop": {}, "tv": {}, "television": {}, "earphones": {},
	"headphones": {}, "jacket": {}, "shirt": {}, "dress": {}, "fridge": {},
	"refrigerator": {},
}

// descriptors are attributes that reduce ambiguity when paired with a category.
var descriptors = map[string]struct{}{
	"waterproof": {}, "wireless": {}, "durable": {}, "lightweight": {},
	"compact": {}, "leather": {}, "wooden": {}, "budget": {}, "under": {},
	"brand": {}, "luxury": {}, "smart": {}, "digital": {},
}

// priceTerms trigger a price-focused clarification.
var priceTerms = []string{"cheap", "affordable", "budget", "cost", "price"}

// qualityTerms trigger a quality-focused clarification.
var qualityTerms = []string{"best", "good", "quality", "top"}

// genericTerms usually mean "needs clarification".
var genericTerms = []string{
	"something", "anything", "some", "nice one", "good one",
	"recommend some", "suggest some", "give me something",
}

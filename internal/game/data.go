package game

// Built-in question pools. The capital pool can be replaced at startup by
// rows imported into the database (see scripts/import_capitals); the word
// pool is fixed.

// DefaultWords is the built-in guessing pool: lowercase words of 3-6 letters.
func DefaultWords() []string {
	return []string{
		"ace", "act", "age", "air", "ant", "arm", "art", "bag", "bat", "bed",
		"bee", "big", "box", "boy", "bus", "can", "cap", "car", "cat", "cow",
		"cup", "cut", "day", "dog", "dry", "ear", "eat", "egg", "end", "eye",
		"fan", "far", "fit", "fly", "fog", "fox", "fun", "gas", "gem", "hat",
		"hen", "hit", "ice", "ink", "jam", "jet", "key", "kid", "leg", "lip",
		"log", "map", "mat", "mix", "net", "nut", "oak", "oil", "owl", "pan",
		"pen", "pet", "pig", "pin", "pot", "rat", "red", "run", "sea", "sit",
		"sky", "sun", "tap", "tea", "ten", "tip", "top", "toy", "van", "war",
		"web", "win", "zip",
		"aunt", "ball", "band", "bank", "barn", "bath", "bear", "bell", "belt",
		"bird", "blue", "boat", "bone", "book", "boot", "bowl", "cake", "calm",
		"card", "cave", "city", "clay", "coal", "coat", "coin", "cold", "cook",
		"corn", "crab", "dark", "deer", "desk", "dish", "door", "down", "drum",
		"duck", "dust", "east", "farm", "fast", "fire", "fish", "flag", "foot",
		"fork", "frog", "game", "gate", "gift", "goat", "gold", "hand", "hill",
		"home", "hunt", "iron", "jump", "kind", "king", "lake", "lamp", "land",
		"leaf", "lion", "lock", "luck", "mask", "milk", "moon", "nest", "news",
		"nose", "palm", "park", "path", "pear", "pond", "rain", "ring", "road",
		"rock", "roof", "room", "root", "rope", "sail", "salt", "sand", "seed",
		"ship", "shoe", "snow", "song", "star", "swan", "tent", "tree", "wall",
		"wave", "west", "wind", "wolf", "wood", "wool", "yard",
		"apple", "beach", "bread", "brick", "broom", "camel", "chair", "chalk",
		"cloud", "coast", "crane", "cream", "crown", "dance", "dream", "eagle",
		"earth", "field", "flame", "floor", "fruit", "glass", "grape", "grass",
		"green", "heart", "horse", "house", "lemon", "light", "mango", "money",
		"mouse", "music", "night", "ocean", "olive", "onion", "paint", "paper",
		"peach", "pearl", "piano", "plant", "queen", "river", "sheep", "shell",
		"smile", "snake", "spoon", "stone", "storm", "sugar", "table", "tiger",
		"torch", "train", "water", "whale", "wheat", "wheel", "world", "zebra",
		"animal", "basket", "bottle", "branch", "bridge", "butter", "camera",
		"candle", "carpet", "carrot", "castle", "cheese", "cherry", "circle",
		"coffee", "cotton", "desert", "dinner", "donkey", "dragon", "flower",
		"forest", "garden", "ginger", "guitar", "hammer", "helmet", "island",
		"jungle", "kitten", "ladder", "lizard", "market", "meadow", "mirror",
		"monkey", "mother", "needle", "orange", "parrot", "pencil", "pepper",
		"pigeon", "pillow", "planet", "pocket", "potato", "rabbit", "ribbon",
		"rocket", "saddle", "school", "shadow", "silver", "spider", "spring",
		"street", "summer", "temple", "thread", "tomato", "tunnel", "turtle",
		"valley", "violin", "window", "winter", "yellow",
	}
}

// DefaultCapitals is the built-in capital-city pool.
func DefaultCapitals() []CapitalPair {
	return []CapitalPair{
		{Country: "Kenya", Capital: "Nairobi"},
		{Country: "Nigeria", Capital: "Abuja"},
		{Country: "France", Capital: "Paris"},
		{Country: "Brazil", Capital: "Brasília"},
		{Country: "Japan", Capital: "Tokyo"},
		{Country: "Germany", Capital: "Berlin"},
		{Country: "Italy", Capital: "Rome"},
		{Country: "Spain", Capital: "Madrid"},
		{Country: "Portugal", Capital: "Lisbon"},
		{Country: "Egypt", Capital: "Cairo"},
		{Country: "Ghana", Capital: "Accra"},
		{Country: "Ethiopia", Capital: "Addis Ababa"},
		{Country: "South Africa", Capital: "Pretoria"},
		{Country: "Morocco", Capital: "Rabat"},
		{Country: "Tanzania", Capital: "Dodoma"},
		{Country: "Uganda", Capital: "Kampala"},
		{Country: "Canada", Capital: "Ottawa"},
		{Country: "United States", Capital: "Washington"},
		{Country: "Mexico", Capital: "Mexico City"},
		{Country: "Argentina", Capital: "Buenos Aires"},
		{Country: "Chile", Capital: "Santiago"},
		{Country: "Peru", Capital: "Lima"},
		{Country: "Colombia", Capital: "Bogotá"},
		{Country: "China", Capital: "Beijing"},
		{Country: "India", Capital: "New Delhi"},
		{Country: "South Korea", Capital: "Seoul"},
		{Country: "Indonesia", Capital: "Jakarta"},
		{Country: "Thailand", Capital: "Bangkok"},
		{Country: "Vietnam", Capital: "Hanoi"},
		{Country: "Turkey", Capital: "Ankara"},
		{Country: "Iran", Capital: "Tehran"},
		{Country: "Saudi Arabia", Capital: "Riyadh"},
		{Country: "Russia", Capital: "Moscow"},
		{Country: "Ukraine", Capital: "Kyiv"},
		{Country: "Poland", Capital: "Warsaw"},
		{Country: "Netherlands", Capital: "Amsterdam"},
		{Country: "Belgium", Capital: "Brussels"},
		{Country: "Sweden", Capital: "Stockholm"},
		{Country: "Norway", Capital: "Oslo"},
		{Country: "Finland", Capital: "Helsinki"},
		{Country: "Greece", Capital: "Athens"},
		{Country: "Austria", Capital: "Vienna"},
		{Country: "Switzerland", Capital: "Bern"},
		{Country: "Australia", Capital: "Canberra"},
		{Country: "New Zealand", Capital: "Wellington"},
	}
}

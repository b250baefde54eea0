package matching

// DefaultRules is the built-in category rule table, in precedence order.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{Category: CategoryKey, Keywords: []string{
			"chicken", "beef", "pork", "lamb", "turkey", "duck", "veal", "venison",
			"fish", "salmon", "tuna", "cod", "tilapia", "halibut", "trout",
			"shrimp", "prawn", "crab", "lobster", "scallop", "mussel", "clam",
			"bacon", "sausage", "ham", "steak", "meat", "chorizo", "prosciutto",
			"tofu", "tempeh", "seitan", "lentil", "chickpea",
			"black bean", "kidney bean", "pinto bean", "white bean", "cannellini",
			"pasta", "spaghetti", "penne", "noodle", "rice", "quinoa", "couscous",
		}},
		{Category: CategoryImportant, Keywords: []string{
			"onion", "shallot", "leek", "tomato", "potato", "carrot", "celery",
			"bell pepper", "mushroom", "spinach", "kale", "broccoli", "cauliflower",
			"zucchini", "eggplant", "cabbage", "lettuce", "cucumber", "corn", "peas",
			"green bean", "asparagus", "squash", "pumpkin",
			"cheese", "parmesan", "mozzarella", "cheddar", "feta",
			"egg", "milk", "cream", "yogurt", "sauce", "stock", "broth", "wine",
			"tortilla", "bread", "crumbs", "lemon", "lime", "orange", "apple",
			"avocado",
		}},
		{Category: CategoryFlavor, Keywords: []string{
			"garlic", "ginger", "basil", "oregano", "thyme", "rosemary", "parsley",
			"cilantro", "cumin", "paprika", "chili", "cinnamon", "nutmeg", "curry",
			"vanilla", "bay leaf", "dill", "mint", "turmeric", "coriander",
			"cayenne", "chive", "sage", "seasoning", "spice", "herb", "mustard",
			"vinegar", "honey", "maple", "soy", "sesame", "zest",
		}},
		{Category: CategoryBase, Keywords: []string{
			"salt", "pepper", "oil", "water", "sugar", "flour", "butter",
			"baking soda", "baking powder", "yeast",
		}},
	}
}

// DefaultSubstitutions is the built-in substitution index.
func DefaultSubstitutions() map[string][]string {
	return map[string][]string{
		"sour cream":     {"greek yogurt", "plain yogurt", "creme fraiche"},
		"heavy cream":    {"half and half", "coconut cream", "evaporated milk"},
		"buttermilk":     {"milk and lemon juice", "plain yogurt", "kefir"},
		"milk":           {"almond milk", "oat milk", "soy milk"},
		"butter":         {"margarine", "coconut oil", "olive oil"},
		"egg":            {"flax egg", "applesauce", "mashed banana"},
		"eggs":           {"flax egg", "applesauce", "mashed banana"},
		"chicken breast": {"chicken thighs", "turkey breast", "tofu"},
		"chicken":        {"turkey", "tofu", "tempeh"},
		"ground beef":    {"ground turkey", "ground pork", "lentils"},
		"beef":           {"pork", "lamb", "mushrooms"},
		"shrimp":         {"prawns", "scallops", "chicken"},
		"salmon":         {"trout", "arctic char", "tuna"},
		"tofu":           {"tempeh", "paneer", "chickpeas"},
		"onion":          {"shallot", "leek", "green onion"},
		"garlic":         {"garlic powder", "shallot"},
		"lemon juice":    {"lime juice", "white wine vinegar"},
		"parmesan":       {"pecorino", "grana padano", "nutritional yeast"},
		"mozzarella":     {"provolone", "monterey jack"},
		"rice":           {"quinoa", "cauliflower rice", "couscous"},
		"pasta":          {"rice noodles", "zucchini noodles", "gnocchi"},
		"soy sauce":      {"tamari", "coconut aminos"},
		"honey":          {"maple syrup", "agave"},
		"spinach":        {"kale", "swiss chard", "arugula"},
		"bread crumbs":   {"panko", "crushed crackers", "rolled oats"},
		"cilantro":       {"parsley", "basil"},
		"basil":          {"oregano", "parsley", "spinach"},
		"tomato":         {"canned tomatoes", "tomato paste", "red bell pepper"},
		"white wine":     {"chicken broth", "white grape juice"},
		"greek yogurt":   {"sour cream", "plain yogurt"},
	}
}

// DefaultTables builds Tables from the built-in data.
func DefaultTables() Tables {
	rules, err := NewRuleTable(DefaultRules())
	if err != nil {
		panic("matching: default rule table is invalid: " + err.Error())
	}
	return Tables{Rules: rules, Substitutions: NewSubstitutionIndex(DefaultSubstitutions())}
}

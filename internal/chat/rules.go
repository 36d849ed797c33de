package chat

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

const (
	RuleGreeting     = "greeting"
	RuleHelp         = "help"
	RulePriceUnder   = "price_under"
	RulePriceOver    = "price_over"
	RulePriceRange   = "price_range"
	RuleCategory     = "category"
	RuleBrand        = "brand"
	RuleRecommend    = "recommend"
	RuleAvailability = "availability"
	RuleSearch       = "search"
)

const (
	greetingText = "Hello! I'm here to help you find the perfect tech products. What are you looking for today?"

	helpText = "I can help you with:\n" +
		"• Finding products by name, category, or brand\n" +
		"• Filtering by price range\n" +
		"• Comparing different products\n" +
		"• Getting detailed product information\n" +
		"• Checking availability and stock\n\n" +
		"Try asking something like 'Show me laptops under $1500' or 'What Apple products do you have?'"

	recommendText = "Here are our top-rated products that I'd recommend:"

	availableText = "Here are all our currently available products:"

	noResultsText = "I couldn't find any products matching your search. " +
		"Try searching for specific categories like 'laptops', 'smartphones', 'audio', or 'tablets'. " +
		"You can also ask about specific brands like 'Apple', 'Samsung', 'Sony', or 'Dell'."
)

const (
	recommendMinRating = 4.5
	recommendLimit     = 6
)

var (
	greetingRe   = regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening)`)
	priceUnderRe = regexp.MustCompile(`under\s+\$?(\d+)|below\s+\$?(\d+)|less\s+than\s+\$?(\d+)`)
	priceOverRe  = regexp.MustCompile(`over\s+\$?(\d+)|above\s+\$?(\d+)|more\s+than\s+\$?(\d+)`)
	priceRangeRe = regexp.MustCompile(`between\s+\$?(\d+)\s+and\s+\$?(\d+)|from\s+\$?(\d+)\s+to\s+\$?(\d+)`)
)

type input struct {
	raw   string
	lower string
}

func newInput(utterance string) input {
	return input{raw: utterance, lower: strings.ToLower(utterance)}
}

// rule is one step of the cascade. match reports whether the rule fires and
// returns whatever it extracted from the message; handle builds the reply.
type rule struct {
	name   string
	match  func(in input) ([]string, bool)
	handle func(in input, args []string) ChatResponse
}

// buildRules returns the cascade in precedence order. Price rules come before
// the plain category and brand rules so that a bound in the message is never
// shadowed by a product word next to it.
func (i *Interpreter) buildRules() []rule {
	return []rule{
		{
			name:   RuleGreeting,
			match:  matchRegexp(greetingRe),
			handle: fixed(greetingText),
		},
		{
			name:   RuleHelp,
			match:  containsAny("help", "what can you do"),
			handle: fixed(helpText),
		},
		{
			name:  RulePriceUnder,
			match: matchPrice(priceUnderRe, 1),
			handle: func(in input, args []string) ChatResponse {
				upper := parsePrice(args[0])
				return i.priced(in, fmt.Sprintf("Here are products under $%s:", formatPrice(upper)), nil, &upper)
			},
		},
		{
			name:  RulePriceOver,
			match: matchPrice(priceOverRe, 1),
			handle: func(in input, args []string) ChatResponse {
				lower := parsePrice(args[0])
				return i.priced(in, fmt.Sprintf("Here are products over $%s:", formatPrice(lower)), &lower, nil)
			},
		},
		{
			name:  RulePriceRange,
			match: matchPrice(priceRangeRe, 2),
			handle: func(in input, args []string) ChatResponse {
				lower, upper := parsePrice(args[0]), parsePrice(args[1])
				text := fmt.Sprintf("Here are products between $%s and $%s:", formatPrice(lower), formatPrice(upper))
				return i.priced(in, text, &lower, &upper)
			},
		},
		{
			name: RuleCategory,
			match: func(in input) ([]string, bool) {
				return mentioned(in, i.catalog.GetCategories())
			},
			handle: func(_ input, args []string) ChatResponse {
				return ChatResponse{
					Text:     fmt.Sprintf("Here are our %s products:", args[0]),
					Products: i.catalog.SearchProducts("", &catalog.SearchFilters{Category: args[0]}),
				}
			},
		},
		{
			name: RuleBrand,
			match: func(in input) ([]string, bool) {
				return mentioned(in, i.catalog.GetBrands())
			},
			handle: func(_ input, args []string) ChatResponse {
				return ChatResponse{
					Text:     fmt.Sprintf("Here are our %s products:", args[0]),
					Products: i.catalog.SearchProducts("", &catalog.SearchFilters{Brand: args[0]}),
				}
			},
		},
		{
			name:   RuleRecommend,
			match:  containsAny("recommend", "suggest", "best"),
			handle: func(input, []string) ChatResponse { return i.recommend() },
		},
		{
			name:  RuleAvailability,
			match: containsAny("available", "in stock"),
			handle: func(input, []string) ChatResponse {
				var inStock []models.Product
				for _, p := range i.catalog.SearchProducts("", nil) {
					if p.InStock {
						inStock = append(inStock, p)
					}
				}
				if inStock == nil {
					inStock = []models.Product{}
				}
				return ChatResponse{Text: availableText, Products: inStock}
			},
		},
		{
			name:   RuleSearch,
			match:  func(input) ([]string, bool) { return nil, true },
			handle: func(in input, _ []string) ChatResponse { return i.search(in) },
		},
	}
}

// priced answers a price rule, narrowed by the first category and brand the
// message mentions.
func (i *Interpreter) priced(in input, text string, lower, upper *float64) ChatResponse {
	f := &catalog.SearchFilters{MinPrice: lower, MaxPrice: upper}
	if c, ok := mentioned(in, i.catalog.GetCategories()); ok {
		f.Category = c[0]
	}
	if b, ok := mentioned(in, i.catalog.GetBrands()); ok {
		f.Brand = b[0]
	}
	return ChatResponse{Text: text, Products: i.catalog.SearchProducts("", f)}
}

func (i *Interpreter) recommend() ChatResponse {
	var top []models.Product
	for _, p := range i.catalog.SearchProducts("", nil) {
		if p.Rating >= recommendMinRating {
			top = append(top, p)
		}
	}
	slices.SortStableFunc(top, func(a, b models.Product) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	})
	if len(top) > recommendLimit {
		top = top[:recommendLimit]
	}
	if top == nil {
		top = []models.Product{}
	}
	return ChatResponse{Text: recommendText, Products: top}
}

func (i *Interpreter) search(in input) ChatResponse {
	results := i.catalog.SearchProducts(in.raw, nil)
	if len(results) == 0 {
		return ChatResponse{Text: noResultsText, Rule: RuleSearch}
	}

	noun := "products"
	if len(results) == 1 {
		noun = "product"
	}
	return ChatResponse{
		Text:     fmt.Sprintf("I found %d %s matching your search:", len(results), noun),
		Products: results,
		Rule:     RuleSearch,
	}
}

func fixed(text string) func(input, []string) ChatResponse {
	return func(input, []string) ChatResponse {
		return ChatResponse{Text: text}
	}
}

func matchRegexp(re *regexp.Regexp) func(input) ([]string, bool) {
	return func(in input) ([]string, bool) {
		return nil, re.MatchString(in.lower)
	}
}

func containsAny(needles ...string) func(input) ([]string, bool) {
	return func(in input) ([]string, bool) {
		for _, n := range needles {
			if strings.Contains(in.lower, n) {
				return nil, true
			}
		}
		return nil, false
	}
}

// matchPrice returns the first n non-empty capture groups of re. Each
// alternative of the price patterns captures exactly n numbers.
func matchPrice(re *regexp.Regexp, n int) func(input) ([]string, bool) {
	return func(in input) ([]string, bool) {
		groups := re.FindStringSubmatch(in.lower)
		if groups == nil {
			return nil, false
		}
		var nums []string
		for _, g := range groups[1:] {
			if g != "" {
				nums = append(nums, g)
			}
			if len(nums) == n {
				return nums, true
			}
		}
		return nil, false
	}
}

// mentioned returns the first of names that appears in the message.
func mentioned(in input, names []string) ([]string, bool) {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if strings.Contains(in.lower, strings.ToLower(name)) {
			return []string{name}, true
		}
	}
	return nil, false
}

func parsePrice(digits string) float64 {
	v, _ := strconv.ParseFloat(digits, 64)
	return v
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

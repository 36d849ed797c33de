package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/chat"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/rogerio-castellano/storefront-assistant/internal/repo"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterpreter(t *testing.T, cfg chat.Config) *chat.Interpreter {
	t.Helper()
	store, err := catalog.New(repo.BuiltinProducts())
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	return chat.NewInterpreter(store, cfg, log)
}

func respond(t *testing.T, i *chat.Interpreter, utterance string) chat.ChatResponse {
	t.Helper()
	resp, err := i.Respond(t.Context(), utterance)
	require.NoError(t, err)
	return resp
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestRespond_Rules(t *testing.T) {
	i := newInterpreter(t, chat.Config{})

	tests := []struct {
		name      string
		utterance string
		rule      string
		text      string
		ids       []string
	}{
		{
			name:      "greeting wins over category",
			utterance: "hello, show me laptops",
			rule:      chat.RuleGreeting,
			text:      "Hello! I'm here to help you find the perfect tech products. What are you looking for today?",
		},
		{
			name:      "good evening",
			utterance: "Good evening there",
			rule:      chat.RuleGreeting,
		},
		{
			name:      "help",
			utterance: "Can you help me?",
			rule:      chat.RuleHelp,
		},
		{
			name:      "what can you do",
			utterance: "so what can you do",
			rule:      chat.RuleHelp,
		},
		{
			name:      "price under scoped by category",
			utterance: "Show me laptops under $1500",
			rule:      chat.RulePriceUnder,
			text:      "Here are products under $1500:",
			ids:       []string{"3"},
		},
		{
			name:      "price below without currency sign",
			utterance: "anything below 500",
			rule:      chat.RulePriceUnder,
			text:      "Here are products under $500:",
			ids:       []string{"5"},
		},
		{
			name:      "price with leading zeros",
			utterance: "anything under $0500",
			rule:      chat.RulePriceUnder,
			text:      "Here are products under $500:",
			ids:       []string{"5"},
		},
		{
			name:      "price over",
			utterance: "phones more than $1000",
			rule:      chat.RulePriceOver,
			text:      "Here are products over $1000:",
			ids:       []string{"1", "3", "4", "6"},
		},
		{
			name:      "price range",
			utterance: "something between $1000 and $1300",
			rule:      chat.RulePriceRange,
			text:      "Here are products between $1000 and $1300:",
			ids:       []string{"3", "4", "6"},
		},
		{
			name:      "price range from to",
			utterance: "Apple from $900 to $1100",
			rule:      chat.RulePriceRange,
			text:      "Here are products between $900 and $1100:",
			ids:       []string{"2", "6"},
		},
		{
			name:      "range with leading zeros",
			utterance: "Apple from $0900 to $01100",
			rule:      chat.RulePriceRange,
			text:      "Here are products between $900 and $1100:",
			ids:       []string{"2", "6"},
		},
		{
			name:      "inverted range is passed through",
			utterance: "between 2000 and 100",
			rule:      chat.RulePriceRange,
			text:      "Here are products between $2000 and $100:",
			ids:       []string{},
		},
		{
			name:      "category",
			utterance: "What smartphones do you have?",
			rule:      chat.RuleCategory,
			text:      "Here are our Smartphones products:",
			ids:       []string{"2", "4"},
		},
		{
			name:      "brand",
			utterance: "anything from SAMSUNG",
			rule:      chat.RuleBrand,
			text:      "Here are our Samsung products:",
			ids:       []string{"4"},
		},
		{
			name:      "recommend sorts by rating keeping catalog order on ties",
			utterance: "what would you recommend",
			rule:      chat.RuleRecommend,
			text:      "Here are our top-rated products that I'd recommend:",
			ids:       []string{"1", "5", "2", "6", "4", "3"},
		},
		{
			name:      "availability",
			utterance: "what is in stock",
			rule:      chat.RuleAvailability,
			text:      "Here are all our currently available products:",
			ids:       []string{"1", "2", "3", "4", "5"},
		},
		{
			name:      "fallback single result",
			utterance: "noise cancelling",
			rule:      chat.RuleSearch,
			text:      "I found 1 product matching your search:",
			ids:       []string{"5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := respond(t, i, tt.utterance)
			assert.Equal(t, tt.rule, resp.Rule)
			if tt.text != "" {
				assert.Equal(t, tt.text, resp.Text)
			}
			if tt.ids != nil {
				require.NotNil(t, resp.Products)
				assert.Equal(t, tt.ids, ids(resp.Products))
			}
		})
	}
}

func TestRespond_NoResults(t *testing.T) {
	i := newInterpreter(t, chat.Config{})

	resp := respond(t, i, "xyzzyqqq")
	assert.Equal(t, chat.RuleSearch, resp.Rule)
	assert.Contains(t, resp.Text, "I couldn't find any products matching your search.")
	assert.Nil(t, resp.Products)
}

func TestRespond_FixedRulesCarryNoProducts(t *testing.T) {
	i := newInterpreter(t, chat.Config{})

	for _, u := range []string{"hi", "help"} {
		resp := respond(t, i, u)
		assert.Nil(t, resp.Products, u)
	}
}

func TestRespond_FallbackPlural(t *testing.T) {
	store, err := catalog.New([]models.Product{
		{ID: "a", Name: "Red widget", Category: "Gadgets", Brand: "Acme", Price: 10, Rating: 3},
		{ID: "b", Name: "Blue widget", Category: "Gadgets", Brand: "Acme", Price: 20, Rating: 3},
	})
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	i := chat.NewInterpreter(store, chat.Config{}, log)

	resp := respond(t, i, "widget")
	assert.Equal(t, "I found 2 products matching your search:", resp.Text)
	assert.Equal(t, []string{"a", "b"}, ids(resp.Products))
}

func TestRespond_RecommendLimit(t *testing.T) {
	var products []models.Product
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		products = append(products, models.Product{ID: id, Name: id, Category: "X", Brand: "Y", Rating: 4.9})
	}
	store, err := catalog.New(products)
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	i := chat.NewInterpreter(store, chat.Config{}, log)

	resp := respond(t, i, "best picks")
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, ids(resp.Products))
}

func TestRespond_Delay(t *testing.T) {
	i := newInterpreter(t, chat.Config{Delay: 20 * time.Millisecond})

	start := time.Now()
	resp := respond(t, i, "hi")
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, chat.RuleGreeting, resp.Rule)
}

func TestRespond_CallerGivesUp(t *testing.T) {
	i := newInterpreter(t, chat.Config{Delay: time.Second})

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := i.Respond(ctx, "hi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// blankNamesCatalog reports an empty category and brand the way an unchecked
// source could.
type blankNamesCatalog struct {
	chat.Catalog
}

func (c blankNamesCatalog) GetCategories() []string {
	return append([]string{""}, c.Catalog.GetCategories()...)
}

func (c blankNamesCatalog) GetBrands() []string {
	return append([]string{" "}, c.Catalog.GetBrands()...)
}

func TestRespond_BlankNamesNeverMatch(t *testing.T) {
	store, err := catalog.New(repo.BuiltinProducts())
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	i := chat.NewInterpreter(blankNamesCatalog{store}, chat.Config{}, log)

	assert.Equal(t, chat.RuleRecommend, respond(t, i, "what do you recommend").Rule)
	assert.Equal(t, chat.RuleSearch, respond(t, i, "xyzzy").Rule)
	assert.Equal(t, chat.RuleCategory, respond(t, i, "any tablets?").Rule)
}

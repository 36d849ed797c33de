// Package chat turns a free-text shopper message into a canned reply and,
// when the message names something in the catalog, the matching products.
package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/sirupsen/logrus"
)

// Catalog is the read side of the catalog the interpreter queries.
type Catalog interface {
	SearchProducts(query string, filters *catalog.SearchFilters) []models.Product
	GetCategories() []string
	GetBrands() []string
}

// ChatResponse is the assistant reply. Products is nil when the matched rule
// carries no catalog result.
type ChatResponse struct {
	Text     string           `json:"text"`
	Products []models.Product `json:"products,omitempty"`
	// Rule names the rule that produced the reply.
	Rule string `json:"-"`
}

// Config controls the simulated thinking time before each reply.
type Config struct {
	Delay  time.Duration
	Jitter time.Duration
}

type Interpreter struct {
	catalog Catalog
	cfg     Config
	rules   []rule
	log     logrus.FieldLogger
}

func NewInterpreter(c Catalog, cfg Config, log logrus.FieldLogger) *Interpreter {
	i := &Interpreter{
		catalog: c,
		cfg:     cfg,
		log:     log,
	}
	i.rules = i.buildRules()
	return i
}

// Respond waits for the configured delay, then runs the rule cascade. The only
// error it returns is the context error when the caller gives up while waiting.
func (i *Interpreter) Respond(ctx context.Context, utterance string) (ChatResponse, error) {
	const op = "Interpreter.Respond"

	if err := i.wait(ctx); err != nil {
		return ChatResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	resp := i.interpret(utterance)
	i.log.WithFields(logrus.Fields{
		"rule":     resp.Rule,
		"products": len(resp.Products),
	}).Debug("chat message interpreted")
	return resp, nil
}

func (i *Interpreter) interpret(utterance string) ChatResponse {
	in := newInput(utterance)
	for _, r := range i.rules {
		args, ok := r.match(in)
		if !ok {
			continue
		}
		resp := r.handle(in, args)
		resp.Rule = r.name
		return resp
	}
	// unreachable while the search rule closes the list
	return i.search(in)
}

func (i *Interpreter) wait(ctx context.Context) error {
	d := i.cfg.Delay
	if i.cfg.Jitter > 0 {
		d += time.Duration(rand.Int64N(int64(i.cfg.Jitter)))
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

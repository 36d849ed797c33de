// Package session owns the per-profile state of the storefront assistant and
// the operations a shopper triggers on it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-assistant/internal/cart"
	"github.com/rogerio-castellano/storefront-assistant/internal/chat"
	"github.com/rogerio-castellano/storefront-assistant/internal/events"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/rogerio-castellano/storefront-assistant/internal/redissvc"
	"github.com/sirupsen/logrus"
)

const (
	welcomeTextFormat = "Welcome %s! I'm your personal shopping assistant. " +
		"I can help you find electronics, compare products, and answer questions about our inventory. " +
		"Try asking me something like \"Show me laptops under $1500\" or \"What smartphones do you have?\""

	resetText = "Chat reset! How can I help you find the perfect tech product today?"

	// ApologyText replaces the assistant reply when interpreting a message fails.
	ApologyText = "Sorry, I encountered an error processing your request. Please try again."
)

type Interpreter interface {
	Respond(ctx context.Context, utterance string) (chat.ChatResponse, error)
}

type Catalog interface {
	GetProductByID(id string) (models.Product, bool)
}

type Config struct {
	// ReplyTimeout bounds one interpretation. Zero means no bound.
	ReplyTimeout time.Duration
}

type Manager struct {
	store     redissvc.Store
	interp    Interpreter
	catalog   Catalog
	publisher events.Publisher
	cfg       Config
	log       logrus.FieldLogger
	locks     *profileLocks

	now   func() time.Time
	newID func() string
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator sets the id generator for users, messages and cart lines.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

func WithPublisher(p events.Publisher) Option {
	return func(m *Manager) { m.publisher = p }
}

func NewManager(
	store redissvc.Store,
	interp Interpreter,
	catalog Catalog,
	cfg Config,
	log logrus.FieldLogger,
	opts ...Option,
) *Manager {
	m := &Manager{
		store:     store,
		interp:    interp,
		catalog:   catalog,
		publisher: events.NopPublisher{},
		cfg:       cfg,
		log:       log,
		locks:     newProfileLocks(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendResult holds the two turns a message adds to the conversation.
type SendResult struct {
	User  models.Message `json:"user"`
	Reply models.Message `json:"reply"`
}

// Open loads the state of a profile. The result is a snapshot; use the other
// Manager methods to change it.
func (m *Manager) Open(ctx context.Context, profileID string) (*Session, error) {
	var out *Session
	err := m.withSession(ctx, profileID, func(s *Session) error {
		out = s
		return nil
	})
	return out, err
}

// SignIn records the shopper of a profile and greets them on an empty
// conversation.
func (m *Manager) SignIn(ctx context.Context, profileID, name, email string) (models.User, error) {
	const op = "Manager.SignIn"

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidUser)
	}

	var user models.User
	err := m.withSession(ctx, profileID, func(s *Session) error {
		user = models.User{
			ID:        m.newID(),
			Email:     email,
			Name:      name,
			LoginTime: m.timestamp(),
		}
		s.User = &user
		if err := s.saveUser(ctx); err != nil {
			return err
		}

		if len(s.History) > 0 {
			return nil
		}
		s.History = []models.Message{m.assistantMessage(fmt.Sprintf(welcomeTextFormat, name), nil)}
		return s.saveHistory(ctx)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	m.log.WithField("profile_id", profileID).Info("user signed in")
	return user, nil
}

// SignOut forgets the user and the conversation. The cart is kept.
func (m *Manager) SignOut(ctx context.Context, profileID string) error {
	const op = "Manager.SignOut"

	err := m.withSession(ctx, profileID, func(s *Session) error {
		s.User = nil
		s.History = nil
		return m.store.Delete(ctx, s.key(redissvc.UserKey), s.key(redissvc.HistoryKey))
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Manager) CurrentUser(ctx context.Context, profileID string) (models.User, error) {
	const op = "Manager.CurrentUser"

	s, err := m.Open(ctx, profileID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if s.User == nil {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrNotSignedIn)
	}
	return *s.User, nil
}

func (m *Manager) History(ctx context.Context, profileID string) ([]models.Message, error) {
	const op = "Manager.History"

	s, err := m.Open(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.User == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotSignedIn)
	}
	if s.History == nil {
		return []models.Message{}, nil
	}
	return s.History, nil
}

// Send appends the shopper's message and the assistant reply to the
// conversation. The user turn is saved before interpreting and the profile is
// not locked while the assistant is thinking. If ctx ends meanwhile the reply
// is dropped and ctx's error returned; any other failure turns the reply into
// ApologyText. A reply that arrives after the user signed out is dropped.
func (m *Manager) Send(ctx context.Context, profileID, text string) (SendResult, error) {
	const op = "Manager.Send"

	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}

	var res SendResult
	var userID string
	err := m.withSession(ctx, profileID, func(s *Session) error {
		if s.User == nil {
			return ErrNotSignedIn
		}
		userID = s.User.ID

		res.User = m.userMessage(text)
		s.History = append(s.History, res.User)
		return s.saveHistory(ctx)
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := m.respond(ctx, text)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return SendResult{}, fmt.Errorf("%s: %w", op, ctxErr)
	}
	if err != nil {
		m.log.WithError(err).WithField("profile_id", profileID).Warn("chat reply failed")
		resp = chat.ChatResponse{Text: ApologyText}
	}

	err = m.withSession(ctx, profileID, func(s *Session) error {
		if s.User == nil || s.User.ID != userID {
			return ErrNotSignedIn
		}
		res.Reply = m.assistantMessage(resp.Text, resp.Products)
		s.History = append(s.History, res.Reply)
		return s.saveHistory(ctx)
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if resp.Rule != "" {
		m.publish(ctx, events.ChatQueryEvent{
			ProfileID:   profileID,
			Query:       text,
			Rule:        resp.Rule,
			ResultCount: len(resp.Products),
			OccurredAt:  m.now(),
		})
	}
	return res, nil
}

// ResetChat replaces the conversation with a single assistant message.
func (m *Manager) ResetChat(ctx context.Context, profileID string) ([]models.Message, error) {
	const op = "Manager.ResetChat"

	var history []models.Message
	err := m.withSession(ctx, profileID, func(s *Session) error {
		if s.User == nil {
			return ErrNotSignedIn
		}
		s.History = []models.Message{m.assistantMessage(resetText, nil)}
		history = s.History
		return s.saveHistory(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

func (m *Manager) Cart(ctx context.Context, profileID string) (CartView, error) {
	const op = "Manager.Cart"

	s, err := m.Open(ctx, profileID)
	if err != nil {
		return CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.CartView(), nil
}

// AddProduct puts one unit of a catalog product in the cart.
func (m *Manager) AddProduct(ctx context.Context, profileID, productID string) (CartView, error) {
	const op = "Manager.AddProduct"

	p, ok := m.catalog.GetProductByID(productID)
	if !ok {
		return CartView{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	if !p.InStock {
		return CartView{}, fmt.Errorf("%s: %w", op, ErrOutOfStock)
	}

	view, err := m.updateCart(ctx, profileID, func(c *cart.Cart) {
		c.Add(p.ID, p.Name, p.Price, p.Image)
	})
	if err != nil {
		return CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// UpdateCartItem sets a line quantity; zero or less removes the line.
func (m *Manager) UpdateCartItem(ctx context.Context, profileID, itemID string, quantity int) (CartView, error) {
	const op = "Manager.UpdateCartItem"

	view, err := m.updateCart(ctx, profileID, func(c *cart.Cart) {
		c.UpdateQuantity(itemID, quantity)
	})
	if err != nil {
		return CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (m *Manager) RemoveCartItem(ctx context.Context, profileID, itemID string) (CartView, error) {
	const op = "Manager.RemoveCartItem"

	view, err := m.updateCart(ctx, profileID, func(c *cart.Cart) {
		c.Remove(itemID)
	})
	if err != nil {
		return CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (m *Manager) ClearCart(ctx context.Context, profileID string) (CartView, error) {
	const op = "Manager.ClearCart"

	view, err := m.updateCart(ctx, profileID, func(c *cart.Cart) {
		c.Clear()
	})
	if err != nil {
		return CartView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (m *Manager) updateCart(ctx context.Context, profileID string, change func(*cart.Cart)) (CartView, error) {
	var view CartView
	err := m.withSession(ctx, profileID, func(s *Session) error {
		change(s.Cart)
		if err := s.saveCart(ctx); err != nil {
			return err
		}
		view = s.CartView()
		return nil
	})
	return view, err
}

// Ping reports whether the backing store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) withSession(ctx context.Context, profileID string, fn func(*Session) error) error {
	unlock, err := m.locks.lock(ctx, profileID)
	if err != nil {
		return err
	}
	defer unlock()

	s := &Session{ProfileID: profileID, store: m.store}
	if err := s.load(ctx, cart.WithIDGenerator(m.newID)); err != nil {
		return err
	}
	return fn(s)
}

func (m *Manager) respond(ctx context.Context, text string) (chat.ChatResponse, error) {
	if m.cfg.ReplyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ReplyTimeout)
		defer cancel()
	}
	return m.interp.Respond(ctx, text)
}

func (m *Manager) publish(ctx context.Context, e events.ChatQueryEvent) {
	if err := m.publisher.PublishChatQuery(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		m.log.WithError(err).WithField("profile_id", e.ProfileID).Warn("chat query event not published")
	}
}

func (m *Manager) userMessage(text string) models.Message {
	return models.Message{
		ID:        m.newID(),
		Text:      text,
		IsUser:    true,
		Timestamp: m.timestamp(),
	}
}

func (m *Manager) assistantMessage(text string, products []models.Product) models.Message {
	return models.Message{
		ID:        m.newID(),
		Text:      text,
		Timestamp: m.timestamp(),
		Products:  products,
	}
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

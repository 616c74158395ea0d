package services

import (
	"strings"
	"sync"

	"github.com/DhruvSimform/email-library/config"
	"github.com/DhruvSimform/email-library/interfaces"
	er "github.com/DhruvSimform/email-library/internal/errors"
	"github.com/DhruvSimform/email-library/internal/logger"
	"github.com/DhruvSimform/email-library/services/gmail"
	"github.com/DhruvSimform/email-library/services/imap"
	"github.com/DhruvSimform/email-library/services/outlook"
)

// Registry maps a case-normalized provider name to an adapter factory. It is
// the only extension point for adding providers; it performs no network or
// credential work itself.
type Registry struct {
	cfg       *config.Config
	log       logger.Logger
	mu        sync.RWMutex
	factories map[string]interfaces.ProviderFactory
}

func NewRegistry(cfg *config.Config, log logger.Logger) *Registry {
	return &Registry{
		cfg:       cfg,
		log:       log,
		factories: make(map[string]interfaces.ProviderFactory),
	}
}

// DefaultRegistry ships with the built-in gmail, outlook and imap adapters.
func DefaultRegistry(cfg *config.Config, log logger.Logger) *Registry {
	r := NewRegistry(cfg, log)
	r.Register("gmail", gmail.NewGmailProvider)
	r.Register("outlook", outlook.NewOutlookProvider)
	r.Register("imap", imap.NewIMAPProvider)
	return r
}

// Register adds or replaces a factory; the last registration wins.
func (r *Registry) Register(name string, factory interfaces.ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalizeName(name)] = factory
}

// Resolve returns a fresh adapter instance, or ErrUnsupportedProvider before
// any I/O when the name is unknown.
func (r *Registry) Resolve(name string) (interfaces.EmailProvider, error) {
	r.mu.RLock()
	factory, ok := r.factories[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, er.UnsupportedProvider(name)
	}
	return factory(r.cfg, r.log), nil
}

// Names returns the registered provider names, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

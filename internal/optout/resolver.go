package optout

import (
	"strings"

	"github.com/offlist/offlist/internal/model"
)

// noiseTokens are stripped from a normalized name on the second
// matching pass, so "Spokeo Alt" and "spokeo.com" still land on the
// spokeo key.
var noiseTokens = []string{"alt", "search", "free", "the", "com"}

// ManualInstructions is the generic fallback guidance when no
// automated method is known for a source.
const ManualInstructions = "Visit the site, locate your listing, and follow its opt-out or privacy request process. Most sites link it from the page footer as \"Do Not Sell My Info\" or \"Privacy\"."

// Resolver maps free-text source names onto opt-out descriptors.
// Immutable after construction; build one at startup and share it.
type Resolver struct {
	entries []methodEntry
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMethod registers an additional key and descriptor. Later
// registrations lose ties against earlier ones.
func WithMethod(key string, conf model.OptOut) ResolverOption {
	return func(r *Resolver) {
		r.entries = append(r.entries, methodEntry{key: normalize(key), conf: conf})
	}
}

// NewResolver creates a resolver over the builtin method table.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		entries: make([]methodEntry, len(builtinMethods)),
	}
	copy(r.entries, builtinMethods)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the opt-out descriptor for a source name. Matching
// is bidirectional substring over normalized tokens, with a second
// pass that strips noise tokens. An unknown name, or a source flagged
// as CAPTCHA-protected, resolves to manual; Resolve never fails.
func (r *Resolver) Resolve(name string) model.OptOut {
	norm := normalize(name)

	if conf, ok := r.lookup(norm); ok {
		return routeCaptcha(conf)
	}

	stripped := norm
	for _, tok := range noiseTokens {
		stripped = strings.ReplaceAll(stripped, tok, "")
	}
	if stripped != norm && stripped != "" {
		if conf, ok := r.lookup(stripped); ok {
			return routeCaptcha(conf)
		}
	}

	return manualDescriptor("")
}

// ResolveSource resolves a full source record: a source carrying its
// own opt-out configuration (catalog brokers) wins over the name
// table.
func (r *Resolver) ResolveSource(src *model.Source) model.OptOut {
	if src.OptOut.Method != "" {
		conf := routeCaptcha(src.OptOut)
		if conf.Method == model.MethodManual && conf.Instructions == "" {
			conf.Instructions = ManualInstructions
		}
		return conf
	}
	conf := r.Resolve(src.Name)
	if conf.Method == model.MethodManual && conf.URL == "" {
		conf.URL = src.OptOut.URL
	}
	return conf
}

// lookup runs the bidirectional substring match against the table in
// registration order. Ambiguous names hit the first registered key.
func (r *Resolver) lookup(norm string) (model.OptOut, bool) {
	if norm == "" {
		return model.OptOut{}, false
	}
	for _, e := range r.entries {
		if strings.Contains(norm, e.key) || strings.Contains(e.key, norm) {
			return e.conf, true
		}
	}
	return model.OptOut{}, false
}

// routeCaptcha forces CAPTCHA-gated descriptors to manual so the
// executor never attempts automation against them.
func routeCaptcha(conf model.OptOut) model.OptOut {
	if !conf.Captcha {
		return conf
	}
	manual := manualDescriptor(conf.URL)
	manual.Captcha = true
	if conf.Instructions != "" {
		manual.Instructions = conf.Instructions
	}
	return manual
}

// manualDescriptor builds the generic manual fallback.
func manualDescriptor(url string) model.OptOut {
	return model.OptOut{
		Method:       model.MethodManual,
		URL:          url,
		Instructions: ManualInstructions,
		CanAutomate:  false,
	}
}

// normalize lowercases and strips everything but letters and digits,
// so "Spokeo Alt", "SPOKEO.COM", and "spokeo" compare equal up to the
// noise pass.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package clip_saver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/clip-saver/generic"
)

var (
	ErrDuplicateProvider = errors.New("duplicate provider name")
	ErrInvalidProvider   = errors.New("invalid provider")
	ErrNoMatch           = errors.New("no provider matched the input")
	ErrUnknownProvider   = errors.New("unknown provider")
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

type MatchFunc = func(string) (Source, error)

// A Provider matches any link it knows how to handle, giving a Source that can describe the post.
type Provider struct {
	Name  string
	Match MatchFunc
	// Priority of the matcher, lower (including negative) means matching earlier.
	Priority int16
}

func (p Provider) WithPriority(priority int16) Provider {
	p.Priority = priority
	return p
}

// A Match is the result of a Provider successfully matching a link.
type Match struct {
	ProviderName string
	Source       Source
}

// A ProviderRegistry is a collection of Provider instances which can be used to try to match links.
type ProviderRegistry struct {
	providers   []*Provider
	providerMap map[string]*Provider
}

// Add registers a Provider. Provider.Name and Provider.Match must be set, and Provider.Name must be unique within the
// ProviderRegistry.
func (r *ProviderRegistry) Add(p Provider) error {
	if r.providerMap == nil {
		r.providerMap = make(map[string]*Provider)
	}
	if p.Name == "" || p.Match == nil {
		return ErrInvalidProvider
	}
	if _, ok := r.providerMap[p.Name]; ok {
		return ErrDuplicateProvider
	}
	r.providerMap[p.Name] = &p
	r.providers = append(r.providers, r.providerMap[p.Name])
	r.sortByPriority()
	return nil
}

// List returns the names of registered providers in priority order.
func (r *ProviderRegistry) List() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	return names
}

// Match a link against each Provider in priority order. If nothing matches, the error wraps ErrNoMatch and carries
// every provider's reason.
func (r *ProviderRegistry) Match(s string) (*Match, error) {
	var reasons error
	for _, p := range r.providers {
		source, err := p.Match(s)
		if source != nil && err == nil {
			return &Match{ProviderName: p.Name, Source: source}, nil
		}
		if err == nil {
			err = ErrNoMatch
		}
		reasons = multierror.Append(reasons, multierror.Prefix(err, fmt.Sprintf("[%v]", p.Name)))
	}
	if reasons == nil {
		return nil, ErrNoMatch
	}
	return nil, fmt.Errorf("%w: %v", ErrNoMatch, reasons)
}

// MatchWith will attempt to match a link against a specific provider.
func (r *ProviderRegistry) MatchWith(name string, s string) (*Match, error) {
	p, ok := r.providerMap[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	source, err := p.Match(s)
	if source == nil || err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoMatch, err)
	}
	return &Match{ProviderName: p.Name, Source: source}, nil
}

// MustAdd wraps Add but panics if there is an error.
func (r *ProviderRegistry) MustAdd(p Provider) {
	generic.Unwrap_(r.Add(p))
}

func (r *ProviderRegistry) sortByPriority() {
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority < r.providers[j].Priority
	})
}

var DefaultProviderRegistry ProviderRegistry

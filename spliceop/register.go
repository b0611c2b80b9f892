package spliceop

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

var (
	ErrSymbolExists = errors.New("symbol exists")
	ErrUnknownKind  = errors.New("unknown operation kind")
)

func Register(s Symbol) error {
	key := s.String()
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return fmt.Errorf("invalid symbol name %q", key)
	}
	if len(s.Modes()) == 0 {
		return fmt.Errorf("symbol %q has no modes", key)
	}
	mu.Lock()
	defer mu.Unlock()
	_, present := d[key]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[key] = s
	return nil
}

func init() {
	Register(InsertKind())
	Register(ReplaceKind())
	Register(RemoveKind())
}

func Lookup(name string) (Symbol, error) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := d[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return s, nil
}

// Symbols returns the registered kinds sorted by name.
func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].String() < res[j].String()
	})
	return res
}

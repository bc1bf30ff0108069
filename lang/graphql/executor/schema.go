/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

package executor

import (
	"sync"

	"github.com/mazzi/graphlark/lang/graphql/schema"
)

// Schema pairs a built type system with the resolver registry that drives
// it. It is deliberately a thin map, not a plugin/middleware framework -
// resolver registration frameworks are an explicit Non-goal.
type Schema struct {
	*schema.Schema

	mu             sync.RWMutex
	resolvers      map[string]Resolver
	asyncResolvers map[string]AsyncResolver
}

// NewSchema wraps a built schema.Schema with an empty resolver registry.
func NewSchema(sch *schema.Schema) *Schema {
	return &Schema{
		Schema:         sch,
		resolvers:      make(map[string]Resolver),
		asyncResolvers: make(map[string]AsyncResolver),
	}
}

func resolverKey(typeName, fieldName string) string {
	return typeName + "." + fieldName
}

// RegisterResolver binds a synchronous Resolver to typeName.fieldName,
// replacing any resolver (sync or async) previously registered for it.
func (s *Schema) RegisterResolver(typeName, fieldName string, r Resolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resolverKey(typeName, fieldName)
	s.resolvers[key] = r
	delete(s.asyncResolvers, key)
}

// RegisterAsyncResolver binds a suspendable AsyncResolver to
// typeName.fieldName, replacing any resolver previously registered for it.
func (s *Schema) RegisterAsyncResolver(typeName, fieldName string, r AsyncResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resolverKey(typeName, fieldName)
	s.asyncResolvers[key] = r
	delete(s.resolvers, key)
}

func (s *Schema) resolverFor(typeName, fieldName string) (Resolver, AsyncResolver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := resolverKey(typeName, fieldName)
	if r, ok := s.resolvers[key]; ok {
		return r, nil, true
	}
	if r, ok := s.asyncResolvers[key]; ok {
		return nil, r, true
	}
	return nil, nil, false
}

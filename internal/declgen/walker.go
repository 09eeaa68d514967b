package declgen

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtsgen/internal/model"
)

// DiscoverySet records every type ever enqueued, keyed by model.Type.ID. The
// value gates member extraction: true for seeds, the enum flag otherwise.
type DiscoverySet map[string]bool

// Walker discovers the transitive closure of types reachable from a seed list
// and builds the declaration tree for them. A Walker is not safe for
// concurrent use; each Discover call starts from empty state.
type Walker struct {
	mapper *NameMapper
	logger *slog.Logger

	root  *model.Namespace
	seen  DiscoverySet
	queue []model.Type
	x     *extractor
}

// NewWalker initializes a Walker. A nil mapper uses the built-in keyword
// table; a nil logger uses slog.Default().
func NewWalker(mapper *NameMapper, logger *slog.Logger) *Walker {
	if mapper == nil {
		mapper = NewNameMapper(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Walker{
		mapper: mapper,
		logger: logger,
	}
	w.x = &extractor{mapper: mapper, push: w.push}
	return w
}

// Discover drains the worklist seeded with seeds and returns the resulting
// tree. Processing order is discovery order.
func (w *Walker) Discover(seeds []model.Type) (*model.Namespace, error) {
	w.root = model.NewRoot()
	w.seen = make(DiscoverySet, len(seeds))
	w.queue = make([]model.Type, 0, len(seeds))

	for _, t := range seeds {
		if t == nil {
			continue
		}
		if _, ok := w.seen[t.ID()]; ok {
			continue
		}
		w.seen[t.ID()] = true
		w.queue = append(w.queue, t)
	}

	for len(w.queue) != 0 {
		t := w.queue[0]
		w.queue = w.queue[1:]

		if t.IsGeneric() {
			w.logger.Debug("skipping generic type", "type", model.QualifiedName(t))
			continue
		}

		space, err := w.handleNamespace(t)
		if err != nil {
			return nil, err
		}
		c := w.handleClass(space, t)
		if c.Extracted || !w.seen[t.ID()] {
			continue
		}
		if err = w.extract(c, t); err != nil {
			return nil, err
		}
		c.Extracted = true
	}

	return w.root, nil
}

// Seen reports whether t was discovered by the last Discover call.
func (w *Walker) Seen(t model.Type) bool {
	_, ok := w.seen[t.ID()]
	return ok
}

func (w *Walker) extract(c *model.Class, t model.Type) error {
	if !c.IsEnum {
		w.x.properties(c, t.Properties())
		w.x.methods(c, t.Constructors())
		w.x.methods(c, t.Methods())
	}
	w.x.events(c, t.Events())
	return w.x.fields(c, t.Fields())
}

// handleNamespace resolves the namespace path of t, inserting missing nodes.
// Types without a namespace live directly under the root.
func (w *Walker) handleNamespace(t model.Type) (*model.Namespace, error) {
	ns := t.Namespace()
	if ns == "" {
		return w.root, nil
	}
	segments := strings.Split(ns, ".")
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return nil, errors.WithDetailf(
				errors.Wrapf(ErrMalformedNamespace, "type %s", t.Name()),
				"namespace: %q", ns,
			)
		}
	}
	return w.root.EnsurePath(segments), nil
}

// handleClass returns the class node for t, recording its base type and
// interfaces the first time the node is created.
func (w *Walker) handleClass(space *model.Namespace, t model.Type) *model.Class {
	c, created := space.EnsureClass(t.Name(), model.IsEnum(t))
	if !created {
		return c
	}
	w.logger.Debug("declaring type", "type", model.QualifiedName(t), "kind", t.Kind().String())

	if base := t.Base(); base != nil && !base.IsGeneric() {
		c.ParentClass = w.mapper.MapType(base)
		w.push(base)
	}

	for _, iface := range t.Interfaces() {
		if iface == nil || iface.IsGeneric() {
			continue
		}
		c.Interfaces = append(c.Interfaces, w.mapper.MapType(iface))
		w.push(iface)
	}

	return c
}

// push enqueues a referenced type unless it was seen before or needs no
// declaration of its own.
func (w *Walker) push(t model.Type) {
	for t != nil && (t.IsArray() || t.IsByRef()) && t.Elem() != nil {
		t = t.Elem()
	}
	if t == nil {
		return
	}

	// Callbacks are spelled inline; their arguments still need declaring.
	if t.Callback() != model.CallbackNone {
		for _, arg := range t.GenericArgs() {
			w.push(arg)
		}
		return
	}
	if t.IsGeneric() || t.ContainsGenericParameters() {
		return
	}

	if _, ok := w.seen[t.ID()]; ok || t.IsPointer() {
		return
	}
	// Primitives without a keyword are spelled by name, so they get declared too.
	if _, ok := w.mapper.Keyword(t); ok {
		return
	}

	w.seen[t.ID()] = model.IsEnum(t)
	w.queue = append(w.queue, t)
	w.logger.Debug("discovered type", "type", model.QualifiedName(t))
}

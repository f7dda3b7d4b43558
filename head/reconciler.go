package head

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/eringen/headkit/seo"
)

// Reconciler keeps a Head in sync with successive configurations of one
// mounted page. Passes must not run concurrently; the caller's lifecycle
// serializes them.
type Reconciler struct {
	head     Head
	provider *seo.Provider

	last     []byte
	hasLast  bool
	owned    []owned
	groups   map[string][]seo.Tag
	detached bool
}

type owned struct {
	el    Element
	group string
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithProvider merges every applied config onto the provider's defaults.
func WithProvider(p *seo.Provider) Option {
	return func(r *Reconciler) {
		r.provider = p
	}
}

// New creates a Reconciler for h. A nil h, including a nil *Document, yields
// a reconciler whose methods do nothing, for contexts without a document.
func New(h Head, opts ...Option) *Reconciler {
	if d, ok := h.(*Document); ok && d == nil {
		h = nil
	}
	r := &Reconciler{head: h}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply runs a reconciliation pass for cfg, on mount and on every config
// change. It reports whether the head was touched: passes are skipped when
// the serialized effective config equals the previous pass's, when there is
// no head, and after Detach.
func (r *Reconciler) Apply(cfg seo.Config) bool {
	if r == nil || r.head == nil || r.detached {
		return false
	}
	eff := r.provider.Merge(cfg)
	key, err := json.Marshal(eff)
	if err == nil && r.hasLast && bytes.Equal(key, r.last) {
		return false
	}
	r.reconcile(seo.Synthesize(eff))
	r.last, r.hasLast = key, err == nil
	return true
}

// Detach removes every element the last pass owns and retires the
// reconciler. Elements that existed before the first pass are left in place.
func (r *Reconciler) Detach() {
	if r == nil || r.head == nil || r.detached {
		return
	}
	for _, o := range r.owned {
		r.head.Remove(o.el)
	}
	r.owned = nil
	r.groups = nil
	r.last, r.hasLast = nil, false
	r.detached = true
}

// Detached reports whether Detach has been called.
func (r *Reconciler) Detached() bool {
	return r != nil && r.detached
}

// Owned returns the elements created and still owned by the reconciler.
func (r *Reconciler) Owned() []Element {
	if r == nil {
		return nil
	}
	out := make([]Element, len(r.owned))
	for i, o := range r.owned {
		out[i] = o.el
	}
	return out
}

// reconcile runs one pass. Upserted tags update the first element matching
// their identity. Grouped tags replace their whole category: elements the
// pass does not own that match the category selector are removed first. A
// group whose tags equal the previous pass's keeps its elements.
func (r *Reconciler) reconcile(tags []seo.Tag) {
	prev := make(map[Element]bool, len(r.owned))
	prevGroups := make(map[string][]Element)
	for _, o := range r.owned {
		prev[o.el] = true
		if o.group != "" {
			prevGroups[o.group] = append(prevGroups[o.group], o.el)
		}
	}

	groups := make(map[string][]seo.Tag)
	for _, t := range tags {
		if t.Group != "" {
			groups[t.Group] = append(groups[t.Group], t)
		}
	}
	reuse := make(map[string][]Element)
	keep := make(map[Element]bool)
	for g, ts := range groups {
		els := prevGroups[g]
		if len(els) != len(ts) || !reflect.DeepEqual(r.groups[g], ts) || !r.present(ts, els) {
			continue
		}
		reuse[g] = els
		for _, el := range els {
			keep[el] = true
		}
	}

	cur := make([]owned, 0, len(tags))
	inCur := make(map[Element]bool, len(tags))
	touched := make(map[Element]bool)
	removed := make(map[Element]bool)
	clearedGroup := make(map[string]bool)
	clearedSel := make(map[string]bool)

	own := func(el Element, group string) {
		cur = append(cur, owned{el: el, group: group})
		inCur[el] = true
	}
	remove := func(el Element) {
		if !removed[el] {
			r.head.Remove(el)
			removed[el] = true
		}
	}

	for _, t := range tags {
		if t.Group != "" {
			if !clearedGroup[t.Group] {
				clearedGroup[t.Group] = true
				for _, o := range r.owned {
					if o.group == t.Group && !keep[o.el] {
						remove(o.el)
					}
				}
			}
			if sel := t.CategorySelector(); !clearedSel[sel] {
				clearedSel[sel] = true
				for _, el := range r.head.Query(sel) {
					if !inCur[el] && !touched[el] && !keep[el] {
						remove(el)
					}
				}
			}
			if els := reuse[t.Group]; len(els) > 0 {
				reuse[t.Group] = els[1:]
				update(els[0], t)
				own(els[0], t.Group)
				continue
			}
			own(r.create(t), t.Group)
			continue
		}

		var el Element
		if found := r.head.Query(t.Selector()); len(found) > 0 {
			el = found[0]
		}
		if el == nil {
			own(r.create(t), "")
			continue
		}
		touched[el] = true
		update(el, t)
		if prev[el] && !inCur[el] {
			own(el, "")
		}
	}

	for _, o := range r.owned {
		if !inCur[o.el] {
			remove(o.el)
		}
	}
	r.owned = cur
	r.groups = groups
}

// present reports whether every element in els is still in the head.
func (r *Reconciler) present(tags []seo.Tag, els []Element) bool {
	found := make(map[Element]bool)
	queried := make(map[string]bool)
	for _, t := range tags {
		sel := t.CategorySelector()
		if queried[sel] {
			continue
		}
		queried[sel] = true
		for _, el := range r.head.Query(sel) {
			found[el] = true
		}
	}
	for _, el := range els {
		if !found[el] {
			return false
		}
	}
	return true
}

func (r *Reconciler) create(t seo.Tag) Element {
	el := r.head.Create(t.Kind.Element())
	for _, a := range t.Attrs {
		el.SetAttr(a.Key, a.Val)
	}
	if t.Content != "" {
		el.SetText(t.Content)
	}
	r.head.Append(el)
	return el
}

// update makes el carry t's payload, writing only values that differ.
func update(el Element, t seo.Tag) {
	for _, a := range t.Attrs {
		if v, ok := el.Attr(a.Key); !ok || v != a.Val {
			el.SetAttr(a.Key, a.Val)
		}
	}
	if t.Kind == seo.KindTitle || t.Kind == seo.KindScript {
		if el.Text() != t.Content {
			el.SetText(t.Content)
		}
	}
}

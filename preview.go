package headkit

import (
	"fmt"
	"sync"

	"github.com/eringen/headkit/head"
	"github.com/eringen/headkit/seo"
)

// Previews holds live head previews keyed by page path. A preview starts from
// the page's published head and reconciles every submitted config onto the
// same document, so published tags are updated in place and tags added by
// earlier edits are removed when an edit drops them.
type Previews struct {
	mu       sync.Mutex
	provider *seo.Provider
	sessions map[string]*preview
}

type preview struct {
	doc *head.Document
	rec *head.Reconciler
}

// PreviewResult is the state of a preview after a pass.
type PreviewResult struct {
	Path    string `json:"path"`
	Head    string `json:"head"`
	Changed bool   `json:"changed"`
	Owned   int    `json:"owned"`
}

// NewPreviews creates an empty preview set whose reconcilers merge configs
// onto p's defaults.
func NewPreviews(p *seo.Provider) *Previews {
	return &Previews{provider: p, sessions: make(map[string]*preview)}
}

// Apply reconciles cfg onto the preview for path. When no preview exists yet
// one is created from baseline, the head markup currently served for path.
func (p *Previews) Apply(path, baseline string, cfg seo.Config) (PreviewResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[path]
	if !ok {
		doc, err := head.ParseString("<!DOCTYPE html><html><head>" + baseline + "</head><body></body></html>")
		if err != nil {
			return PreviewResult{}, fmt.Errorf("headkit: preview %s: %w", path, err)
		}
		s = &preview{doc: doc, rec: head.New(doc, head.WithProvider(p.provider))}
		p.sessions[path] = s
	}
	changed := s.rec.Apply(cfg)
	return PreviewResult{
		Path:    path,
		Head:    s.doc.HeadHTML(),
		Changed: changed,
		Owned:   len(s.rec.Owned()),
	}, nil
}

// Discard detaches the preview for path, returning the head as it is left
// once every preview-created tag is removed.
func (p *Previews) Discard(path string) (PreviewResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[path]
	if !ok {
		return PreviewResult{}, false
	}
	s.rec.Detach()
	delete(p.sessions, path)
	return PreviewResult{Path: path, Head: s.doc.HeadHTML()}, true
}

// Len returns the number of open previews.
func (p *Previews) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

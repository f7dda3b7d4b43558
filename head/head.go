// Package head applies synthesized SEO tags to a live document head.
//
// The head is an injected capability (Head) rather than a global, so the
// same Reconciler drives an in-memory Document on the server, a fake in
// tests, or any other DOM binding.
package head

// Element is a single element in the document head.
type Element interface {
	Attr(key string) (string, bool)
	SetAttr(key, val string)
	Text() string
	SetText(s string)
}

// Head is the mutable document head. Elements returned by Query must compare
// equal (==) when they refer to the same underlying node.
type Head interface {
	// Query returns the head elements matching a CSS selector, in document
	// order. Invalid selectors match nothing.
	Query(selector string) []Element
	// Create returns a new, detached element.
	Create(tag string) Element
	Append(el Element)
	Remove(el Element)
}

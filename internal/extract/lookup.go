// Package extract implements the structural extractors for the two XML
// dialects found in WebMaker exports: the xengine rule dialect and the
// formmaker binding dialect.
//
// Binding documents are observed in the wild both with and without a
// default-namespace declaration on the root, so every lookup is
// two-stage: namespace-qualified first, then by local name ignoring
// namespace.
package extract

import "github.com/beevik/etree"

// Namespace URIs of the two dialects.
const (
	XEngineNamespace   = "http://www.hyfinity.com/xengine"
	FormMakerNamespace = "http://www.hyfinity.com/formmaker"
)

// findAllNS returns, in document order, every descendant of el
// (including el itself) whose local name and resolved namespace URI
// match.
func findAllNS(el *etree.Element, local, nsURI string) []*etree.Element {
	var out []*etree.Element
	walk(el, func(e *etree.Element) {
		if e.Tag == local && e.NamespaceURI() == nsURI {
			out = append(out, e)
		}
	})
	return out
}

// findAllLocal returns, in document order, every descendant of el
// (including el itself) with the given local name regardless of
// namespace.
func findAllLocal(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	walk(el, func(e *etree.Element) {
		if e.Tag == local {
			out = append(out, e)
		}
	})
	return out
}

// findAll is the two-stage lookup shared by both extractors: the
// namespace-qualified result wins when non-empty, otherwise the
// local-name result is used.
func findAll(el *etree.Element, local, nsURI string) []*etree.Element {
	if found := findAllNS(el, local, nsURI); len(found) > 0 {
		return found
	}
	return findAllLocal(el, local)
}

// firstText returns the text of the first descendant matched by the
// two-stage lookup, or "" and false when none exists.
func firstText(el *etree.Element, local, nsURI string) (string, bool) {
	found := findAll(el, local, nsURI)
	if len(found) == 0 {
		return "", false
	}
	return found[0].Text(), true
}

func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
}

package gen

import (
	"strings"

	"github.com/syssam/derive/compiler/decl"
)

// derivingNamespace is the fully-qualified prefix accepted in addition
// to the plain plugin namespace ("deriving.show.skip" next to
// "show.skip").
const derivingNamespace = "deriving"

// AttrView resolves metadata annotations on a single node for a single
// plugin. It is a pure view over the node's immutable annotation list:
// resolving the same key twice always returns the same result.
//
// Resolution for a plugin named "Show" requesting key "skip" accepts any
// of bare "skip", "show.skip", or "deriving.show.skip". If at least one
// annotation in the "show.*" or "deriving.show.*" namespace exists
// anywhere on the node, bare keys are ignored entirely for this plugin;
// this keeps independently authored plugins from observing each other's
// bare-key metadata. Without any namespaced annotation, bare keys apply,
// and two bare annotations with the same key are ambiguous.
type AttrView struct {
	ns         string
	attrs      []*decl.Annotation
	namespaced bool
}

// NewAttrView builds a view over a node's annotations scoped to the
// given plugin name. The namespace is the lowercased plugin name.
func NewAttrView(plugin string, attrs []*decl.Annotation) *AttrView {
	v := &AttrView{ns: strings.ToLower(plugin), attrs: attrs}
	for _, a := range attrs {
		if _, ok := v.namespacedKey(a.Key); ok {
			v.namespaced = true
			break
		}
	}
	return v
}

// namespacedKey strips the view's namespace from an annotation key.
// "show.skip" and "deriving.show.skip" both yield ("skip", true) under
// namespace "show"; anything else yields ("", false).
func (v *AttrView) namespacedKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, derivingNamespace+".")
	if !ok {
		rest = key
	}
	if sub, ok := strings.CutPrefix(rest, v.ns+"."); ok && sub != "" {
		return sub, true
	}
	return "", false
}

// Lookup returns the payload of the first annotation matching the key
// under this view's namespace rules. The boolean reports presence, so a
// present annotation with a nil payload (a bare marker such as
// [@show.skip]) is distinguishable from an absent one.
func (v *AttrView) Lookup(key string) (any, bool, error) {
	if v.namespaced {
		for _, a := range v.attrs {
			if sub, ok := v.namespacedKey(a.Key); ok && sub == key {
				return a.Payload, true, nil
			}
		}
		return nil, false, nil
	}
	var found *decl.Annotation
	for _, a := range v.attrs {
		if a.Key != key {
			continue
		}
		if found != nil {
			return nil, false, &AnnotationError{
				Plugin:  v.ns,
				Key:     key,
				Message: "two bare annotations with the same key on one node",
				Pos:     a.Pos,
			}
		}
		found = a
	}
	if found == nil {
		return nil, false, nil
	}
	return found.Payload, true, nil
}

// Has reports whether the key resolves to any annotation. Ambiguous
// bare keys report false alongside no error; callers that need the
// error use Lookup.
func (v *AttrView) Has(key string) bool {
	_, ok, err := v.Lookup(key)
	return err == nil && ok
}

package diagram

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rendis/flowviz/pkg/flow"
)

// labelResolver maps object identities to stable display strings for the
// duration of one render pass. Names come from the caller-supplied
// namespace; objects with no bound name fall back to type-name labels with
// a #2, #3, ... disambiguating counter per type.
type labelResolver struct {
	diag *Diagnostics

	names          map[flow.Node][]string
	cache          map[flow.Node]string
	unnamedPerType map[string]int
}

func newLabelResolver(namespace map[string]any, diag *Diagnostics) *labelResolver {
	r := &labelResolver{
		diag:           diag,
		names:          make(map[flow.Node][]string),
		cache:          make(map[flow.Node]string),
		unnamedPerType: make(map[string]int),
	}

	if len(namespace) == 0 {
		diag.warnf(WarnMissingNamespace, "missing namespace; falling back to type-name labels")
		return r
	}

	// Reverse index, restricted to values that are actually graph objects.
	for name, v := range namespace {
		if obj, ok := v.(flow.Node); ok {
			r.names[obj] = append(r.names[obj], name)
		}
	}
	return r
}

// labelFor returns the display label for obj, memoized by identity so
// warnings fire at most once per object.
func (r *labelResolver) labelFor(obj flow.Node) string {
	if label, ok := r.cache[obj]; ok {
		return label
	}

	typeName := typeNameOf(obj)
	var label string
	if names := r.names[obj]; len(names) > 0 {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		if len(sorted) > 1 {
			r.diag.warnf(WarnMultipleNames, "multiple names bound to the same node/flow: %s", strings.Join(sorted, ", "))
		}
		label = sorted[0]
	} else {
		r.diag.warnf(WarnMissingName, "no name bound to object of type %s", typeName)
		n := r.unnamedPerType[typeName] + 1
		r.unnamedPerType[typeName] = n
		if n == 1 {
			label = typeName
		} else {
			label = fmt.Sprintf("%s#%d", typeName, n)
		}
	}

	r.cache[obj] = label
	return label
}

// typeNameOf returns the concrete type name of obj, without package path or
// pointer markers.
func typeNameOf(obj flow.Node) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "nil"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

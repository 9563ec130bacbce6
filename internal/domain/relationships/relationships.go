// Package relationships models the reference fields that connect content
// documents to each other, together with the shape-tolerant helpers used
// when a referenced document is removed.
//
// Historically relationship values have been stored in several physical
// shapes: a bare ID string, an array of ID strings, or an array of wrapper
// objects like {"value": "<id>", "relationTo": "products"}. New writes are
// normalized to the wrapper-array shape; reads and rewrites stay tolerant of
// every legacy shape.
package relationships

// Ref is the canonical stored form of a single relationship entry.
type Ref struct {
	Value      string `json:"value"`
	RelationTo string `json:"relationTo,omitempty"`
}

// Link names one relationship field of one collection.
type Link struct {
	Collection string // the referencing collection
	Field      string // the relationship field on that collection
}

// linksInto maps a target collection to every relationship field, across all
// collections, that can hold IDs from it.
var linksInto = map[string][]Link{
	"products":     {{Collection: "products", Field: "relatedProducts"}},
	"events":       {{Collection: "events", Field: "relatedEvents"}},
	"posts":        {{Collection: "posts", Field: "relatedPosts"}},
	"technologies": {{Collection: "projects", Field: "technologies"}},
}

// LinksInto returns every relationship field that can reference documents of
// the given collection. An empty slice means deletes from that collection
// need no reference cleanup.
func LinksInto(collection string) []Link {
	return linksInto[collection]
}

// RemoveReference returns the relationship value with every entry for
// targetID removed, preserving the value's original shape.
//
// Arrays keep their element order; elements of an unrecognized shape are
// kept rather than dropped. A bare string equal to targetID collapses to an
// empty array, the "no relations" form for a has-many field. Any other
// value (nil, empty string, numeric sentinel, unexpected wrapper) is
// returned unchanged.
func RemoveReference(value any, targetID string) any {
	switch v := value.(type) {
	case []any:
		filtered := make([]any, 0, len(v))
		for _, elem := range v {
			if refMatches(elem, targetID) {
				continue
			}
			filtered = append(filtered, elem)
		}
		return filtered
	case string:
		if v == targetID {
			return []any{}
		}
		return v
	default:
		return value
	}
}

// refMatches reports whether one relationship element points at targetID.
func refMatches(elem any, targetID string) bool {
	switch e := elem.(type) {
	case string:
		return e == targetID
	case map[string]any:
		if value, ok := e["value"].(string); ok && value == targetID {
			return true
		}
		if id, ok := e["id"].(string); ok && id == targetID {
			return true
		}
		return false
	case *Ref:
		return e != nil && e.Value == targetID
	case Ref:
		return e.Value == targetID
	default:
		return false
	}
}

// ContainsID reports whether a relationship value, in any shape, still holds
// a reference to targetID.
func ContainsID(value any, targetID string) bool {
	switch v := value.(type) {
	case []any:
		for _, elem := range v {
			if refMatches(elem, targetID) {
				return true
			}
		}
		return false
	default:
		return refMatches(value, targetID)
	}
}

// Normalize converts any legacy relationship shape into the canonical
// wrapper-array form. Sentinel values meaning "no relations" (nil, empty
// string, zero) yield an empty slice.
func Normalize(raw any, relationTo string) []*Ref {
	switch v := raw.(type) {
	case nil:
		return []*Ref{}
	case string:
		if v == "" {
			return []*Ref{}
		}
		return []*Ref{{Value: v, RelationTo: relationTo}}
	case float64:
		// Numeric zero is a legacy "no relations" sentinel.
		return []*Ref{}
	case []any:
		refs := make([]*Ref, 0, len(v))
		for _, elem := range v {
			switch e := elem.(type) {
			case string:
				if e != "" {
					refs = append(refs, &Ref{Value: e, RelationTo: relationTo})
				}
			case map[string]any:
				if value, ok := e["value"].(string); ok && value != "" {
					ref := &Ref{Value: value, RelationTo: relationTo}
					if rel, ok := e["relationTo"].(string); ok && rel != "" {
						ref.RelationTo = rel
					}
					refs = append(refs, ref)
				} else if id, ok := e["id"].(string); ok && id != "" {
					refs = append(refs, &Ref{Value: id, RelationTo: relationTo})
				}
			}
		}
		return refs
	case map[string]any:
		if value, ok := v["value"].(string); ok && value != "" {
			return []*Ref{{Value: value, RelationTo: relationTo}}
		}
		return []*Ref{}
	default:
		return []*Ref{}
	}
}

// IDs flattens canonical refs to their target IDs.
func IDs(refs []*Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != nil && ref.Value != "" {
			ids = append(ids, ref.Value)
		}
	}
	return ids
}

package client

// Relation names one of the person-keyed endpoints that all take an id and
// return person records.
type Relation string

const (
	RelationGet       Relation = "get"
	RelationSiblings  Relation = "siblings"
	RelationChildren  Relation = "children"
	RelationMates     Relation = "mates"
	RelationAncestors Relation = "ancestors"
	RelationTrace     Relation = "trace"
)

var relations = [...]Relation{
	RelationGet,
	RelationSiblings,
	RelationChildren,
	RelationMates,
	RelationAncestors,
	RelationTrace,
}

// Relations returns the fixed set of relation endpoints.
func Relations() []Relation {
	out := make([]Relation, len(relations))
	copy(out, relations[:])
	return out
}

// Valid reports whether r is one of the known relation endpoints.
func (r Relation) Valid() bool {
	for _, known := range relations {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRelation maps an endpoint name to its Relation.
func ParseRelation(name string) (Relation, error) {
	r := Relation(name)
	if !r.Valid() {
		return "", &LookupError{Name: name}
	}
	return r, nil
}

package builder

import (
	"strconv"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// GenerateUniqueName returns the base name for kind (a field type or
// model.KindFieldset), suffixed with " 1", " 2", ... until it matches no
// existing group or field name.
func (s State) GenerateUniqueName(kind string) string {
	return uniqueName(kind, s.nameSet())
}

func uniqueName(kind string, taken map[string]struct{}) string {
	base := model.BaseName(kind)
	name := base
	for counter := 1; ; counter++ {
		if _, exists := taken[name]; !exists {
			return name
		}
		name = base + " " + strconv.Itoa(counter)
	}
}

func (s State) nameSet() map[string]struct{} {
	names := s.Names()
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

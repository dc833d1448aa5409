package domain

// Submodule is one version-controlled source partition, identified by name.
// Equality is by name only: two submodules with the same name are the same
// entity wherever they appear, which is what makes deduplication across
// source sets work.
type Submodule struct {
	Name InternedString
}

// NewSubmodule creates a Submodule from a raw name.
func NewSubmodule(name string) Submodule {
	return Submodule{Name: NewInternedString(name)}
}

// SourceSet is a named grouping of submodules that are checked out together
// to satisfy one or more artifact groups' source needs.
type SourceSet struct {
	Name        InternedString
	Description string
	Submodules  []Submodule
}

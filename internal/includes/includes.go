// Package includes implements the included-file registry of spec.md §3:
// an append-only, ordered record of files seen by #include processing,
// owned by the preprocessor instance for the lifetime of a run.
//
// #include resolution itself is an external collaborator's job (spec.md
// §1) — this package only exposes the registry and a creation hook a
// future #include handler can call into.
package includes

import "github.com/google/uuid"

// File is a single registry entry. ID gives the entry a stable identity
// that survives the filename-uniqueness question spec.md leaves open:
// two distinct #include directives that resolve to the same filename via
// different relative paths still get distinct IDs, so external tools
// consuming the include graph can tell the references apart.
type File struct {
	ID       uuid.UUID
	Filename string
}

// PostCreationHandler runs synchronously right after a File is registered,
// mirroring the reference source's
// PREPROCESSOR_STATIC_INCLUDE_HANDLER_POST_CREATION hook.
type PostCreationHandler func(f File)

// Registry is the ordered, append-only set of included files for one run.
type Registry struct {
	files  []File
	byName map[string]int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Add appends a new File for filename and returns it. Duplicate filenames
// are permitted: the registry records every inclusion event; policy about
// whether a duplicate should be skipped belongs to the #include handler
// (a non-goal of this spec), which can consult Contains first.
func (r *Registry) Add(filename string) File {
	f := File{ID: uuid.New(), Filename: filename}
	r.byName[filename] = len(r.files)
	r.files = append(r.files, f)
	return f
}

// CreateStatic adds filename and synchronously invokes handler with the
// new record, mirroring preprocessor_create_static_include.
func (r *Registry) CreateStatic(filename string, handler PostCreationHandler) File {
	f := r.Add(filename)
	if handler != nil {
		handler(f)
	}
	return f
}

// Contains reports whether filename has been registered at least once.
func (r *Registry) Contains(filename string) bool {
	_, ok := r.byName[filename]
	return ok
}

// Files returns a defensive copy of every registered entry, in
// registration order.
func (r *Registry) Files() []File {
	out := make([]File, len(r.files))
	copy(out, r.files)
	return out
}

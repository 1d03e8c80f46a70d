package metadata

// TypeConfig lists the fields of a CompileTypeMetadata. Nil pointers mean absent.
type TypeConfig struct {
	Runtime  any
	Name     *string
	ModuleID *string
}

// CompileTypeMetadata identifies the implementation behind a directive
type CompileTypeMetadata struct {
	runtime  any
	name     *string
	moduleID *string
}

// NewCompileTypeMetadata creates a new CompileTypeMetadata
func NewCompileTypeMetadata(cfg TypeConfig) *CompileTypeMetadata {
	return &CompileTypeMetadata{
		runtime:  cfg.Runtime,
		name:     clonePtr(cfg.Name),
		moduleID: clonePtr(cfg.ModuleID),
	}
}

// Runtime returns the live implementation handle, nil when unknown
func (t *CompileTypeMetadata) Runtime() any { return t.runtime }

// Name returns the type name, nil when absent
func (t *CompileTypeMetadata) Name() *string { return clonePtr(t.name) }

// ModuleID returns the location the type was loaded from, nil when absent
func (t *CompileTypeMetadata) ModuleID() *string { return clonePtr(t.moduleID) }

// ToStructured returns the name and module id of the type.
// The runtime handle is never written: a live value has no structural form,
// so it is always lost on a round trip.
func (t *CompileTypeMetadata) ToStructured() map[string]any {
	data := map[string]any{}
	putOptional(data, "name", t.name)
	putOptional(data, "moduleId", t.moduleID)
	return data
}

// CompileTypeMetadataFromStructured rebuilds a type from ToStructured output.
// The result has no runtime handle.
func CompileTypeMetadataFromStructured(data map[string]any) (*CompileTypeMetadata, error) {
	name, err := optionalString(data, "name")
	if err != nil {
		return nil, err
	}
	moduleID, err := optionalString(data, "moduleId")
	if err != nil {
		return nil, err
	}
	return &CompileTypeMetadata{name: name, moduleID: moduleID}, nil
}

package descriptor

// Builtin returns a descriptor for a Go builtin type (int, string, ...).
func Builtin(name string) *Type {
	return &Type{Name: name}
}

// Named returns a descriptor for a named, non-container type.
func Named(pkgPath, name string) *Type {
	return &Type{PkgPath: pkgPath, Name: name}
}

// List returns a list descriptor over elem.
func List(elem *Type) *Type {
	return &Type{Kind: ContainerList, Params: []TypeParam{{Type: elem}}}
}

// Set returns a set descriptor over elem.
func Set(elem *Type) *Type {
	return &Type{Kind: ContainerSet, Params: []TypeParam{{Type: elem}}}
}

// Array returns an array descriptor over elem.
func Array(elem *Type) *Type {
	return &Type{Kind: ContainerArray, Params: []TypeParam{{Type: elem}}}
}

// Iterable returns an anonymous iterable descriptor over elem.
func Iterable(elem *Type) *Type {
	return &Type{Kind: ContainerIterable, Params: []TypeParam{{Type: elem}}}
}

// Map returns a map descriptor with the given key and value types.
func Map(key, value *Type) *Type {
	return &Type{Kind: ContainerMap, Params: []TypeParam{{Type: key}, {Type: value}}}
}

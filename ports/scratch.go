package ports

// ScratchPort is run-scoped temporary storage for rendered images
type ScratchPort interface {
	// Path returns a location inside the scratch area for the named file
	Path(name string) string
	// Release removes everything stored in the scratch area
	Release() error
}

package repository

// DocumentStore persists raw uploaded file bytes. Filenames are assumed
// unique; saving an existing name overwrites the file.
type DocumentStore interface {
	Save(filename string, content []byte) (string, error)
	Read(filename string) ([]byte, error)
	List() ([]string, error)
}

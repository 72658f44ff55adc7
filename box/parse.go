package box

import "os"

// Parse opens path and decodes its top-level box sequence.
func Parse(path string, opts ...Option) ([]Atom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ParseReader(f, info.Size(), opts...)
}

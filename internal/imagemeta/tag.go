package imagemeta

// Kind is the shape of a metadata tag's value.
type Kind int

const (
	KindString Kind = iota
	KindArray
	KindStructure
)

// Tag is a named metadata value from an image's XMP packet. Array and
// structure tags hold their members in Items.
type Tag struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	Value     string `json:"value,omitempty"`
	Items     []Tag  `json:"items,omitempty"`
}

// Text returns the tag's value when it is a simple string.
func (t Tag) Text() (string, bool) {
	if t.Kind != KindString {
		return "", false
	}
	return t.Value, true
}

// Array returns the members of an ordered, unordered or alternative array.
func (t Tag) Array() ([]Tag, bool) {
	if t.Kind != KindArray {
		return nil, false
	}
	return t.Items, true
}

// findTag returns the last top-level tag with the given name.
func findTag(tags []Tag, name Key) (Tag, bool) {
	var (
		found Tag
		ok    bool
	)
	for _, tag := range tags {
		if tag.Name == string(name) {
			found, ok = tag, true
		}
	}
	return found, ok
}

package models

// Draft is the recipe record being edited before it is sent to the server.
// Values are treated as immutable: mutations in pkg/draft return a new Draft.
type Draft struct {
	Title       string   `json:"title" yaml:"title"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
	Description string   `json:"description" yaml:"description"`
	Directions  string   `json:"directions" yaml:"directions"`
	Asset       *Asset   `json:"asset,omitempty" yaml:"asset,omitempty"`
}

// Asset is a user-selected image attached to a draft
type Asset struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type" yaml:"content_type"`
	SourcePath  string `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	Data        []byte `json:"-" yaml:"-"`
}

// Size returns the asset size in bytes
func (a *Asset) Size() int64 {
	if a == nil {
		return 0
	}
	return int64(len(a.Data))
}

// DefaultDraft returns the empty draft shown when the form opens:
// one empty ingredient slot and no asset.
func DefaultDraft() Draft {
	return Draft{
		Ingredients: []string{""},
	}
}

// Clone returns a copy of the draft that shares no slices with d.
// The asset is shared; assets are never mutated after loading.
func (d Draft) Clone() Draft {
	out := d
	out.Ingredients = make([]string, len(d.Ingredients))
	copy(out.Ingredients, d.Ingredients)
	return out
}

// HasAsset reports whether an image is attached
func (d Draft) HasAsset() bool {
	return d.Asset != nil
}

package dto

// ViewMetadata is the document shape of a view, shared by every loader.
// It uses "mapstructure" tags so YAML, JSON and frontmatter decode alike.
type ViewMetadata struct {
	ID string `json:"id" mapstructure:"id"`

	// Separator is either a one-character string or a rune code point.
	Separator any `json:"separator,omitempty" mapstructure:"separator"`

	Root *ComponentMetadata `json:"root" mapstructure:"root"`
}

// ComponentMetadata describes one component and its subtree.
type ComponentMetadata struct {
	ID     string `json:"id" mapstructure:"id"`
	Family string `json:"family" mapstructure:"family"`
	// Type is accepted as an alias of Family.
	Type            string              `json:"type,omitempty" mapstructure:"type"`
	NamingContainer bool                `json:"naming_container" mapstructure:"naming_container"`
	Rendered        *bool               `json:"rendered,omitempty" mapstructure:"rendered"`
	Attributes      map[string]string   `json:"attributes,omitempty" mapstructure:"attributes"`
	Children        []ComponentMetadata `json:"children,omitempty" mapstructure:"children"`
}

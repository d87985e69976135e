package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, document structure, published styles, and schema version information.
type FileResponse struct {
	Name          string           `json:"name"`
	LastModified  string           `json:"lastModified"`
	ThumbnailURL  string           `json:"thumbnailUrl"`
	Version       string           `json:"version"`
	Document      Node             `json:"document"`
	Styles        map[string]Style `json:"styles"`
	SchemaVersion int              `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a node with its document structure and optional component/style information.
// This is the structure returned for each requested node in a NodesResponse.
type NodeData struct {
	Document   Node                 `json:"document"`
	Components map[string]Component `json:"components,omitempty"`
	Styles     map[string]Style     `json:"styles,omitempty"`
}

// Component represents a Figma component definition with its metadata.
// Components are reusable design elements that can be instantiated throughout the file.
type Component struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style represents a published Figma style with its basic properties.
// Styles can be colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"style_type"`
}

// ImagesResponse represents the response from the Figma image render API endpoint.
// It maps node IDs to temporary download URLs; a node that could not be rendered maps to an empty string.
type ImagesResponse struct {
	Err    string            `json:"err,omitempty"`
	Images map[string]string `json:"images"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or other Figma elements, each with their own properties
// such as fills, strokes, effects, layout settings, and children nodes. The document tree is loosely
// typed: any field may be absent, so optional fields are pointers or zero values.
type Node struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Type                  string            `json:"type"`
	Visible               *bool             `json:"visible,omitempty"` // nil means visible
	Children              []Node            `json:"children,omitempty"`
	BackgroundColor       *Color            `json:"backgroundColor,omitempty"`
	Fills                 []Paint           `json:"fills,omitempty"`
	Strokes               []Paint           `json:"strokes,omitempty"`
	StrokeWeight          float64           `json:"strokeWeight,omitempty"`
	CornerRadius          float64           `json:"cornerRadius,omitempty"`
	RectangleCornerRadii  []float64         `json:"rectangleCornerRadii,omitempty"`
	Effects               []Effect          `json:"effects,omitempty"`
	Opacity               float64           `json:"opacity,omitempty"`
	Characters            string            `json:"characters,omitempty"`
	Style                 *TypeStyle        `json:"style,omitempty"`
	AbsoluteBoundingBox   *Rectangle        `json:"absoluteBoundingBox,omitempty"`
	Constraints           *LayoutConstraint `json:"constraints,omitempty"`
	LayoutMode            string            `json:"layoutMode,omitempty"` // "HORIZONTAL", "VERTICAL", "NONE" or absent
	LayoutWrap            string            `json:"layoutWrap,omitempty"`
	PrimaryAxisSizingMode string            `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode string            `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems string            `json:"primaryAxisAlignItems,omitempty"` // MIN, CENTER, MAX, SPACE_BETWEEN
	CounterAxisAlignItems string            `json:"counterAxisAlignItems,omitempty"`
	LayoutGrow            float64           `json:"layoutGrow,omitempty"`
	PaddingLeft           float64           `json:"paddingLeft,omitempty"`
	PaddingRight          float64           `json:"paddingRight,omitempty"`
	PaddingTop            float64           `json:"paddingTop,omitempty"`
	PaddingBottom         float64           `json:"paddingBottom,omitempty"`
	ItemSpacing           float64           `json:"itemSpacing,omitempty"`
	ExportSettings        []ExportSetting   `json:"exportSettings,omitempty"`
}

// IsVisible reports whether the node is visible. Figma omits the field for visible nodes.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// The R, G, B, and A (alpha/opacity) values must be converted to 0-255 range for standard use.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, IMAGE, etc.), visibility, opacity, and color information.
type Paint struct {
	Type     string  `json:"type"`
	Visible  *bool   `json:"visible,omitempty"` // nil means visible
	Opacity  float64 `json:"opacity,omitempty"`
	Color    *Color  `json:"color,omitempty"`
	ImageRef string  `json:"imageRef,omitempty"`
}

// IsVisible reports whether the paint is visible. Figma omits the field for visible paints.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Effect represents a visual effect applied to a Figma node such as drop shadows, inner shadows, or blur effects.
// It includes positioning (offset), blur radius, spread, color, and blend mode settings.
type Effect struct {
	Type      string  `json:"type"`
	Visible   *bool   `json:"visible,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// IsVisible reports whether the effect is visible.
func (e *Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector represents a 2D coordinate or offset with X and Y values.
// Used for positioning effects like shadows and other spatial properties.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents comprehensive text styling properties from Figma.
// It includes font family, weight, size, line height, letter spacing, and text alignment settings.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LineHeightPercent   float64 `json:"lineHeightPercent"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
	TextAlignVertical   string  `json:"textAlignVertical"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
// Used to define the absolute position and size of nodes in the Figma canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutConstraint defines how a node's position and size behave when its parent is resized.
// Constraints can be set for both vertical (TOP, BOTTOM, CENTER, etc.) and horizontal directions.
type LayoutConstraint struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

// ExportSetting describes an export preset the designer configured on a node.
type ExportSetting struct {
	Suffix string `json:"suffix"`
	Format string `json:"format"`
}

// VariablesResponse represents the response from the local variables API endpoint.
// It contains the file's variable collections and the variables they group.
type VariablesResponse struct {
	Error  bool          `json:"error,omitempty"`
	Status int           `json:"status,omitempty"`
	Meta   VariablesMeta `json:"meta"`
}

// VariablesMeta holds the variable payload of a VariablesResponse, keyed by ID.
type VariablesMeta struct {
	VariableCollections map[string]VariableCollection `json:"variableCollections"`
	Variables           map[string]Variable           `json:"variables"`
}

// VariableCollection groups variables under a set of modes (for example Light
// and Dark). VariableIDs preserves the designer's declaration order.
type VariableCollection struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Key           string         `json:"key"`
	Modes         []VariableMode `json:"modes"`
	DefaultModeID string         `json:"defaultModeId"`
	VariableIDs   []string       `json:"variableIds"`
}

// VariableMode is one theming mode of a collection.
type VariableMode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// Variable is one design variable. ValuesByMode maps a mode ID to the value in
// that mode: a color object, a number, a string, a boolean, or an alias object
// referencing another variable, depending on ResolvedType.
type Variable struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Key                  string         `json:"key"`
	VariableCollectionID string         `json:"variableCollectionId"`
	ResolvedType         string         `json:"resolvedType"` // COLOR, FLOAT, STRING, BOOLEAN
	Description          string         `json:"description,omitempty"`
	ValuesByMode         map[string]any `json:"valuesByMode"`
}

package protocol

const (
	// Current protocol revision
	ProtocolVersion = "0.2.0"

	// Methods for lifecycle management
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"

	// Methods for server features
	MethodListPrompts          = "prompts/list"
	MethodGetPrompt            = "prompts/get"
	MethodPromptsListChanged   = "notifications/prompts/list_changed"
	MethodListResources        = "resources/list"
	MethodReadResource         = "resources/read"
	MethodSubscribeResource    = "resources/subscribe"
	MethodResourcesListChanged = "notifications/resources/list_changed"
	MethodResourceUpdated      = "notifications/resources/updated"
	MethodListTools            = "tools/list"
	MethodCallTool             = "tools/call"
	MethodToolsListChanged     = "notifications/tools/list_changed"
)

// InitializeResult is the server's reply to the initialize request
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitempty"`
}

// NewInitializeResult creates an initialize reply for the current protocol version
func NewInitializeResult(info Implementation, caps ServerCapabilities) InitializeResult {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
		ServerInfo:      info,
	}
}

// WithInstructions returns a copy of the result carrying usage instructions
func (r InitializeResult) WithInstructions(instructions string) InitializeResult {
	r.Instructions = instructions
	return r
}

// Implementation names and versions an endpoint
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerCapabilities lists the features a server supports.
// A nil sub-capability means the feature is not supported at all.
type ServerCapabilities struct {
	Prompts   *PromptsCapability   `json:"prompts,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
	Tools     *ToolsCapability     `json:"tools,omitempty"`
}

// PromptsCapability advertises prompt support
type PromptsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// ResourcesCapability advertises resource support
type ResourcesCapability struct {
	Subscribe   *bool `json:"subscribe,omitempty"`
	ListChanged *bool `json:"listChanged,omitempty"`
}

// ToolsCapability advertises tool support
type ToolsCapability struct {
	ListChanged *bool `json:"listChanged,omitempty"`
}

// WithPrompts enables prompt support
func (c ServerCapabilities) WithPrompts(listChanged bool) ServerCapabilities {
	c.Prompts = &PromptsCapability{ListChanged: Bool(listChanged)}
	return c
}

// WithResources enables resource support
func (c ServerCapabilities) WithResources(subscribe, listChanged bool) ServerCapabilities {
	c.Resources = &ResourcesCapability{Subscribe: Bool(subscribe), ListChanged: Bool(listChanged)}
	return c
}

// WithTools enables tool support
func (c ServerCapabilities) WithTools(listChanged bool) ServerCapabilities {
	c.Tools = &ToolsCapability{ListChanged: Bool(listChanged)}
	return c
}

// Bool returns a pointer to v, for optional capability flags
func Bool(v bool) *bool {
	return &v
}

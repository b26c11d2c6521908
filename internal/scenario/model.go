package scenario

// Scenario is the top-level aggregate of a traffic scenario.
type Scenario struct {
	Config    Config             `json:"config" yaml:"config"`
	Servers   []Server           `json:"servers" yaml:"servers"`
	Requests  []Request          `json:"requests" yaml:"requests"`
	Responses []ExpectedResponse `json:"responses" yaml:"responses"`
}

// Config holds the scenario metadata.
type Config struct {
	Name string `json:"name" yaml:"name"`
	// Rate is a concurrency hint. Zero means no ceiling within a wave.
	Rate        uint   `json:"rate" yaml:"rate"`
	Description string `json:"description" yaml:"description"`
	Author      string `json:"author" yaml:"author"`
}

// Server is a target that requests are sent to.
type Server struct {
	ID            uint32      `json:"id" yaml:"id"`
	Protocol      Protocol    `json:"protocol" yaml:"protocol"`
	Host          string      `json:"host" yaml:"host"`
	Port          uint16      `json:"port" yaml:"port"`
	Authorization bool        `json:"authorization" yaml:"authorization"`
	HTTPVersion   HTTPVersion `json:"http_version" yaml:"http_version"`
	AuthzToken    *string     `json:"authz_token" yaml:"authz_token"`
}

// Request is a single HTTP call issued against one Server.
type Request struct {
	ID       uint32         `json:"id" yaml:"id"`
	ServerID uint32         `json:"server_id" yaml:"server_id"`
	Path     string         `json:"path" yaml:"path"`
	Method   Method         `json:"method" yaml:"method"`
	Content  RequestContent `json:"content" yaml:"content"`
	// Depends lists the requests that must reach a final outcome before this
	// one may start.
	Depends   []uint32 `json:"depends" yaml:"depends"`
	TimeoutMS *uint64  `json:"timeout_ms" yaml:"timeout_ms"`
}

// RequestContent carries the headers and JSON body sent with a Request.
type RequestContent struct {
	Headers map[string]string `json:"headers" yaml:"headers"`
	Body    any               `json:"body" yaml:"body"`
}

// ExpectedResponse is the fixture a Request's actual response is validated against.
type ExpectedResponse struct {
	ID        uint32          `json:"id" yaml:"id"`
	RequestID uint32          `json:"request_id" yaml:"request_id"`
	Expected  ResponseContent `json:"expected" yaml:"expected"`
}

// ResponseContent is the expected status, header subset and JSON body.
type ResponseContent struct {
	Headers map[string]string `json:"headers" yaml:"headers"`
	Body    any               `json:"body" yaml:"body"`
	Status  uint16            `json:"status" yaml:"status"`
}

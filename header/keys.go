// Package header holds the header-name and content-type vocabulary used by
// endpoint implementations.
package header

// Authentication
const (
	WWWAuthenticate    = "WWW-Authenticate"
	Authorization      = "Authorization"
	ProxyAuthenticate  = "Proxy-Authenticate"
	ProxyAuthorization = "Proxy-Authorization"
)

// Caching
const (
	Age          = "Age"
	CacheControl = "Cache-Control"
	Expires      = "Expires"
	Pragma       = "Pragma"
	Warning      = "Warning"
)

// Client hints
const (
	AcceptCH      = "Accept-CH"
	ContentDPR    = "Content-DPR"
	DPR           = "DPR"
	Downlink      = "Downlink"
	SaveData      = "Save-Data"
	ViewportWidth = "Viewport-Width"
	Width         = "Width"
)

// Conditionals
const (
	LastModified      = "Last-Modified"
	ETag              = "ETag"
	IfMatch           = "If-Match"
	IfNoneMatch       = "If-None-Match"
	IfModifiedSince   = "If-Modified-Since"
	IfUnmodifiedSince = "If-Unmodified-Since"
)

// Connection management
const (
	Connection = "Connection"
	KeepAlive  = "Keep-Alive"
)

// Content negotiation
const (
	Accept         = "Accept"
	AcceptCharset  = "Accept-Charset"
	AcceptEncoding = "Accept-Encoding"
	AcceptLanguage = "Accept-Language"
)

// Controls
const (
	Expect      = "Expect"
	MaxForwards = "Max-Forwards"
)

// Cookies
const (
	Cookie    = "Cookie"
	SetCookie = "Set-Cookie"
)

// CORS
const (
	AccessControlAllowOrigin      = "Access-Control-Allow-Origin"
	AccessControlAllowCredentials = "Access-Control-Allow-Credentials"
	AccessControlAllowHeaders     = "Access-Control-Allow-Headers"
	AccessControlAllowMethods     = "Access-Control-Allow-Methods"
	AccessControlExposeHeaders    = "Access-Control-Expose-Headers"
	AccessControlMaxAge           = "Access-Control-Max-Age"
	AccessControlRequestHeaders   = "Access-Control-Request-Headers"
	AccessControlRequestMethod    = "Access-Control-Request-Method"
	Origin                        = "Origin"
	TimingAllowOrigin             = "Timing-Allow-Origin"
)

// Do not track
const (
	DNT = "DNT"
	Tk  = "Tk"
)

// Downloads
const (
	ContentDisposition = "Content-Disposition"
)

// Message body information
const (
	ContentLength   = "Content-Length"
	ContentType     = "Content-Type"
	ContentEncoding = "Content-Encoding"
	ContentLanguage = "Content-Language"
	ContentLocation = "Content-Location"
)

// Proxies
const (
	Forwarded       = "Forwarded"
	XForwardedFor   = "X-Forwarded-For"
	XForwardedHost  = "X-Forwarded-Host"
	XForwardedProto = "X-Forwarded-Proto"
	Via             = "Via"
)

// Redirects
const (
	Location = "Location"
)

// Request context
const (
	From           = "From"
	Host           = "Host"
	Referer        = "Referer"
	ReferrerPolicy = "Referrer-Policy"
	UserAgent      = "User-Agent"
)

// Response context
const (
	Allow  = "Allow"
	Server = "Server"
)

// Range requests
const (
	AcceptRanges = "Accept-Ranges"
	Range        = "Range"
	IfRange      = "If-Range"
	ContentRange = "Content-Range"
)

// Security
const (
	ContentSecurityPolicy           = "Content-Security-Policy"
	ContentSecurityPolicyReportOnly = "Content-Security-Policy-Report-Only"
	PublicKeyPins                   = "Public-Key-Pins"
	PublicKeyPinsReportOnly         = "Public-Key-Pins-Report-Only"
	StrictTransportSecurity         = "Strict-Transport-Security"
	UpgradeInsecureRequests         = "Upgrade-Insecure-Requests"
	XContentTypeOptions             = "X-Content-Type-Options"
	XFrameOptions                   = "X-Frame-Options"
	XXSSProtection                  = "X-XSS-Protection"
)

// Server-sent events
const (
	PingFrom    = "Ping-From"
	PingTo      = "Ping-To"
	LastEventID = "Last-Event-ID"
)

// Transfer coding
const (
	TransferEncoding = "Transfer-Encoding"
	TE               = "TE"
	Trailer          = "Trailer"
)

// WebSockets
const (
	SecWebSocketKey        = "Sec-WebSocket-Key"
	SecWebSocketExtensions = "Sec-WebSocket-Extensions"
	SecWebSocketAccept     = "Sec-WebSocket-Accept"
	SecWebSocketProtocol   = "Sec-WebSocket-Protocol"
	SecWebSocketVersion    = "Sec-WebSocket-Version"
)

// Other
const (
	Date                = "Date"
	LargeAllocation     = "Large-Allocation"
	Link                = "Link"
	RetryAfter          = "Retry-After"
	SourceMap           = "SourceMap"
	Upgrade             = "Upgrade"
	Vary                = "Vary"
	XDNSPrefetchControl = "X-DNS-Prefetch-Control"
	XFirefoxSpdy        = "X-Firefox-Spdy"
	XRequestedWith      = "X-Requested-With"
	XUACompatible       = "X-UA-Compatible"
)

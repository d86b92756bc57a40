package dbus

// Proxy identifies the DBus service, endpoint, and object path an
// object-path node's values are scoped to. An 'o' value can only
// legally name an object on the same service and endpoint as its
// enclosing proxy (spec.md §3.2); resolving it to a usable reference
// therefore needs an existing Proxy for scope, not just the bare path
// string.
//
// Proxy implements Parent so that a node rooted at a proxy can be
// walked upward the same way as any other node (see [proxyParent]).
type Proxy interface {
	Parent() Parent

	// Service names the DBus service (well-known or unique bus name)
	// this proxy talks to.
	Service() string
	// Endpoint names the interface this proxy exposes.
	Endpoint() string
	// Path is this proxy's own object path.
	Path() string

	// HasSameScopeAs reports whether other names the same service and
	// endpoint as this proxy, ignoring path.
	HasSameScopeAs(other Proxy) bool
	// WithPath returns a sibling proxy for the same service and
	// endpoint at a different object path.
	WithPath(path string) Proxy
}

// proxyParent walks node's parent chain upward until it finds a
// Proxy, or until the chain ends at an entity with no further parent.
// It returns nil in the latter case.
func proxyParent(node *ArgumentNode) Proxy {
	var cur Parent = node.Parent()
	for cur != nil {
		if p, ok := cur.(Proxy); ok {
			return p
		}
		cur = cur.Parent()
	}
	return nil
}

// StaticProxy is a minimal Proxy backed by three fixed strings, with
// no live bus connection. It is the reference implementation callers
// use to root a node tree when no richer proxy object is needed —
// grounded on the teacher's Peer/Object pair, which split the same
// three pieces of identity across two types backed by a live *Conn;
// this repository has no connection to back, so the two collapse into
// one immutable value.
type StaticProxy struct {
	service  string
	endpoint string
	path     string
}

// NewStaticProxy returns a StaticProxy for the given service,
// endpoint, and object path.
func NewStaticProxy(service, endpoint, path string) *StaticProxy {
	return &StaticProxy{service: service, endpoint: endpoint, path: path}
}

func (p *StaticProxy) Parent() Parent   { return nil }
func (p *StaticProxy) Service() string  { return p.service }
func (p *StaticProxy) Endpoint() string { return p.endpoint }
func (p *StaticProxy) Path() string     { return p.path }

func (p *StaticProxy) HasSameScopeAs(other Proxy) bool {
	return other != nil && p.service == other.Service() && p.endpoint == other.Endpoint()
}

func (p *StaticProxy) WithPath(path string) Proxy {
	return &StaticProxy{service: p.service, endpoint: p.endpoint, path: path}
}

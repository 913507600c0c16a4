// Package route describes the memos page routes and matches paths against
// them the way the web router does.
package route

import (
	"path"
	"strings"
)

// Top-level paths.
const (
	Root      = "/"
	Resources = "/resources"
	Inbox     = "/inbox"
	Archived  = "/archived"
	Setting   = "/setting"
	Explore   = "/explore"
	Auth      = "/auth"
	Integrate = "/integrate"
)

// Route is one node of the page tree. Lazy pages load their module on
// first visit and may suspend while it is fetched.
type Route struct {
	Path     string
	Name     string
	Lazy     bool
	Children []Route
}

// Tree returns the page routes in match order.
func Tree() []Route {
	return []Route{
		{Path: Auth, Children: []Route{
			{Path: "", Name: "SignIn", Lazy: true},
			{Path: "admin", Name: "AdminSignIn", Lazy: true},
			{Path: "signup", Name: "SignUp", Lazy: true},
			{Path: "callback", Name: "AuthCallback", Lazy: true},
		}},
		{Path: Integrate, Children: []Route{
			{Path: "", Name: "ExploreIntegrate", Lazy: true},
		}},
		{Path: Root, Children: []Route{
			{Path: "", Name: "Home"},
			{Path: Explore, Name: "Explore", Lazy: true},
			{Path: Archived, Name: "Archived", Lazy: true},
			{Path: "u/:username", Name: "UserProfile", Lazy: true},
			{Path: Resources, Name: "Resources", Lazy: true},
			{Path: Inbox, Name: "Inboxes", Lazy: true},
			{Path: Setting, Name: "Setting", Lazy: true},
			{Path: "memos/:uid", Name: "MemoDetail", Lazy: true},
			{Path: "m/:uid", Name: "MemoDetailRedirect", Lazy: true}, // old path
			{Path: "403", Name: "PermissionDenied", Lazy: true},
			{Path: "404", Name: "NotFound", Lazy: true},
			{Path: "*", Name: "NotFound", Lazy: true},
		}},
	}
}

// Leaf is a flattened route with its absolute pattern.
type Leaf struct {
	Pattern string
	Name    string
	Lazy    bool
}

// Flatten returns every named leaf of Tree with absolute patterns.
func Flatten() []Leaf {
	var out []Leaf
	var walk func(prefix string, rs []Route)
	walk = func(prefix string, rs []Route) {
		for _, r := range rs {
			p := join(prefix, r.Path)
			if r.Name != "" {
				out = append(out, Leaf{Pattern: p, Name: r.Name, Lazy: r.Lazy})
			}
			walk(p, r.Children)
		}
	}
	walk("/", Tree())
	return out
}

func join(prefix, p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	if p == "" {
		return prefix
	}
	return path.Join(prefix, p)
}

// Resolve returns the first leaf matching pathname and its params.
func Resolve(pathname string) (Leaf, map[string]string, bool) {
	for _, leaf := range Flatten() {
		if params, ok := Match(leaf.Pattern, pathname); ok {
			return leaf, params, true
		}
	}
	return Leaf{}, nil, false
}

// Match reports whether pathname matches pattern. Static segments compare
// case-insensitively, ":name" captures one segment and a trailing "*"
// captures the rest. A trailing slash on pathname is ignored.
func Match(pattern, pathname string) (map[string]string, bool) {
	pp := segments(pattern)
	sp := segments(pathname)
	params := map[string]string{}

	for i, seg := range pp {
		if seg == "*" && i == len(pp)-1 {
			params["*"] = strings.Join(sp[min(i, len(sp)):], "/")
			return params, true
		}
		if i >= len(sp) {
			return nil, false
		}
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if sp[i] == "" {
				return nil, false
			}
			params[name] = sp[i]
			continue
		}
		if !strings.EqualFold(seg, sp[i]) {
			return nil, false
		}
	}
	if len(sp) != len(pp) {
		return nil, false
	}
	return params, true
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// IsIntegrate reports whether pathname is the integrate page, where filter
// chips are shown untruncated.
func IsIntegrate(pathname string) bool {
	_, ok := Match(Integrate, pathname)
	return ok
}

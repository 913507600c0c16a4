// Package filtersync keeps the page URL and the tag-list consumer in step
// with a filterstore.Store.
package filtersync

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kittclouds/memofilter/pkg/filter"
	"github.com/kittclouds/memofilter/pkg/filterstore"
	"github.com/kittclouds/memofilter/pkg/route"
)

// DefaultParam is the query parameter carrying the encoded filters.
const DefaultParam = "filter"

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Param overrides DefaultParam.
	Param string
	// TagList receives the tag filter values after every change.
	TagList func(tags []string)
	// OnlyTags limits Chips to tag filters. The URL still carries everything.
	OnlyTags bool
	// DisableRemoval hides the remove control on chips.
	DisableRemoval bool
	// IsIntegrate reports whether a path shows chips untruncated.
	// Defaults to route.IsIntegrate.
	IsIntegrate func(path string) bool
	// Translate resolves chip label keys.
	Translate filter.Translator
	// Restore loads the store from the URL before the first sync instead of
	// overwriting the URL with the store.
	Restore bool
	Logger  *log.Logger
}

// Chip is the render model for one active filter.
type Chip struct {
	Key       string        `json:"key"`
	Text      string        `json:"text"`
	Icon      string        `json:"icon,omitempty"`
	Truncate  bool          `json:"truncate"`
	Removable bool          `json:"removable"`
	Filter    filter.Filter `json:"filter"`
}

// Controller mirrors store changes into the URL and the tag-list callback.
type Controller struct {
	store       *filterstore.Store
	nav         Navigator
	opts        Options
	log         *log.Logger
	unsubscribe func()
}

// New binds store to nav and runs the first sync immediately.
// With opts.Restore the store is first loaded from the URL.
func New(store *filterstore.Store, nav Navigator, opts Options) *Controller {
	if opts.Param == "" {
		opts.Param = DefaultParam
	}
	if opts.IsIntegrate == nil {
		opts.IsIntegrate = route.IsIntegrate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		store: store,
		nav:   nav,
		opts:  opts,
		log:   logger,
	}
	c.unsubscribe = store.Subscribe(c.sync)
	if opts.Restore {
		if err := c.Restore(); err == nil {
			return c
		}
	}
	c.sync(store.Filters())
	return c
}

func (c *Controller) sync(fs []filter.Filter) {
	encoded := filter.Encode(fs)

	cur := c.nav.Location()
	if next, changed := withParam(cur, c.opts.Param, encoded); changed {
		if err := c.nav.Replace(next); err != nil {
			c.log.Error("failed to replace url", "url", next.String(), "err", err)
		} else {
			c.log.Debug("synced filter param", "count", len(fs), "value", encoded)
		}
	}

	if c.opts.TagList != nil {
		c.opts.TagList(filter.Tags(fs))
	}
}

// withParam returns u with param set to value, or removed when value is
// empty. Only the param's own pairs in the raw query are touched; every other
// pair keeps its position and spelling.
func withParam(u *url.URL, param, value string) (*url.URL, bool) {
	var pairs []string
	placed := false
	if u.RawQuery != "" {
		for _, pair := range strings.Split(u.RawQuery, "&") {
			key, _, _ := strings.Cut(pair, "=")
			if name, err := url.QueryUnescape(key); err != nil || name != param {
				pairs = append(pairs, pair)
				continue
			}
			if value != "" && !placed {
				pairs = append(pairs, url.QueryEscape(param)+"="+url.QueryEscape(value))
				placed = true
			}
		}
	}
	if value != "" && !placed {
		pairs = append(pairs, url.QueryEscape(param)+"="+url.QueryEscape(value))
	}

	raw := strings.Join(pairs, "&")
	if raw == u.RawQuery {
		return u, false
	}
	next := *u
	next.RawQuery = raw
	next.ForceQuery = false
	return &next, true
}

// Chips projects the current collection for display.
func (c *Controller) Chips() []Chip {
	fs := c.store.Filters()
	if c.opts.OnlyTags {
		fs = filter.OnlyTags(fs)
	}
	truncate := !c.opts.IsIntegrate(c.nav.Location().Path)

	chips := make([]Chip, 0, len(fs))
	for _, f := range fs {
		chips = append(chips, Chip{
			Key:       filter.Key(f),
			Text:      filter.DisplayText(f, c.opts.Translate),
			Icon:      filter.IconFor(f.Factor).String(),
			Truncate:  truncate,
			Removable: !c.opts.DisableRemoval,
			Filter:    f,
		})
	}
	return chips
}

// Remove drops every filter equal to the one identified by key.
// It works whether or not chips show a remove control.
func (c *Controller) Remove(key string) (bool, error) {
	n, err := RemoveKey(c.store, key)
	return n > 0, err
}

// RemoveKey drops every filter in store equal to the one whose Key is key and
// returns how many went. An unknown key removes nothing and does not notify.
func RemoveKey(store *filterstore.Store, key string) (int, error) {
	for _, f := range store.Filters() {
		if filter.Key(f) == key {
			return store.RemoveFilter(filter.Is(f))
		}
	}
	return 0, nil
}

// Restore loads the collection from the current URL. A malformed parameter
// yields an empty collection.
func (c *Controller) Restore() error {
	raw := c.nav.Location().Query().Get(c.opts.Param)
	fs, err := filter.Parse(raw)
	if err != nil {
		c.log.Warn("ignoring malformed filter param", "value", raw, "err", err)
		fs = []filter.Filter{}
	}
	return c.store.SetFilters(fs)
}

// Close detaches the controller from its store.
func (c *Controller) Close() {
	c.unsubscribe()
}

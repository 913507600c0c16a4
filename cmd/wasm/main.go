//go:build js && wasm

package main

import (
	"encoding/json"
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/kittclouds/memofilter/internal/store"
	"github.com/kittclouds/memofilter/pkg/filter"
	"github.com/kittclouds/memofilter/pkg/filterstore"
	"github.com/kittclouds/memofilter/pkg/filtersync"
	"github.com/kittclouds/memofilter/pkg/response"
	"github.com/kittclouds/memofilter/pkg/search"
)

// Version info
const Version = "0.1.0"

// Global state
var (
	filters  *filterstore.Store     // Page-session filter collection
	ctrl     *filtersync.Controller // URL + tag-list sync, nil until mount
	tagStore *store.SQLiteStore     // Tag catalog, nil until tagsInit
	dict     *search.Dictionary     // Known-tag matcher, rebuilt on catalog change
	onTagsFn js.Value               // JS consumer of the tag filter list
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "MemoFilters"})

func main() {
	filters = filterstore.New()
	dict, _ = search.Compile(nil)

	logger.Info("WASM ready", "version", Version)

	js.Global().Set("MemoFilters", js.ValueOf(map[string]interface{}{
		"version": js.FuncOf(getVersion),
		// Sync controller
		"mount":   js.FuncOf(mount),   // Bind to window URL, restore from ?filter=
		"unmount": js.FuncOf(unmount), // Detach and clear (navigating away)
		"onTags":  js.FuncOf(onTags),  // Register tag-list consumer
		"chips":   js.FuncOf(chips),   // Render projection
		// Store
		"add":         js.FuncOf(add),
		"remove":      js.FuncOf(remove),      // By chip key
		"removeWhere": js.FuncOf(removeWhere), // By equality with a filter
		"set":         js.FuncOf(set),
		"clear":       js.FuncOf(clearFilters),
		"list":        js.FuncOf(list),
		// Codec
		"encode": js.FuncOf(encode),
		"decode": js.FuncOf(decode),
		// Search bar + tag catalog
		"parse":          js.FuncOf(parse),
		"tagsInit":       js.FuncOf(tagsInit),
		"hydrateTags":    js.FuncOf(hydrateTags),
		"setMemoTags":    js.FuncOf(setMemoTags),
		"deleteMemoTags": js.FuncOf(deleteMemoTags),
		"listTags":       js.FuncOf(listTags),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// =============================================================================
// Sync controller
// =============================================================================

// mount binds the store to the window URL and restores filters from it.
// Args: [optionsJSON string] - optional {onlyTags, disableRemoval, param}
func mount(this js.Value, args []js.Value) interface{} {
	var opts struct {
		OnlyTags       bool   `json:"onlyTags"`
		DisableRemoval bool   `json:"disableRemoval"`
		Param          string `json:"param"`
	}
	if len(args) > 0 && args[0].Type() == js.TypeString && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &opts); err != nil {
			return response.Error("invalid options json: " + err.Error())
		}
	}

	if ctrl != nil {
		ctrl.Close()
	}
	ctrl = filtersync.New(filters, browserNavigator{}, filtersync.Options{
		Param:          opts.Param,
		OnlyTags:       opts.OnlyTags,
		DisableRemoval: opts.DisableRemoval,
		TagList:        deliverTags,
		Translate:      translate,
		Restore:        true,
		Logger:         logger,
	})
	return response.Success("mounted")
}

// unmount detaches the controller and resets the collection.
func unmount(this js.Value, args []js.Value) interface{} {
	if ctrl != nil {
		ctrl.Close()
		ctrl = nil
	}
	if err := filters.Clear(); err != nil {
		return response.Error(err.Error())
	}
	return response.Success("unmounted")
}

// onTags registers the tag-list consumer. Args: [fn function | null]
func onTags(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		onTagsFn = js.Undefined()
		return response.Success("tag consumer cleared")
	}
	onTagsFn = args[0]
	return response.Success("tag consumer set")
}

func deliverTags(tags []string) {
	if onTagsFn.Type() != js.TypeFunction {
		return
	}
	arr := make([]interface{}, len(tags))
	for i, t := range tags {
		arr[i] = t
	}
	onTagsFn.Invoke(js.ValueOf(arr))
}

// translate defers label lookup to window.MemoFiltersTranslate when present.
func translate(key string) string {
	fn := js.Global().Get("MemoFiltersTranslate")
	if fn.Type() != js.TypeFunction {
		return key
	}
	return fn.Invoke(key).String()
}

func chips(this js.Value, args []js.Value) interface{} {
	if ctrl == nil {
		return response.Error("not mounted")
	}
	return response.MarshalChips(ctrl.Chips())
}

// =============================================================================
// Store
// =============================================================================

// add appends a filter. Args: [filterJSON string]
func add(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("add requires 1 arg: filterJSON")
	}
	var f filter.Filter
	if err := json.Unmarshal([]byte(args[0].String()), &f); err != nil {
		return response.Error("invalid filter json: " + err.Error())
	}
	if err := filters.AddFilter(f); err != nil {
		return response.Error(err.Error())
	}
	return response.Success("added " + filter.Key(f))
}

// remove drops every filter equal to the chip with this key. Args: [key string]
func remove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("remove requires 1 arg: key")
	}
	n, err := filtersync.RemoveKey(filters, args[0].String())
	if err != nil {
		return response.Error(err.Error())
	}
	return response.Count(n)
}

// removeWhere drops every filter equal to the given one. Args: [filterJSON string]
func removeWhere(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("removeWhere requires 1 arg: filterJSON")
	}
	var f filter.Filter
	if err := json.Unmarshal([]byte(args[0].String()), &f); err != nil {
		return response.Error("invalid filter json: " + err.Error())
	}
	n, err := filters.RemoveFilter(filter.Is(f))
	if err != nil {
		return response.Error(err.Error())
	}
	return response.Count(n)
}

// set replaces the collection. Args: [filtersJSON string]
func set(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("set requires 1 arg: filtersJSON")
	}
	var fs []filter.Filter
	if err := json.Unmarshal([]byte(args[0].String()), &fs); err != nil {
		return response.Error("invalid filters json: " + err.Error())
	}
	if err := filters.SetFilters(fs); err != nil {
		return response.Error(err.Error())
	}
	return response.Count(len(fs))
}

func clearFilters(this js.Value, args []js.Value) interface{} {
	if err := filters.Clear(); err != nil {
		return response.Error(err.Error())
	}
	return response.Success("cleared")
}

func list(this js.Value, args []js.Value) interface{} {
	return response.JSON(filters.Filters())
}

// =============================================================================
// Codec
// =============================================================================

// encode: [filtersJSON string] -> query value
func encode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("encode requires 1 arg: filtersJSON")
	}
	var fs []filter.Filter
	if err := json.Unmarshal([]byte(args[0].String()), &fs); err != nil {
		return response.Error("invalid filters json: " + err.Error())
	}
	return filter.Encode(fs)
}

// decode: [raw string] -> filters JSON, [] on malformed input
func decode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	return response.JSON(filter.Decode(args[0].String()))
}

// =============================================================================
// Search bar + tag catalog
// =============================================================================

// parse: [text string] -> filters JSON, including known-tag suggestions
func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("parse requires 1 arg: text")
	}
	text := args[0].String()
	fs := search.Parse(text)
	for _, s := range dict.Suggest(text) {
		dup := false
		for _, f := range fs {
			if filter.Equal(f, s) {
				dup = true
				break
			}
		}
		if !dup {
			fs = append(fs, s)
		}
	}
	return response.JSON(fs)
}

func tagsInit(this js.Value, args []js.Value) interface{} {
	if tagStore != nil {
		return response.Success("tag catalog already initialized")
	}
	var err error
	tagStore, err = store.NewSQLiteStore()
	if err != nil {
		return response.Error("failed to initialize tag catalog: " + err.Error())
	}
	logger.Info("tag catalog initialized")
	return response.Success("tag catalog initialized")
}

// hydrateTags bulk-loads memo tag sets. Args: [memoTagsJSON string]
func hydrateTags(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("hydrateTags requires 1 arg: memoTagsJSON")
	}
	if tagStore == nil {
		return response.Error("tag catalog not initialized")
	}
	var all []*store.MemoTags
	if err := json.Unmarshal([]byte(args[0].String()), &all); err != nil {
		return response.Error("invalid memo tags json: " + err.Error())
	}
	n, err := tagStore.Hydrate(all)
	if err != nil {
		return response.Error("hydrate failed: " + err.Error())
	}
	if err := rebuildDictionary(); err != nil {
		return response.Error(err.Error())
	}
	return response.Count(n)
}

// setMemoTags replaces one memo's tags. Args: [memoTagsJSON string]
func setMemoTags(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("setMemoTags requires 1 arg: memoTagsJSON")
	}
	if tagStore == nil {
		return response.Error("tag catalog not initialized")
	}
	var mt store.MemoTags
	if err := json.Unmarshal([]byte(args[0].String()), &mt); err != nil {
		return response.Error("invalid memo tags json: " + err.Error())
	}
	if err := tagStore.SetMemoTags(&mt); err != nil {
		return response.Error("set failed: " + err.Error())
	}
	if err := rebuildDictionary(); err != nil {
		return response.Error(err.Error())
	}
	return response.Success("tags set for " + mt.MemoID)
}

// deleteMemoTags: [memoID string]
func deleteMemoTags(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return response.Error("deleteMemoTags requires 1 arg: memoID")
	}
	if tagStore == nil {
		return response.Error("tag catalog not initialized")
	}
	if err := tagStore.DeleteMemo(args[0].String()); err != nil {
		return response.Error("delete failed: " + err.Error())
	}
	if err := rebuildDictionary(); err != nil {
		return response.Error(err.Error())
	}
	return response.Success("deleted " + args[0].String())
}

func listTags(this js.Value, args []js.Value) interface{} {
	if tagStore == nil {
		return response.Error("tag catalog not initialized")
	}
	tags, err := tagStore.ListTags()
	if err != nil {
		return response.Error("list failed: " + err.Error())
	}
	return response.JSON(tags)
}

func rebuildDictionary() error {
	names, err := tagStore.TagNames()
	if err != nil {
		return err
	}
	d, err := search.Compile(names)
	if err != nil {
		return err
	}
	dict = d
	return nil
}

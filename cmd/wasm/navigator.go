//go:build js && wasm

package main

import (
	"fmt"
	"net/url"
	"syscall/js"
)

// browserNavigator drives window.location through the History API.
type browserNavigator struct{}

func (browserNavigator) Location() *url.URL {
	href := js.Global().Get("location").Get("href").String()
	u, err := url.Parse(href)
	if err != nil {
		return &url.URL{Path: "/"}
	}
	return u
}

// Replace calls history.replaceState so filter edits never add back-stack
// entries. replaceState throws on cross-origin URLs; that surfaces as an error.
func (browserNavigator) Replace(u *url.URL) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("history.replaceState: %v", r)
		}
	}()

	history := js.Global().Get("history")
	history.Call("replaceState", history.Get("state"), "", u.String())
	return nil
}

// Package dashboard provides the embedded status page for healthpoller.
//
// The page is served by the server package at the root path ("/"). It
// contains placeholders the server fills in on each request, then keeps the
// indicator up to date over Server-Sent Events.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the status page.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Status page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS

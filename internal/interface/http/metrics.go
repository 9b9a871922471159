package handlers

import "expvar"

// Counters published under "blog" on /api/debug/vars.
var (
	counters = expvar.NewMap("blog")

	articlesCreated = counter("articles_created")
	articlesUpdated = counter("articles_updated")
	articlesDeleted = counter("articles_deleted")
	uploadsStored   = counter("uploads_stored")
	uploadsRejected = counter("uploads_rejected")
	loginsOK        = counter("logins_ok")
	loginsFailed    = counter("logins_failed")
)

func counter(name string) *expvar.Int {
	v := new(expvar.Int)
	counters.Set(name, v)
	return v
}

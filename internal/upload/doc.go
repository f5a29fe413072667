// Package upload tracks object uploads keyed by destination key.
//
// A Manager runs each upload through an objstore.Transport with a bounded
// number of attempts, keeps a snapshot of every task and reports progress,
// completion, failure and cancellation to subscribed observers.
package upload

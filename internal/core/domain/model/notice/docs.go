// Package notice turns orchestration events into user-facing messages.
//
// Handlers never build message text themselves. They record a Notice (a Kind
// plus Params) in an Outbox while their transaction runs, and the outbox is
// dispatched after commit. Compose is the single place that maps a Kind onto
// title, body, delivery channels and action flags.
package notice

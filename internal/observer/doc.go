// Package observer contains the built-in event hub consumers: a styled
// console reporter for interactive use and a metrics collector fed by
// runtime stats events.
package observer

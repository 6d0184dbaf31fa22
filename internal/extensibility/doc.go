// Package extensibility connects a Manager to the outside world: event
// sources that feed it and named side effects that definitions refer to.
package extensibility

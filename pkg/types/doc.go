// Package types defines the Registry interface, the member, entity and
// declaration descriptors, and the standard errors for crudable.
package types

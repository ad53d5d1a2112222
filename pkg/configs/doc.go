// Package configs holds the configuration entities of the mainframe plugin
// and the containers that aggregate them, declared for the crudable registry.
package configs

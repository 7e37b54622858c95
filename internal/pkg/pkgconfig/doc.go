// Package pkgconfig reads tng configuration.
//
// Values come from a YAML file layered over Defaults, and any key can be
// overridden by a TNG_ environment variable. Modules depend on the Config
// interface, not on Viper.
package pkgconfig
